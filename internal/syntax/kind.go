package syntax

// Kind discriminates syntax node shapes.
type Kind uint8

const (
	Invalid Kind = iota
	Module
	Block
	EndOfLine
	CommentOrAnnotation
	AnnotationList
	Annotation
	AnnotationName
	AnnotationArgList
	Comment
	RemComment
	IfStmt
	ElseIfBlock
	ElseBlock
	SingleLineIfStmt
	SingleLineElseClause
	SelectCaseStmt
	CaseClause
	CaseElseClause
	ForNextStmt
	ForEachStmt
	WhileWendStmt
	DoLoopStmt
	SubStmt
	FunctionStmt
	PropertyStmt
	ArgList
	Arg
	VariableStmt
	VariableSubStmt
	ConstStmt
	ConstSubStmt
	LetStmt
	SetStmt
	CallStmt
	SimpleNameExpr
	Identifier
	AsTypeClause
	Terminal
)

var kindNames = [...]string{
	Invalid:              "Invalid",
	Module:               "Module",
	Block:                "Block",
	EndOfLine:            "EndOfLine",
	CommentOrAnnotation:  "CommentOrAnnotation",
	AnnotationList:       "AnnotationList",
	Annotation:           "Annotation",
	AnnotationName:       "AnnotationName",
	AnnotationArgList:    "AnnotationArgList",
	Comment:              "Comment",
	RemComment:           "RemComment",
	IfStmt:               "IfStmt",
	ElseIfBlock:          "ElseIfBlock",
	ElseBlock:            "ElseBlock",
	SingleLineIfStmt:     "SingleLineIfStmt",
	SingleLineElseClause: "SingleLineElseClause",
	SelectCaseStmt:       "SelectCaseStmt",
	CaseClause:           "CaseClause",
	CaseElseClause:       "CaseElseClause",
	ForNextStmt:          "ForNextStmt",
	ForEachStmt:          "ForEachStmt",
	WhileWendStmt:        "WhileWendStmt",
	DoLoopStmt:           "DoLoopStmt",
	SubStmt:              "SubStmt",
	FunctionStmt:         "FunctionStmt",
	PropertyStmt:         "PropertyStmt",
	ArgList:              "ArgList",
	Arg:                  "Arg",
	VariableStmt:         "VariableStmt",
	VariableSubStmt:      "VariableSubStmt",
	ConstStmt:            "ConstStmt",
	ConstSubStmt:         "ConstSubStmt",
	LetStmt:              "LetStmt",
	SetStmt:              "SetStmt",
	CallStmt:             "CallStmt",
	SimpleNameExpr:       "SimpleNameExpr",
	Identifier:           "Identifier",
	AsTypeClause:         "AsTypeClause",
	Terminal:             "Terminal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsLoop reports whether the shape is a loop construct.
func (k Kind) IsLoop() bool {
	switch k {
	case ForNextStmt, ForEachStmt, WhileWendStmt, DoLoopStmt:
		return true
	default:
		return false
	}
}

// IsBranch reports whether the shape is a conditional construct or one of its arms.
func (k Kind) IsBranch() bool {
	switch k {
	case IfStmt, ElseIfBlock, ElseBlock, SingleLineIfStmt, SingleLineElseClause, CaseClause, CaseElseClause:
		return true
	default:
		return false
	}
}

// IsMember reports whether the shape declares a procedure, function or property.
func (k Kind) IsMember() bool {
	switch k {
	case SubStmt, FunctionStmt, PropertyStmt:
		return true
	default:
		return false
	}
}
