package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a physical line that is not continued.
	Newline
	// Whitespace is a run of spaces and tabs.
	Whitespace
	// LineContinuation is " _" followed by a newline.
	LineContinuation
	// SingleQuote starts a comment or an annotation list.
	SingleQuote // '
	// RemKeyword starts a Rem comment.
	RemKeyword // Rem
	// CommentBody is comment text up to the end of the logical line.
	CommentBody
	// At is the annotation marker inside an annotation list.
	At     // @
	Colon  // :
	Comma  // ,
	Dot    // .
	LParen // (
	RParen // )
	Ident
	Keyword
	// TypeHint is a type-hint suffix attached to an identifier or literal ($ % & ! # @ ^).
	TypeHint
	IntLit
	StringLit
	Operator
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Newline:          "Newline",
	Whitespace:       "Whitespace",
	LineContinuation: "LineContinuation",
	SingleQuote:      "SingleQuote",
	RemKeyword:       "RemKeyword",
	CommentBody:      "CommentBody",
	At:               "At",
	Colon:            "Colon",
	Comma:            "Comma",
	Dot:              "Dot",
	LParen:           "LParen",
	RParen:           "RParen",
	Ident:            "Ident",
	Keyword:          "Keyword",
	TypeHint:         "TypeHint",
	IntLit:           "IntLit",
	StringLit:        "StringLit",
	Operator:         "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind carry no statement content.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, LineContinuation:
		return true
	default:
		return false
	}
}
