package token

import "strings"

var keywords = map[string]string{}

func init() {
	for _, kw := range []string{
		"And", "As", "Boolean", "ByRef", "ByVal", "Call", "Case", "Const", "Currency", "Date",
		"Declare", "Dim", "Do", "Double", "Each", "Else", "ElseIf", "End", "Enum", "Event",
		"Exit", "False", "For", "Friend", "Function", "Get", "Global", "GoSub", "GoTo", "If",
		"Implements", "In", "Integer", "Is", "Let", "Like", "Long", "Loop", "Me", "Mod", "New",
		"Next", "Not", "Nothing", "Object", "On", "Option", "Optional", "Or", "ParamArray",
		"Preserve", "Private", "Property", "Public", "ReDim", "Rem", "Resume", "Select", "Set",
		"Single", "Static", "Step", "Stop", "String", "Sub", "Then", "To", "True", "Type",
		"TypeOf", "Until", "Variant", "Wend", "While", "With", "WithEvents", "Xor",
	} {
		keywords[strings.ToLower(kw)] = kw
	}
}

// LookupKeyword returns the canonical spelling of a reserved word.
// Ключевые слова регистронезависимые.
func LookupKeyword(word string) (string, bool) {
	kw, ok := keywords[strings.ToLower(word)]
	return kw, ok
}

// IsTypeHint reports whether b is a type-hint suffix character.
func IsTypeHint(b byte) bool {
	switch b {
	case '$', '%', '&', '!', '#', '@', '^':
		return true
	default:
		return false
	}
}
