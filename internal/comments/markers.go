package comments

import (
	"strings"
	"unicode"
)

// commentStart returns the 0-based rune column of the comment marker on line:
// a quote outside string literals, or Rem at a statement head.
func commentStart(line string, head bool) (uint32, bool) {
	inString := false
	var col uint32
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			inString = !inString
		case inString:
		case r == '\'':
			return col, true
		case r == ':':
			head = true
		case r == ' ' || r == '\t':
		default:
			if head && isRem(runes[i:]) {
				return col, true
			}
			head = false
		}
		col++
	}
	return 0, false
}

func isRem(rs []rune) bool {
	if len(rs) < 3 || !strings.EqualFold(string(rs[:3]), "rem") {
		return false
	}
	return len(rs) == 3 || rs[3] == ' ' || rs[3] == '\t'
}

// hasContinuation reports whether the line ends with " _" (or is just "_").
func hasContinuation(line string) bool {
	if !strings.HasSuffix(line, "_") {
		return false
	}
	rest := line[:len(line)-1]
	if rest == "" {
		return true
	}
	last := rune(rest[len(rest)-1])
	return unicode.IsSpace(last)
}

// runeSuffix returns line from rune index col.
func runeSuffix(line string, col uint32) string {
	var i uint32
	for byteIdx := range line {
		if i == col {
			return line[byteIdx:]
		}
		i++
	}
	return ""
}
