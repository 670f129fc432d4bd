package lexer

import (
	"vbcore/internal/diag"
)

type Options struct {
	Reporter diag.Reporter // nil: ошибки игнорируются, лексинг продолжается
}
