package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	// Context is the number of source lines printed above the primary line.
	Context int8
	Width   int // максимальная ширина строки кода, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}
