package diagfmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table aligns rows by display width, so CJK and accented text in comments
// line up in a terminal.
type Table struct {
	// MaxWidth caps the last column, 0 - не ограничено.
	MaxWidth int
	rows     [][]string
}

func (t *Table) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Render(w io.Writer) error {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row[:max(len(row)-1, 0)] {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	var b strings.Builder
	for _, row := range t.rows {
		b.Reset()
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(truncate(cell, t.MaxWidth))
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
