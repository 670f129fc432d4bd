package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vbcore/internal/diag"
	"vbcore/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.FgBlue)
	gutterColor  = color.New(color.Faint)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
// <module> <selection>: <SEV> <CODE>: <Message>
// затем строки кода с подчёркиванием ^~~~ по Selection, затем Notes.
// Модули без текста в set печатаются без контекста.
func Pretty(w io.Writer, diags []diag.Diagnostic, set *source.ModuleSet, opts PrettyOpts) {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			d.Location,
			paint(severityColor(d.Severity), d.Severity.String()),
			d.Code.ID(),
			d.Message)
		if m := latest(set, d.Location.Module); m != nil {
			writeContext(w, m, d.Location.Selection, opts, paint)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", paint(noteColor, "note"), n.Location, n.Msg)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func latest(set *source.ModuleSet, name source.ModuleName) *source.Module {
	if set == nil {
		return nil
	}
	m, ok := set.Latest(name)
	if !ok {
		return nil
	}
	return m
}

func writeContext(w io.Writer, m *source.Module, sel source.Selection, opts PrettyOpts, paint func(*color.Color, string) string) {
	if sel.StartLine == 0 || int(sel.StartLine) > m.LineCount() {
		return
	}
	first := sel.StartLine
	if ctx := uint32(max(opts.Context, 0)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	gutter := len(fmt.Sprint(sel.StartLine))
	for ln := first; ln <= sel.StartLine; ln++ {
		text := expandTabs(m.Line(ln))
		if opts.Width > 0 {
			text = truncate(text, opts.Width)
		}
		fmt.Fprintf(w, "%s %s\n", paint(gutterColor, fmt.Sprintf("%*d |", gutter, ln)), text)
	}

	// колонки считаются в рунах исходной строки, ширина - после раскрытия табов
	line := m.Line(sel.StartLine)
	prefix := displayWidth(runePrefix(line, int(sel.StartColumn)-1))
	end := displayWidth(line)
	if sel.IsSingleLine() {
		end = displayWidth(runePrefix(line, int(sel.EndColumn)-1))
	}
	underline := "^" + strings.Repeat("~", max(end-prefix-1, 0))
	fmt.Fprintf(w, "%s %s%s\n",
		paint(gutterColor, strings.Repeat(" ", gutter)+" |"),
		strings.Repeat(" ", prefix),
		paint(errorColor, underline))
}

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func displayWidth(s string) int { return runewidth.StringWidth(expandTabs(s)) }

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
