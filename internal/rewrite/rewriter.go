package rewrite

import (
	"fmt"
	"strings"

	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

type insertion struct {
	gap  int // вставка перед токеном gap; gap == Len() значит в самый конец
	text string
}

type replacement struct {
	from, to int // включительно
	text     string
}

func (r replacement) isDelete() bool { return r.text == "" }

// Rewriter accumulates edits against one module snapshot.
type Rewriter struct {
	session  *Session
	stream   *token.Stream
	inserts  []insertion // порядок постановки в очередь
	replaces []replacement
}

// Module returns the module the rewriter edits.
func (rw *Rewriter) Module() source.ModuleName { return rw.stream.Module }

// Stream returns the snapshot the edits are keyed against.
func (rw *Rewriter) Stream() *token.Stream { return rw.stream }

// Dirty reports whether any edit is pending.
func (rw *Rewriter) Dirty() bool { return len(rw.inserts) > 0 || len(rw.replaces) > 0 }

// InsertBefore queues text before token index.
func (rw *Rewriter) InsertBefore(index int, text string) error {
	if err := rw.check(index, index); err != nil {
		return err
	}
	return rw.insert(index, text)
}

// InsertAfter queues text after token index.
func (rw *Rewriter) InsertAfter(index int, text string) error {
	if err := rw.check(index, index); err != nil {
		return err
	}
	return rw.insert(index+1, text)
}

// HasInsert reports whether text is already queued before token index.
func (rw *Rewriter) HasInsert(index int, text string) bool {
	for _, in := range rw.inserts {
		if in.gap == index && in.text == text {
			return true
		}
	}
	return false
}

// Inserts returns the texts queued before token index, in queue order.
func (rw *Rewriter) Inserts(index int) []string {
	var out []string
	for _, in := range rw.inserts {
		if in.gap == index {
			out = append(out, in.text)
		}
	}
	return out
}

// ReplaceInsert swaps a queued insertion before token index for text,
// keeping its place in the queue. It reports whether old was queued there.
func (rw *Rewriter) ReplaceInsert(index int, old, text string) bool {
	for i, in := range rw.inserts {
		if in.gap == index && in.text == old {
			rw.inserts[i].text = text
			return true
		}
	}
	return false
}

// Replacement returns the text queued for exactly tokens from..to.
func (rw *Rewriter) Replacement(from, to int) (string, bool) {
	for _, r := range rw.replaces {
		if r.from == from && r.to == to {
			return r.text, true
		}
	}
	return "", false
}

// Replace queues replacing the tokens covered by n.
func (rw *Rewriter) Replace(n *syntax.Node, text string) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrTokenOutOfRange)
	}
	return rw.ReplaceRange(n.Start, n.Stop, text)
}

// Remove queues deleting the tokens covered by n.
func (rw *Rewriter) Remove(n *syntax.Node) error {
	return rw.Replace(n, "")
}

// RemoveRange queues deleting tokens from..to inclusive.
func (rw *Rewriter) RemoveRange(from, to int) error {
	return rw.ReplaceRange(from, to, "")
}

// ReplaceRange queues replacing tokens from..to inclusive.
//
// A range that covers a pending replacement supersedes it. Overlapping
// deletions merge into one. Any other overlap, and a range swallowing a
// pending insert, fails with ErrOverlappingEdits.
func (rw *Rewriter) ReplaceRange(from, to int, text string) error {
	if err := rw.check(from, to); err != nil {
		return err
	}
	next := replacement{from: from, to: to, text: text}
	kept := make([]replacement, 0, len(rw.replaces)+1)
	for _, r := range rw.replaces {
		switch {
		case r.to < next.from || r.from > next.to:
			kept = append(kept, r)
		case next.from <= r.from && r.to <= next.to:
			// поглощено новой правкой
		case r.isDelete() && next.isDelete():
			next.from = min(next.from, r.from)
			next.to = max(next.to, r.to)
		default:
			return fmt.Errorf("%w: %s tokens %d..%d and %d..%d",
				ErrOverlappingEdits, rw.Module(), r.from, r.to, from, to)
		}
	}
	// вставки на краях диапазона остаются, внутри него отклоняются
	for _, in := range rw.inserts {
		if in.gap > next.from && in.gap <= next.to {
			return fmt.Errorf("%w: %s tokens %d..%d cover pending insert at %d",
				ErrOverlappingEdits, rw.Module(), next.from, next.to, in.gap)
		}
	}
	rw.replaces = append(kept, next)
	return nil
}

// Text materialises the pending result without committing.
// Edits apply in ascending token order; inserts at the same index keep
// their queue order.
func (rw *Rewriter) Text() string {
	n := rw.stream.Len()
	starts := make(map[int]replacement, len(rw.replaces))
	for _, r := range rw.replaces {
		starts[r.from] = r
	}
	gaps := make(map[int][]string, len(rw.inserts))
	for _, in := range rw.inserts {
		gaps[in.gap] = append(gaps[in.gap], in.text)
	}

	var b strings.Builder
	for i := 0; i < n; {
		for _, text := range gaps[i] {
			b.WriteString(text)
		}
		if r, ok := starts[i]; ok {
			b.WriteString(r.text)
			i = r.to + 1
			continue
		}
		b.WriteString(rw.stream.At(i).Text)
		i++
	}
	for _, text := range gaps[n] {
		b.WriteString(text)
	}
	return b.String()
}

func (rw *Rewriter) insert(gap int, text string) error {
	for _, r := range rw.replaces {
		if gap > r.from && gap <= r.to {
			return fmt.Errorf("%w: %s insert at %d inside pending edit %d..%d",
				ErrOverlappingEdits, rw.Module(), gap, r.from, r.to)
		}
	}
	rw.inserts = append(rw.inserts, insertion{gap: gap, text: text})
	return nil
}

func (rw *Rewriter) check(from, to int) error {
	if err := rw.session.usable(); err != nil {
		return err
	}
	if !rw.stream.Valid(from) || !rw.stream.Valid(to) || from > to {
		return fmt.Errorf("%w: %s tokens %d..%d (snapshot has %d)",
			ErrTokenOutOfRange, rw.Module(), from, to, rw.stream.Len())
	}
	return nil
}
