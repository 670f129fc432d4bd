package comments

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"vbcore/internal/source"
)

var testModule = source.ModuleName{Project: "VBAProject", Component: "Module1"}

func sel(sl, sc, el, ec uint32) source.QualifiedSelection {
	return source.QualifiedSelection{
		Module:    testModule,
		Selection: source.Selection{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec},
	}
}

func TestScannerComments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Comment
	}{
		{
			name: "no comments",
			text: "Sub Foo()\n    x = 1\nEnd Sub\n",
			want: nil,
		},
		{
			name: "whole line",
			text: "' hello\nx = 1\n",
			want: []Comment{{Text: "' hello", Selection: sel(1, 1, 1, 8)}},
		},
		{
			name: "trailing code",
			text: "x = 1 ' set x\n",
			want: []Comment{{Text: "' set x", Selection: sel(1, 7, 1, 14)}},
		},
		{
			name: "quote inside string",
			text: "s = \"it's\" ' real\n",
			want: []Comment{{Text: "' real", Selection: sel(1, 12, 1, 18)}},
		},
		{
			name: "rem at head",
			text: "Rem old style\nx = 1: rem after colon\n",
			want: []Comment{
				{Text: "Rem old style", Selection: sel(1, 1, 1, 14)},
				{Text: "rem after colon", Selection: sel(2, 8, 2, 23)},
			},
		},
		{
			name: "rem is not a comment mid statement",
			text: "Call Remove\nx = Rem\n",
			want: nil,
		},
		{
			name: "continued comment keeps start column",
			text: "x = 1 ' first _\n  second _\n  third\ny = 2\n",
			want: []Comment{{Text: "' first second third", Selection: sel(1, 7, 3, 8)}},
		},
		{
			name: "underscore without space is text",
			text: "' my_var_\nx = 1\n",
			want: []Comment{{Text: "' my_var_", Selection: sel(1, 1, 1, 10)}},
		},
		{
			name: "continued code line is not a statement head",
			text: "x = Foo _\n  Rem\n",
			want: nil,
		},
		{
			name: "comment cut by end of module",
			text: "' dangling _",
			want: []Comment{{Text: "' dangling", Selection: sel(1, 1, 1, 13)}},
		},
		{
			name: "crlf",
			text: "' a\r\n' b\r\n",
			want: []Comment{
				{Text: "' a", Selection: sel(1, 1, 1, 4)},
				{Text: "' b", Selection: sel(2, 1, 2, 4)},
			},
		},
		{
			name: "columns count runes",
			text: "ä = 1 ' ü\n",
			want: []Comment{{Text: "' ü", Selection: sel(1, 7, 1, 10)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(FromText(testModule, tt.text).All())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("comments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScannerRoundTrip(t *testing.T) {
	text := "Option Explicit\n'@Folder(\"A\")\nSub Foo() ' entry\n    x = \"'\" ' quoted\nEnd Sub\n"
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for c := range FromText(testModule, text).All() {
		s := c.Selection.Selection
		if !s.IsSingleLine() {
			t.Fatalf("unexpected multi-line comment %q", c.Text)
		}
		line := []rune(lines[s.StartLine-1])
		if got := string(line[:s.StartColumn-1]) + c.Text; got != string(line) {
			t.Errorf("line %d: got %q, want %q", s.StartLine, got, string(line))
		}
		if int(s.EndColumn) != len(line)+1 {
			t.Errorf("line %d: end column %d, want %d", s.StartLine, s.EndColumn, len(line)+1)
		}
	}
}

func TestScannerIsLazyAndNotRestartable(t *testing.T) {
	pulled := 0
	lines := func(yield func(string) bool) {
		for _, l := range []string{"' one", "x = 1", "' two", "' three"} {
			pulled++
			if !yield(l) {
				return
			}
		}
	}
	s := New(testModule, lines)
	defer s.Close()

	c, ok := s.Next()
	if !ok || c.Text != "' one" {
		t.Fatalf("first comment = %q, %v", c.Text, ok)
	}
	if pulled != 1 {
		t.Fatalf("pulled %d lines, want 1", pulled)
	}
	for c := range s.All() {
		if c.Text != "' two" {
			t.Fatalf("got %q, want ' two", c.Text)
		}
		break
	}
	rest := slices.Collect(s.All())
	if len(rest) != 1 || rest[0].Text != "' three" {
		t.Fatalf("rest = %v", rest)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("scanner yielded after exhaustion")
	}
	if again := slices.Collect(s.All()); len(again) != 0 {
		t.Fatalf("restart yielded %v", again)
	}
}

func TestScannerState(t *testing.T) {
	s := FromText(testModule, "' a _\n b _\n c\n")
	if s.State() != Idle {
		t.Fatalf("initial state %v", s.State())
	}
	if _, ok := s.step("' a _"); ok {
		t.Fatal("continued line emitted")
	}
	if s.State() != ContinuingComment {
		t.Fatalf("state %v, want ContinuingComment", s.State())
	}
}

func TestFromReader(t *testing.T) {
	got := slices.Collect(FromReader(testModule, strings.NewReader("x = 1 ' a\r\ny = 2\n' b")).All())
	want := []Comment{
		{Text: "' a", Selection: sel(1, 7, 1, 10)},
		{Text: "' b", Selection: sel(3, 1, 3, 4)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestFromReaderLongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	s := FromReader(testModule, strings.NewReader(long+"\n' after\n"))
	got := slices.Collect(s.All())
	want := []Comment{{Text: "' after", Selection: sel(2, 1, 2, 8)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestFromReaderError(t *testing.T) {
	boom := errors.New("disk gone")
	s := FromReader(testModule, io.MultiReader(strings.NewReader("' kept\n"), iotest.ErrReader(boom)))
	got := slices.Collect(s.All())
	if len(got) != 1 || got[0].Text != "' kept" {
		t.Errorf("comments = %+v", got)
	}
	if !errors.Is(s.Err(), boom) {
		t.Errorf("Err() = %v, want %v", s.Err(), boom)
	}
}
