package rewrite_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"vbcore/internal/rewrite"
	"vbcore/internal/source"
	"vbcore/internal/testkit"
)

func TestCheckoutIsIdempotent(t *testing.T) {
	rw, _, s := checkout(t, twoLines)
	again, err := s.CheckOutModuleRewriter(rw.Module())
	require.NoError(t, err)
	if again != rw {
		t.Fatal("second checkout returned a different rewriter")
	}
	if got := s.CheckedOut(); len(got) != 1 || got[0] != rw.Module() {
		t.Fatalf("CheckedOut() = %v", got)
	}
}

func TestCheckoutUnknownModule(t *testing.T) {
	_, _, s := checkout(t, twoLines)
	_, err := s.CheckOutModuleRewriter(source.ModuleName{Project: "VBAProject", Component: "Missing"})
	if !errors.Is(err, rewrite.ErrUnknownModule) {
		t.Fatalf("err = %v, want ErrUnknownModule", err)
	}
}

func TestCommitIsTerminal(t *testing.T) {
	rw, src, s := checkout(t, twoLines)
	require.NoError(t, rw.InsertBefore(0, "' top\n"))

	rec, err := s.Commit()
	require.NoError(t, err)
	if s.State() != rewrite.Committed {
		t.Fatalf("state = %v", s.State())
	}
	if got := src.Committed[rw.Module()]; got != "' top\n"+twoLines {
		t.Fatalf("committed %q", got)
	}
	require.Len(t, rec.Modules, 1)
	if rec.Modules[0].Before != twoLines || rec.Modules[0].BeforeSum == rec.Modules[0].AfterSum {
		t.Fatalf("record = %+v", rec.Modules[0])
	}

	for name, err := range map[string]error{
		"checkout": func() error { _, err := s.CheckOutModuleRewriter(rw.Module()); return err }(),
		"insert":   rw.InsertBefore(0, "x"),
		"remove":   rw.RemoveRange(0, 0),
		"commit":   func() error { _, err := s.Commit(); return err }(),
	} {
		if !errors.Is(err, rewrite.ErrSessionTerminal) {
			t.Errorf("%s after commit: err = %v, want ErrSessionTerminal", name, err)
		}
	}
}

func TestCommitSkipsUnchangedModules(t *testing.T) {
	a := testkit.Parse("A", twoLines)
	b := testkit.Parse("B", twoLines)
	src := testkit.NewCodeSource(a, b)
	s := rewrite.NewManager(src).NewSession()

	rwA, err := s.CheckOutModuleRewriter(a.Name())
	require.NoError(t, err)
	_, err = s.CheckOutModuleRewriter(b.Name())
	require.NoError(t, err)
	require.NoError(t, rwA.ReplaceRange(4, 4, "1")) // same text

	rec, err := s.Commit()
	require.NoError(t, err)
	if len(rec.Modules) != 0 || len(src.Committed) != 0 {
		t.Fatalf("unchanged modules were written: %v", src.Committed)
	}
}

func TestCommitRollsBack(t *testing.T) {
	a := testkit.Parse("A", twoLines)
	b := testkit.Parse("B", twoLines)
	src := testkit.NewCodeSource(a, b)
	src.FailOn = b.Name()

	core, logs := observer.New(zap.WarnLevel)
	m := rewrite.NewManager(src, rewrite.WithLogger(zap.New(core)))
	s := m.NewSession()
	for _, f := range []*testkit.Fixture{a, b} {
		rw, err := s.CheckOutModuleRewriter(f.Name())
		require.NoError(t, err)
		require.NoError(t, rw.InsertBefore(0, "' changed\n"))
	}

	_, err := s.Commit()
	if !errors.Is(err, rewrite.ErrCommitFailed) {
		t.Fatalf("err = %v, want ErrCommitFailed", err)
	}
	if s.State() != rewrite.Invalidated {
		t.Fatalf("state = %v, want invalidated", s.State())
	}
	if got := src.Committed[a.Name()]; got != twoLines {
		t.Fatalf("module A was not restored: %q", got)
	}
	if logs.FilterMessage("commit failed, rolled back").Len() != 1 {
		t.Errorf("missing rollback warning, got %v", logs.All())
	}
}

func TestCommitInvalidatesOtherSessions(t *testing.T) {
	f := testkit.Parse("Module1", twoLines)
	m := rewrite.NewManager(testkit.NewCodeSource(f))
	first, second, third := m.NewSession(), m.NewSession(), m.NewSession()
	third.Discard()
	if m.OpenSessions() != 2 {
		t.Fatalf("open sessions = %d, want 2", m.OpenSessions())
	}

	rw, err := first.CheckOutModuleRewriter(f.Name())
	require.NoError(t, err)
	stale, err := second.CheckOutModuleRewriter(f.Name())
	require.NoError(t, err)
	require.NoError(t, rw.InsertBefore(0, "' a\n"))
	_, err = first.Commit()
	require.NoError(t, err)

	if second.State() != rewrite.Invalidated {
		t.Fatalf("second session state = %v", second.State())
	}
	if err := stale.InsertBefore(0, "' b\n"); !errors.Is(err, rewrite.ErrSessionTerminal) {
		t.Fatalf("edit on stale session: err = %v", err)
	}
	if m.OpenSessions() != 0 {
		t.Fatalf("open sessions = %d, want 0", m.OpenSessions())
	}
}

func TestConcurrentCommitsOneWins(t *testing.T) {
	f := testkit.Parse("Module1", twoLines)
	src := testkit.NewCodeSource(f)
	m := rewrite.NewManager(src)

	sessions := []*rewrite.Session{m.NewSession(), m.NewSession()}
	for i, s := range sessions {
		rw, err := s.CheckOutModuleRewriter(f.Name())
		require.NoError(t, err)
		require.NoError(t, rw.InsertBefore(0, fmt.Sprintf("' %d\n", i)))
	}

	var g errgroup.Group
	errs := make([]error, len(sessions))
	for i, s := range sessions {
		g.Go(func() error {
			_, errs[i] = s.Commit()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, rewrite.ErrSessionTerminal):
			lost++
		default:
			t.Fatalf("unexpected commit error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 1, lost)
	require.Equal(t, 0, m.OpenSessions())
}

func TestJournalUndo(t *testing.T) {
	j, err := rewrite.OpenJournal(filepath.Join(t.TempDir(), "journal"))
	require.NoError(t, err)
	if _, err := j.Undo(nil); !errors.Is(err, rewrite.ErrNoRecords) {
		t.Fatalf("empty journal: err = %v", err)
	}

	f := testkit.Parse("Module1", twoLines)
	src := testkit.NewCodeSource(f)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := rewrite.NewManager(src, rewrite.WithJournal(j), rewrite.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))

	commit := func(text string) {
		t.Helper()
		s := m.NewSession()
		rw, err := s.CheckOutModuleRewriter(f.Name())
		require.NoError(t, err)
		require.NoError(t, rw.InsertBefore(0, text))
		_, err = s.Commit()
		require.NoError(t, err)
	}
	commit("' one\n")
	commit("' two\n")

	paths, err := j.Records()
	require.NoError(t, err)
	require.Len(t, paths, 2)

	rec, err := j.Undo(src)
	require.NoError(t, err)
	if got := src.Committed[f.Name()]; got != "' one\n"+twoLines {
		t.Fatalf("after undo: %q", got)
	}
	if rec.Modules[0].After != "' two\n' one\n"+twoLines {
		t.Fatalf("undone record after = %q", rec.Modules[0].After)
	}

	// модуль изменён мимо журнала
	require.NoError(t, src.SetCode(f.Name(), "x = 42\n"))
	if _, err := j.Undo(src); !errors.Is(err, rewrite.ErrJournalMismatch) {
		t.Fatalf("undo after external edit: err = %v", err)
	}
}
