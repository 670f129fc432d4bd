package rewrite

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vbcore/internal/source"
)

// State of a session.
type State uint8

const (
	Open State = iota
	Committed
	// Invalidated sessions were discarded, failed to commit, or went stale
	// after another session committed.
	Invalidated
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Committed:
		return "committed"
	case Invalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Session is a transactional set of rewriters, committed at most once.
// One session is not safe for concurrent use; separate sessions are.
type Session struct {
	id        uuid.UUID
	manager   *Manager
	rewriters map[source.ModuleName]*Rewriter
	order     []source.ModuleName
	state     State
}

// ID identifies the session in logs and journal records.
func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) State() State { return s.manager.state(s) }

// CheckedOut lists modules in checkout order.
func (s *Session) CheckedOut() []source.ModuleName {
	return append([]source.ModuleName(nil), s.order...)
}

// CheckOutModuleRewriter returns the module's rewriter, taking a snapshot on
// first use. Repeated calls return the same rewriter.
func (s *Session) CheckOutModuleRewriter(name source.ModuleName) (*Rewriter, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	if rw, ok := s.rewriters[name]; ok {
		return rw, nil
	}
	stream, err := s.manager.src.TokenStream(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownModule, name, err)
	}
	rw := &Rewriter{session: s, stream: stream}
	s.rewriters[name] = rw
	s.order = append(s.order, name)
	s.manager.log.Debug("rewriter checked out",
		zap.Stringer("session", s.id),
		zap.Stringer("module", name),
		zap.Int("tokens", stream.Len()))
	return rw, nil
}

// Commit writes every changed module back to the code source. If a write
// fails, modules already written are restored and the session is invalidated.
// On success every other open session of the manager is invalidated.
func (s *Session) Commit() (*Record, error) {
	m := s.manager
	m.commitMu.Lock()
	defer m.commitMu.Unlock()
	if err := s.usable(); err != nil {
		return nil, err
	}
	rec := &Record{Schema: recordSchema, Session: s.id.String(), Time: m.now().UTC()}

	// сначала материализуем всё, потом пишем
	for _, name := range s.order {
		rw := s.rewriters[name]
		if !rw.Dirty() {
			continue
		}
		before, after := rw.stream.String(), rw.Text()
		if before == after {
			continue
		}
		rec.Modules = append(rec.Modules, ModuleChange{
			Module:    name.String(),
			Before:    before,
			After:     after,
			BeforeSum: sum(before),
			AfterSum:  sum(after),
		})
	}

	for i, ch := range rec.Modules {
		name := source.ParseModuleName(ch.Module)
		if err := m.src.SetCode(name, ch.After); err != nil {
			m.release(s)
			rbErr := s.rollback(rec.Modules[:i])
			m.log.Warn("commit failed, rolled back",
				zap.Stringer("session", s.id),
				zap.Stringer("module", name),
				zap.Int("restored", i),
				zap.Error(err))
			return nil, errors.Join(fmt.Errorf("%w: %s: %w", ErrCommitFailed, name, err), rbErr)
		}
	}

	m.committed(s)
	m.log.Info("session committed",
		zap.Stringer("session", s.id),
		zap.Int("modules", len(rec.Modules)))

	if m.journal != nil && len(rec.Modules) > 0 {
		if _, err := m.journal.Record(rec); err != nil {
			return rec, fmt.Errorf("journal: %w", err)
		}
	}
	return rec, nil
}

// Discard abandons pending edits. Discarding a terminal session is a no-op.
func (s *Session) Discard() {
	s.manager.release(s)
}

func (s *Session) rollback(written []ModuleChange) error {
	var errs []error
	for i := len(written) - 1; i >= 0; i-- {
		ch := written[i]
		if err := s.manager.src.SetCode(source.ParseModuleName(ch.Module), ch.Before); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", ch.Module, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) usable() error {
	if st := s.manager.state(s); st != Open {
		return fmt.Errorf("%w: session %s is %s", ErrSessionTerminal, s.id, st)
	}
	return nil
}

func sum(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
