package rewrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"vbcore/internal/source"
)

// bump when Record layout changes
const recordSchema uint16 = 1

const recordExt = ".mp"

// Record describes one committed session.
type Record struct {
	Schema  uint16         `msgpack:"schema"`
	Session string         `msgpack:"session"`
	Time    time.Time      `msgpack:"time"`
	Modules []ModuleChange `msgpack:"modules"`
}

// ModuleChange is the before/after text of one module with sha256 sums.
type ModuleChange struct {
	Module    string `msgpack:"module"`
	Before    string `msgpack:"before"`
	After     string `msgpack:"after"`
	BeforeSum string `msgpack:"before_sum"`
	AfterSum  string `msgpack:"after_sum"`
}

// Journal stores commit records as msgpack files in a directory.
type Journal struct {
	dir string
}

// OpenJournal creates dir if needed.
func OpenJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Journal{dir: dir}, nil
}

func (j *Journal) Dir() string { return j.dir }

// Record writes rec and returns the file path.
func (j *Journal) Record(rec *Record) (string, error) {
	name := rec.Time.UTC().Format("20060102T150405.000000000") + "-" + rec.Session + recordExt
	p := filepath.Join(j.dir, name)

	f, err := os.CreateTemp(j.dir, "tmp-*")
	if err != nil {
		return "", err
	}
	defer func() {
		// после Rename файла уже нет
		_ = os.Remove(f.Name())
	}()
	if err := msgpack.NewEncoder(f).Encode(rec); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	// атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		return "", err
	}
	return p, nil
}

// Records lists record files, oldest first.
func (j *Journal) Records() ([]string, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		out = append(out, filepath.Join(j.dir, e.Name()))
	}
	slices.Sort(out)
	return out, nil
}

// Latest returns the newest record and its path.
func (j *Journal) Latest() (*Record, string, error) {
	paths, err := j.Records()
	if err != nil {
		return nil, "", err
	}
	if len(paths) == 0 {
		return nil, "", ErrNoRecords
	}
	p := paths[len(paths)-1]
	rec, err := readRecord(p)
	if err != nil {
		return nil, "", err
	}
	return rec, p, nil
}

// Undo restores the newest record's modules and drops the record. It refuses
// when a module no longer holds the committed text.
func (j *Journal) Undo(src CodeSource) (*Record, error) {
	rec, p, err := j.Latest()
	if err != nil {
		return nil, err
	}
	for _, ch := range rec.Modules {
		stream, err := src.TokenStream(source.ParseModuleName(ch.Module))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnknownModule, ch.Module, err)
		}
		if sum(stream.String()) != ch.AfterSum {
			return nil, fmt.Errorf("%w: %s", ErrJournalMismatch, ch.Module)
		}
	}
	for i := len(rec.Modules) - 1; i >= 0; i-- {
		ch := rec.Modules[i]
		if err := src.SetCode(source.ParseModuleName(ch.Module), ch.Before); err != nil {
			return nil, fmt.Errorf("undo %s: %w", ch.Module, err)
		}
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return rec, err
	}
	return rec, nil
}

func readRecord(p string) (*Record, error) {
	// #nosec G304 -- path comes from the journal directory listing
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var rec Record
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(p), err)
	}
	if rec.Schema != recordSchema {
		return nil, fmt.Errorf("%s: unsupported record schema %d", filepath.Base(p), rec.Schema)
	}
	return &rec, nil
}
