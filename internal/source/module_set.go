package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/charmap"
)

// ModuleSet manages versions of module text. Each Add creates a new version;
// older versions stay addressable by ModuleID so spans never dangle.
type ModuleSet struct {
	mu      sync.RWMutex
	modules []Module
	index   map[ModuleName]ModuleID // name -> latest version
}

// NewModuleSet creates a new empty ModuleSet.
func NewModuleSet() *ModuleSet {
	return &ModuleSet{
		modules: make([]Module, 0),
		index:   make(map[ModuleName]ModuleID),
	}
}

// Add stores normalized content under name, computes LineIdx and Hash, and returns a new ModuleID.
// It always creates a new ModuleID even if the name already exists.
func (ms *ModuleSet) Add(name ModuleName, path string, content []byte, flags ModuleFlags) ModuleID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	if path != "" {
		path = normalizePath(path)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	n, err := safecast.Conv[uint32](len(ms.modules))
	if err != nil {
		panic(fmt.Errorf("len modules overflow: %w", err))
	}
	id := ModuleID(n)
	ms.modules = append(ms.modules, Module{
		ID:      id,
		Name:    name,
		Path:    path,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// индекс всегда указывает на последнюю версию
	ms.index[name] = id
	return id
}

// AddVirtual adds in-memory text (tests, host buffers) with the ModuleVirtual flag.
func (ms *ModuleSet) AddVirtual(name ModuleName, content []byte) ModuleID {
	return ms.Add(name, "", content, ModuleVirtual)
}

// Load reads a module from disk, normalizes it with Decode, and calls Add.
func (ms *ModuleSet) Load(name ModuleName, path string) (ModuleID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Decode(raw)
	return ms.Add(name, path, content, flags), nil
}

// Replace stores a new version of an existing module, keeping its path and load flags.
func (ms *ModuleSet) Replace(name ModuleName, content []byte) (ModuleID, error) {
	prev, ok := ms.Latest(name)
	if !ok {
		return 0, fmt.Errorf("module %s is not loaded", name)
	}
	return ms.Add(name, prev.Path, content, prev.Flags), nil
}

// Get returns the module version for the given ID.
func (ms *ModuleSet) Get(id ModuleID) *Module {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if int(id) >= len(ms.modules) {
		return nil
	}
	return &ms.modules[id]
}

// Latest returns the newest version stored under name.
func (ms *ModuleSet) Latest(name ModuleName) (*Module, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	id, ok := ms.index[name]
	if !ok {
		return nil, false
	}
	return &ms.modules[id], true
}

// Names returns the names of all known modules in first-load order.
func (ms *ModuleSet) Names() []ModuleName {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	seen := make(map[ModuleName]bool, len(ms.index))
	out := make([]ModuleName, 0, len(ms.index))
	for i := range ms.modules {
		name := ms.modules[i].Name
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Resolve converts a span into line and column positions.
func (ms *ModuleSet) Resolve(span Span) (start, end LineCol) {
	m := ms.Get(span.Module)
	if m == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(m.LineIdx, span.Start), toLineCol(m.LineIdx, span.End)
}

// LineCount returns the number of physical lines in the module.
func (m *Module) LineCount() int {
	if len(m.Content) == 0 {
		return 0
	}
	n := len(m.LineIdx) + 1
	if m.Content[len(m.Content)-1] == '\n' {
		n--
	}
	return n
}

// Line returns the physical line with the given 1-based number, without its terminator.
// Missing lines yield an empty string.
func (m *Module) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(m.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(m.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = m.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = m.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent || start > end {
		return ""
	}
	return string(m.Content[start:end])
}

// Lines splits the module into physical lines without terminators.
func (m *Module) Lines() []string {
	n := m.LineCount()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, m.Line(uint32(i)))
	}
	return out
}

// Encode reverses the load normalization recorded in flags, so committed
// text goes back to disk in the shape it was read.
func (m *Module) Encode(text string) ([]byte, error) {
	if m.Flags&ModuleNormalizedCRLF != 0 {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	out := []byte(text)
	if m.Flags&ModuleDecodedANSI != 0 {
		encoded, err := charmap.Windows1252.NewEncoder().Bytes(out)
		if err != nil {
			return nil, fmt.Errorf("encode %s as windows-1252: %w", m.Name, err)
		}
		out = encoded
	}
	if m.Flags&ModuleHadBOM != 0 {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out, nil
}

// Decode normalizes raw module bytes: strips a UTF-8 BOM, decodes
// Windows-1252 when the bytes are not valid UTF-8, and folds CRLF to LF.
func Decode(raw []byte) ([]byte, ModuleFlags) {
	var flags ModuleFlags
	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= ModuleHadBOM
	}
	if !utf8.Valid(content) {
		// экспорт из VBE почти всегда в ANSI
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(content); err == nil {
			content = decoded
			flags |= ModuleDecodedANSI
		}
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= ModuleNormalizedCRLF
	}
	return content, flags
}

// ComponentName derives a component name from a module file path ("src/Module1.bas" -> "Module1").
func ComponentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
