package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"vbcore/internal/decl"
	"vbcore/internal/source"
)

// ModuleKind is the VBE component type, derived from the export extension.
type ModuleKind uint8

const (
	ModuleKindUnknown ModuleKind = iota
	ModuleKindStandard
	ModuleKindClass
	ModuleKindForm
	ModuleKindDocument
)

var kindNames = [...]string{"unknown", "standard", "class", "form", "document"}

func (k ModuleKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ModuleKind(%d)", k)
}

// DeclType maps the component type onto the declaration kind of its module.
func (k ModuleKind) DeclType() decl.Type {
	switch k {
	case ModuleKindClass, ModuleKindForm, ModuleKindDocument:
		return decl.ClassModule
	default:
		return decl.ProceduralModule
	}
}

// KindFromPath detects the component type from an exported file name.
func KindFromPath(path string) ModuleKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bas":
		return ModuleKindStandard
	case ".cls":
		return ModuleKindClass
	case ".frm":
		return ModuleKindForm
	case ".doccls":
		return ModuleKindDocument
	default:
		return ModuleKindUnknown
	}
}

// IsModuleFile reports whether path looks like an exported VBA component.
func IsModuleFile(path string) bool {
	return KindFromPath(path) != ModuleKindUnknown
}

// ModuleMeta describes one loaded component.
type ModuleMeta struct {
	Name        source.ModuleName
	Path        string
	Kind        ModuleKind
	HasNameAttr bool // имя взято из Attribute VB_Name
	ContentHash Digest
}

// ErrInvalidModuleName is returned for component names VBA would reject.
var ErrInvalidModuleName = errors.New("invalid module name")

// maxIdentLen is the VBE limit for component names.
const maxIdentLen = 31

// IsValidModuleIdent reports whether name is a legal VBA component name:
// an ASCII letter followed by letters, digits or underscores.
func IsValidModuleIdent(name string) bool {
	if name == "" || len(name) > maxIdentLen {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ReadMeta derives a component's metadata from its path and normalized
// content. The name comes from the export header's VB_Name attribute, or
// from the file name when the header has none.
func ReadMeta(project, path string, content []byte) (ModuleMeta, error) {
	meta := ModuleMeta{Path: path, Kind: KindFromPath(path)}
	component, ok := nameAttribute(content)
	if ok {
		meta.HasNameAttr = true
	} else {
		component = source.ComponentName(path)
	}
	if !IsValidModuleIdent(component) {
		return meta, fmt.Errorf("%w: %q (%s)", ErrInvalidModuleName, component, path)
	}
	meta.Name = source.ModuleName{Project: project, Component: component}
	return meta, nil
}

// nameAttribute scans the export header (VERSION/BEGIN..END/Attribute lines)
// for Attribute VB_Name = "X".
func nameAttribute(content []byte) (string, bool) {
	depth := 0
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(upper, "VERSION "):
			continue
		case upper == "BEGIN" || strings.HasPrefix(upper, "BEGIN "):
			depth++
			continue
		case upper == "END" && depth > 0:
			depth--
			continue
		case depth > 0:
			continue
		case !strings.HasPrefix(upper, "ATTRIBUTE "):
			// заголовок кончился
			return "", false
		}
		key, value, ok := strings.Cut(line[len("Attribute "):], "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "VB_Name") {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`), true
	}
	return "", false
}
