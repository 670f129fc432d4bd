package source

import (
	"fmt"
	"strings"
)

type (
	// ModuleID uniquely identifies one version of a module within a ModuleSet.
	ModuleID uint32 // просто ID версии модуля
	// ModuleFlags encodes metadata about how module text was loaded.
	ModuleFlags uint8
)

const (
	// ModuleVirtual indicates the module was added from memory (test, stdin, host buffer).
	ModuleVirtual ModuleFlags = 1 << iota
	ModuleHadBOM
	ModuleNormalizedCRLF
	// ModuleDecodedANSI marks content that was decoded from Windows-1252.
	ModuleDecodedANSI
)

// ModuleName is the host-level identity of a code module.
type ModuleName struct {
	Project   string
	Component string
}

// ParseModuleName splits "Project.Component". A name without a dot is a bare component.
func ParseModuleName(s string) ModuleName {
	project, component, ok := strings.Cut(s, ".")
	if !ok {
		return ModuleName{Component: s}
	}
	return ModuleName{Project: project, Component: component}
}

func (n ModuleName) String() string {
	if n.Project == "" {
		return n.Component
	}
	return fmt.Sprintf("%s.%s", n.Project, n.Component)
}

// IsZero reports whether the name is unset.
func (n ModuleName) IsZero() bool {
	return n.Project == "" && n.Component == ""
}

// Module captures metadata and content for a single module version.
type Module struct {
	ID      ModuleID
	Name    ModuleName
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   ModuleFlags
}

// LineCol represents a human-readable position in a module.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
