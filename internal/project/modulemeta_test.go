package project

import (
	"errors"
	"testing"

	"vbcore/internal/decl"
)

func TestReadMeta(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		want     string
		kind     ModuleKind
		fromAttr bool
		wantErr  error
	}{
		{
			name:    "standard module without header",
			path:    "src/Module1.bas",
			content: "Option Explicit\n",
			want:    "Module1",
			kind:    ModuleKindStandard,
		},
		{
			name:     "name attribute wins",
			path:     "src/whatever.bas",
			content:  "Attribute VB_Name = \"Helpers\"\nOption Explicit\n",
			want:     "Helpers",
			kind:     ModuleKindStandard,
			fromAttr: true,
		},
		{
			name: "class header",
			path: "Shape.cls",
			content: "VERSION 1.0 CLASS\nBEGIN\n  MultiUse = -1  'True\nEND\n" +
				"Attribute VB_Name = \"Shape\"\nAttribute VB_Exposed = False\nOption Explicit\n",
			want:     "Shape",
			kind:     ModuleKindClass,
			fromAttr: true,
		},
		{
			name:    "attribute after code is ignored",
			path:    "Late.bas",
			content: "Option Explicit\nAttribute VB_Name = \"Other\"\n",
			want:    "Late",
			kind:    ModuleKindStandard,
		},
		{
			name:    "invalid file name",
			path:    "1bad.bas",
			content: "",
			wantErr: ErrInvalidModuleName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ReadMeta("VBAProject", tt.path, []byte(tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMeta returned error: %v", err)
			}
			if meta.Name.Component != tt.want || meta.Name.Project != "VBAProject" {
				t.Fatalf("name = %s, want VBAProject.%s", meta.Name, tt.want)
			}
			if meta.Kind != tt.kind || meta.HasNameAttr != tt.fromAttr {
				t.Fatalf("kind = %s, attr = %v", meta.Kind, meta.HasNameAttr)
			}
		})
	}
}

func TestIsValidModuleIdent(t *testing.T) {
	for name, want := range map[string]bool{
		"Module1":                           true,
		"My_Module":                         true,
		"_hidden":                           false,
		"1st":                               false,
		"Модуль":                            false,
		"":                                  false,
		"AVeryLongComponentNameOver31Chars": false,
	} {
		if got := IsValidModuleIdent(name); got != want {
			t.Errorf("IsValidModuleIdent(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestModuleKindDeclType(t *testing.T) {
	if ModuleKindClass.DeclType() != decl.ClassModule || ModuleKindStandard.DeclType() != decl.ProceduralModule {
		t.Fatal("unexpected declaration type mapping")
	}
	if KindFromPath("Sheet1.DOCCLS") != ModuleKindDocument || IsModuleFile("notes.txt") {
		t.Fatal("unexpected kind detection")
	}
}
