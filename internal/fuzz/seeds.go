package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
)

// moduleSeeds cover the shapes the scanners special-case.
var moduleSeeds = []string{
	"",
	"Option Explicit\n",
	"'@Folder(\"A.B\") @NoIndent\n'@Ignore X, Y: because\n",
	"Public Sub Foo()\n    '@Custom \"a, b\", c\nEnd Sub\n",
	"' first _\n  continued _\n  again\n",
	"x = \"it's\" ' real comment\n",
	"Rem old style\nIf x Then: Rem after colon\n",
	"my_var_ = 1 _\n    + 2 ' sum\n",
	"Dim s$: s$ = \"x\"\r\n",
	"VERSION 1.0 CLASS\nBEGIN\n  MultiUse = -1  'True\nEND\nAttribute VB_Name = \"Class1\"\n",
	"Public Function Total$(ByVal delta As Long)\n    For i = 1 To 10\n    Next\nEnd Function\n",
	"'@\n'@@\n' _",
	"\"unterminated\n'",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range moduleSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все экспортированные модули
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".bas", ".cls", ".frm", ".doccls":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src))
		return nil
	})
}

// clamp copies input, cut to maxFuzzInput.
func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
