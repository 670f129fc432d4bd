package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vbcore/internal/source"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const module1 = `Option Explicit
Private counter As Long

Public Sub DoSomething()
    Dim value As Long
    value = counter
End Sub
`

type cli struct {
	dir    string
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "vbcore.yaml")
	data := "project: Book\njournal:\n  dir: " + filepath.Join(dir, "journal") + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfg, []byte(data), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	return &cli{dir: dir, config: cfg}
}

func (c *cli) write(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(c.dir, "src", name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func (c *cli) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(c.dir, "src", name))
	require.NoError(t, err)
	return string(data)
}

// run executes one command line and returns stdout, stderr and the error.
func (c *cli) run(args ...string) (string, string, error) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", c.config, "--color", "off"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnnotationsListing(t *testing.T) {
	c := newCLI(t)
	c.write(t, "Module1.bas", "'@Folder \"Core\"\n'@Frobnicate\n"+module1)
	c.write(t, "readme.txt", "skip me")

	out, errOut, err := c.run("annotations", filepath.Join(c.dir, "src"))
	require.NoError(t, err)
	require.Equal(t, ""+
		"Module1  L1C3-16  Folder      \"Core\"\n"+
		"Module1  L2C3-13  Frobnicate  \n", out)
	require.Contains(t, errOut, "ANN3006")
}

func TestAnnotateDryRunLeavesFile(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	out, _, err := c.run("annotate", path, "--target", "Module1.DoSomething", "--type", "TestMethod", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "applied Book.Module1 L4C12-23\n")
	require.Contains(t, out, "--- Book.Module1\n")
	require.Contains(t, out, "\n'@TestMethod\nPublic Sub DoSomething()")
	require.Equal(t, module1, c.read(t, "Module1.bas"))
}

func TestAnnotateCommitAndUndo(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	out, _, err := c.run("annotate", path, "--target", "Module1.DoSomething.value", "--type", "Obsolete", "--arg", `"gone"`)
	require.NoError(t, err)
	require.Contains(t, out, "committed 1 module(s)")
	require.Contains(t, c.read(t, "Module1.bas"), "    '@Obsolete \"gone\"\n    Dim value As Long\n")

	out, _, err = c.run("undo", path)
	require.NoError(t, err)
	require.Equal(t, "restored Book.Module1\n", out)
	require.Equal(t, module1, c.read(t, "Module1.bas"))

	_, _, err = c.run("undo", path)
	require.ErrorContains(t, err, "journal has no records")
}

func TestAnnotateMismatchFails(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	out, errOut, err := c.run("annotate", path, "--target", "Module1", "--type", "TestMethod")
	require.ErrorIs(t, err, errNothingApplied)
	require.Contains(t, out, "skipped Book.Module1")
	require.Contains(t, errOut, "ANN3002")
	require.Equal(t, module1, c.read(t, "Module1.bas"))
}

func TestAnnotateReference(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	_, _, err := c.run("annotate", path, "--target", "Module1", "--at", "L6C13", "--type", "Ignore", "--arg", "UnassignedVariableUsage")
	require.NoError(t, err)
	require.Contains(t, c.read(t, "Module1.bas"), "    Dim value As Long\n    '@Ignore UnassignedVariableUsage\n    value = counter\n")
}

func TestIgnoreExtendsModuleAnnotation(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	_, _, err := c.run("ignore", "--module", "Module1", path, "--", "VariableNotUsed")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(c.read(t, "Module1.bas"), "'@IgnoreModule VariableNotUsed\nOption Explicit\n"))

	_, _, err = c.run("ignore", "--module", "Module1", path, "--", "ProcedureNotUsed", "VariableNotUsed")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(c.read(t, "Module1.bas"), "'@IgnoreModule ProcedureNotUsed, VariableNotUsed\nOption Explicit\n"))

	_, _, err = c.run("ignore", "--module", "Module1", path, "--", "ProcedureNotUsed")
	require.ErrorIs(t, err, errNothingApplied)
}

func TestIgnoreSeveralInspectionsAtOnce(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	out, _, err := c.run("ignore", "--module", "Module1", path, "--", "VariableNotUsed", "ProcedureNotUsed")
	require.NoError(t, err)
	require.Contains(t, out, "committed 1 module(s)")
	require.True(t, strings.HasPrefix(c.read(t, "Module1.bas"), "'@IgnoreModule VariableNotUsed, ProcedureNotUsed\nOption Explicit\n"))
}

func TestUnannotateAndReannotate(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", "'@Folder \"Old\"\n'@ModuleDescription \"x\"\n"+module1)

	_, _, err := c.run("reannotate", path, "--module", "Module1", "--line", "1", "--type", "Folder", "--arg", `"New"`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(c.read(t, "Module1.bas"), "'@Folder \"New\"\n'@ModuleDescription \"x\"\n"))

	_, _, err = c.run("unannotate", path, "--module", "Module1", "--type", "ModuleDescription")
	require.NoError(t, err)
	require.Equal(t, "'@Folder \"New\"\n"+module1, c.read(t, "Module1.bas"))

	_, errOut, err := c.run("unannotate", path, "--module", "Module1", "--type", "TestMethod")
	require.NoError(t, err)
	require.Contains(t, errOut, "no matching annotations")
}

func TestCommentsListing(t *testing.T) {
	c := newCLI(t)
	c.write(t, "Module1.bas", "' first _\n  continued\nx = 1 ' trailing\n")

	out, _, err := c.run("comments", filepath.Join(c.dir, "src"))
	require.NoError(t, err)
	require.Equal(t, ""+
		"Module1  L1C1-L2C12  ' first continued\n"+
		"Module1  L3C7-17     ' trailing\n", out)
}

func TestTreeCommand(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)

	out, _, err := c.run("tree", path, "--target", "Module1.DoSomething.value")
	require.NoError(t, err)
	require.Contains(t, out, "value")

	_, _, err = c.run("tree", path, "--target", "Module1.Nope")
	require.ErrorIs(t, err, errTargetNotFound)
}

func TestTokenizeJSON(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", "x = 1\n")

	out, _, err := c.run("tokenize", path, "--format", "json")
	require.NoError(t, err)
	var tokens []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.Len(t, tokens, 5) // x = 1 \n EOF
}

func TestVersionJSON(t *testing.T) {
	c := newCLI(t)
	out, _, err := c.run("version", "--format", "json", "--hash")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "vbcore", payload.Tool)
	require.Equal(t, "unknown", payload.GitCommit)
}

func TestRootFlagValidation(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("--verbose", "--quiet", "version")
	require.Error(t, err)
	_, _, err = c.run("--color", "sometimes", "version")
	require.ErrorContains(t, err, "unsupported --color")
	_, _, err = c.run("--min-severity", "fatal", "version")
	require.ErrorContains(t, err, "--min-severity")
}

func TestMinSeverityHidesWarnings(t *testing.T) {
	c := newCLI(t)
	c.write(t, "Module1.bas", "'@Frobnicate\n"+module1)

	_, errOut, err := c.run("--min-severity", "error", "annotations", filepath.Join(c.dir, "src"))
	require.NoError(t, err)
	require.NotContains(t, errOut, "ANN3006")
}

func TestProfilingFlags(t *testing.T) {
	c := newCLI(t)
	path := c.write(t, "Module1.bas", module1)
	mem := filepath.Join(c.dir, "mem.out")

	_, _, err := c.run("--mem-profile", mem, "comments", path)
	require.NoError(t, err)
	info, err := os.Stat(mem)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want source.LineCol
		err  bool
	}{
		{in: "L4C5", want: source.LineCol{Line: 4, Col: 5}},
		{in: "l12c1", want: source.LineCol{Line: 12, Col: 1}},
		{in: "3:7", want: source.LineCol{Line: 3, Col: 7}},
		{in: "L0C1", err: true},
		{in: "L4", err: true},
		{in: "nonsense", err: true},
	}
	for _, tt := range tests {
		got, err := parsePosition(tt.in)
		if tt.err {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}
}
