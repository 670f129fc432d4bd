package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	require.True(t, opts.Enabled())

	stop, err := Start(opts)
	require.NoError(t, err)
	require.NoError(t, stop())
	require.NoError(t, stop(), "second stop is a no-op")

	for _, p := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.NotZero(t, info.Size(), p)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.out")
	_, err := Start(Options{CPU: missing})
	require.ErrorContains(t, err, "cpu profile")
	require.False(t, Options{}.Enabled())
}
