package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vbcore/internal/version"
)

// newRootCmd assembles the command tree around a fresh app state.
func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:               "vbcore",
		Short:             "VBA module analysis and annotation toolkit",
		Long:              `vbcore scans exported VBA modules, lists comments and '@ annotations and edits annotations through rewrite sessions`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	rootCmd.AddCommand(newTokenizeCmd(a))
	rootCmd.AddCommand(newCommentsCmd(a))
	rootCmd.AddCommand(newAnnotationsCmd(a))
	rootCmd.AddCommand(newAnnotateCmd(a))
	rootCmd.AddCommand(newUnannotateCmd(a))
	rootCmd.AddCommand(newReannotateCmd(a))
	rootCmd.AddCommand(newIgnoreCmd(a))
	rootCmd.AddCommand(newUndoCmd(a))
	rootCmd.AddCommand(newTreeCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to vbcore.toml or vbcore.yaml (default: nearest one above the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.BoolP("verbose", "v", false, "log at debug level")
	pf.BoolP("quiet", "q", false, "log errors only")
	pf.String("project", "", "VBA project name used to qualify modules")
	pf.Bool("timings", false, "show timing information")
	pf.Uint16("max-diagnostics", 100, "maximum number of diagnostics kept per module")
	pf.String("min-severity", "info", "lowest diagnostic severity to print (info|warning|error)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write runtime trace to file")
	return rootCmd
}

// main runs the CLI. If command execution returns an error, the process exits with status code 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
