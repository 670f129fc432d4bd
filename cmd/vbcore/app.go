package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vbcore/internal/config"
	"vbcore/internal/diag"
	"vbcore/internal/diagfmt"
	"vbcore/internal/observ"
	"vbcore/internal/prof"
	"vbcore/internal/project"
	"vbcore/internal/rewrite"
)

// app is the state shared by all commands of one invocation.
type app struct {
	cfg            *config.Config
	log            *zap.Logger
	color          bool
	timings        bool
	maxDiagnostics uint16
	minSeverity    diag.Severity
	timer          *observ.Timer
	stopProfile    func() error
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(cfgPath, ".")
	if err != nil {
		return err
	}
	if name, _ := flags.GetString("project"); name != "" {
		cfg.Project = name
	}
	verbose, _ := flags.GetBool("verbose")
	quiet, _ := flags.GetBool("quiet")
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	log, err := newLogger(cfg.Log, verbose, quiet)
	if err != nil {
		return err
	}

	colorFlag, _ := flags.GetString("color")
	switch colorFlag {
	case "on":
		a.color = true
	case "off":
		a.color = false
	case "auto":
		a.color = isTerminal(os.Stdout)
	default:
		return fmt.Errorf("unsupported --color %q (must be auto, on or off)", colorFlag)
	}
	color.NoColor = !a.color

	a.cfg = cfg
	a.log = log
	a.timings, _ = flags.GetBool("timings")
	a.maxDiagnostics, _ = flags.GetUint16("max-diagnostics")
	sevName, _ := flags.GetString("min-severity")
	if a.minSeverity, err = diag.ParseSeverity(sevName); err != nil {
		return fmt.Errorf("--min-severity: %w", err)
	}
	a.timer = observ.NewTimer()
	if err := a.startProfiling(cmd); err != nil {
		return err
	}
	log.Debug("config resolved",
		zap.String("path", cfg.Path()),
		zap.String("project", cfg.Project),
		zap.Bool("journal", cfg.Journal.Enabled))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) {
	if a.stopProfile != nil {
		if err := a.stopProfile(); err != nil {
			a.log.Warn("profiling", zap.Error(err))
		}
	}
	if a.timer != nil {
		a.timer.Log(a.log)
		if a.timings {
			fmt.Fprint(cmd.ErrOrStderr(), a.timer.Summary())
		}
	}
	if a.log != nil {
		_ = a.log.Sync() // stderr не всегда поддерживает fsync
	}
}

// startProfiling reads the profiling flags and starts the requested profilers.
func (a *app) startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpu-profile")
	opts.Mem, _ = flags.GetString("mem-profile")
	opts.Trace, _ = flags.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	stop, err := prof.Start(opts)
	if err != nil {
		return err
	}
	a.stopProfile = stop
	a.log.Debug("profiling started",
		zap.String("cpu", opts.CPU),
		zap.String("mem", opts.Mem),
		zap.String("trace", opts.Trace))
	return nil
}

// newLogger builds a production zap logger writing to stderr.
// Console output uses the development encoder for humans.
func newLogger(cfg config.LogConfig, verbose, quiet bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level := cfg.Level
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = lvl
	zc.Encoding = cfg.Format
	if cfg.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}
	zc.Sampling = nil
	zc.DisableStacktrace = !verbose
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// open loads the given paths into a workspace configured from a.cfg.
func (a *app) open(cmd *cobra.Command, paths []string) (*project.Workspace, error) {
	done := a.timer.Track("load")
	ws, err := project.Open(cmd.Context(), project.Options{
		Project:        a.cfg.Project,
		MaxDiagnostics: a.maxDiagnostics,
		Newline:        a.cfg.Newline,
		Encoding:       a.cfg.Encoding,
		Logger:         a.log,
	}, paths...)
	if err != nil {
		done("failed")
		return nil, err
	}
	done(fmt.Sprintf("%d modules", len(ws.Names())))
	return ws, nil
}

// manager creates the rewrite manager for ws, with the journal when enabled.
func (a *app) manager(ws *project.Workspace) (*rewrite.Manager, error) {
	opts := []rewrite.Option{rewrite.WithLogger(a.log)}
	if a.cfg.Journal.Enabled {
		j, err := rewrite.OpenJournal(a.cfg.JournalDir())
		if err != nil {
			return nil, err
		}
		opts = append(opts, rewrite.WithJournal(j))
	}
	return rewrite.NewManager(ws, opts...), nil
}

// printDiagnostics renders diagnostics of ws to w.
func (a *app) printDiagnostics(w io.Writer, ws *project.Workspace, diags []diag.Diagnostic) {
	diags = diag.AtLeast(diags, a.minSeverity)
	if len(diags) == 0 {
		return
	}
	diagfmt.Pretty(w, diags, ws.Sources(), diagfmt.PrettyOpts{Color: a.color, ShowNotes: true})
}
