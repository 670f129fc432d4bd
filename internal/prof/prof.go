// Package prof wires runtime/pprof and runtime/trace to CLI flags.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options names the output files; empty paths are skipped.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

func (o Options) Enabled() bool { return o.CPU != "" || o.Mem != "" || o.Trace != "" }

// Start enables the requested profilers. The returned stop function ends them,
// writes the heap profile and is safe to call more than once.
func Start(opts Options) (stop func() error, err error) {
	var cpuFile, traceFile *os.File
	stopped := false
	stop = func() error {
		if stopped {
			return nil
		}
		stopped = true
		var errs []error
		if cpuFile != nil {
			pprof.StopCPUProfile()
			errs = append(errs, cpuFile.Close())
		}
		if traceFile != nil {
			trace.Stop()
			errs = append(errs, traceFile.Close())
		}
		if opts.Mem != "" {
			errs = append(errs, writeMem(opts.Mem))
		}
		return errors.Join(errs...)
	}

	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		cpuFile = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			opts.Mem = "" // профиль памяти не пишем при ошибке старта
			_ = stop()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			opts.Mem = ""
			_ = stop()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		traceFile = f
	}
	return stop, nil
}

// writeMem captures a heap profile to path.
func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mem profile: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
