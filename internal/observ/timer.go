// Package observ measures the phases of a CLI run (load, analyze, commit).
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase records the duration and metadata of one pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases in the order they were started. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	phases []Phase
}

func NewTimer() *Timer { return &Timer{now: time.Now, phases: make([]Phase, 0, 8)} }

// Track starts a phase and returns the function that ends it.
func (t *Timer) Track(name string) func(note string) {
	t.mu.Lock()
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	idx := len(t.phases) - 1
	t.mu.Unlock()
	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		p.Dur = t.now().Sub(p.Start)
		p.Note = note
	}
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: toMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = toMillis(total)
	return report
}

// Summary returns a human-readable table of all phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

// Log writes one Debug entry per phase.
func (t *Timer) Log(log *zap.Logger) {
	for _, p := range t.Report().Phases {
		log.Debug("phase finished",
			zap.String("phase", p.Name),
			zap.Float64("ms", p.DurationMS),
			zap.String("note", p.Note))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
