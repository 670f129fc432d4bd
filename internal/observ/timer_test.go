package observ

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	endLoad := tm.Track("load")     // start 1ms
	endCommit := tm.Track("commit") // start 2ms
	endCommit("2 modules")          // end 3ms
	endLoad("")                     // end 4ms

	want := Report{
		TotalMS: 4,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 3},
			{Name: "commit", DurationMS: 1, Note: "2 modules"},
		},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	wantSummary := "timings:\n" +
		"  load            3.00 ms\n" +
		"  commit          1.00 ms  // 2 modules\n" +
		"  total           4.00 ms\n"
	if got := tm.Summary(); got != wantSummary {
		t.Errorf("Summary() = %q, want %q", got, wantSummary)
	}
}

func TestTimerEmptyAndLog(t *testing.T) {
	tm := NewTimer()
	if diff := cmp.Diff(Report{}, tm.Report()); diff != "" {
		t.Errorf("empty report mismatch:\n%s", diff)
	}

	tm.now = fakeClock(time.Millisecond)
	tm.Track("load")("")
	core, logs := observer.New(zap.DebugLevel)
	tm.Log(zap.New(core))
	entries := logs.FilterMessage("phase finished").AllUntimed()
	if len(entries) != 1 || entries[0].ContextMap()["phase"] != "load" {
		t.Errorf("unexpected log entries: %+v", entries)
	}
}
