package profiler

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var lines []string
	p := NewProfiler(
		WithClock(clock.now),
		WithInterval(time.Second),
		WithLogger(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	for i := 0; i < 9; i++ {
		clock.t = clock.t.Add(100 * time.Millisecond)
		if p.Tick(10 * time.Millisecond) {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}
	clock.t = clock.t.Add(100 * time.Millisecond)
	if !p.Tick(30 * time.Millisecond) {
		t.Fatal("expected a report once the interval elapsed")
	}

	stats := p.Last()
	if stats.Frames != 10 {
		t.Errorf("Frames = %d, want 10", stats.Frames)
	}
	if stats.FPS != 10 {
		t.Errorf("FPS = %v, want 10", stats.FPS)
	}
	if stats.AvgFrameMs != 12 {
		t.Errorf("AvgFrameMs = %v, want 12", stats.AvgFrameMs)
	}
	if stats.MaxFrameMs != 30 {
		t.Errorf("MaxFrameMs = %v, want 30", stats.MaxFrameMs)
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "[Profiler]") {
		t.Errorf("log lines = %q", lines)
	}

	clock.t = clock.t.Add(100 * time.Millisecond)
	if p.Tick(5 * time.Millisecond) {
		t.Error("counters should reset after a report")
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
