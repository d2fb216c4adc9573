package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.End()

	child := timer.Child("child")
	child.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	if buf.Len() != 0 {
		t.Errorf("NoOp collector should produce no output, got: %s", buf.String())
	}
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())

	if collector == nil {
		t.Fatal("FromContext should never return nil")
	}
	if _, ok := collector.(noOpCollector); !ok {
		t.Errorf("FromContext should return noOpCollector when none present, got: %T", collector)
	}
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	if !ok || retrieved != collector {
		t.Error("FromContext should return the same collector that was added")
	}
}

func TestStartTimerUsesContextCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	timer := StartTimer(ctx, "parser.parse")
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	if !strings.HasPrefix(buf.String(), "parser.parse: ") {
		t.Errorf("expected report to start with the timer name, got: %s", buf.String())
	}
}

func TestTimingCollectorReportsTree(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = fakeClock(5 * time.Millisecond)

	root := collector.Start("parser.parse")
	lex := root.Child("parser.lex")
	lex.End()
	build := root.Child("parser.build")
	build.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	expected := "parser.parse: 25ms\n" +
		"├─ parser.lex: 5ms\n" +
		"└─ parser.build: 5ms\n"
	if buf.String() != expected {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestTimingCollectorNestsUnderCurrent(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = fakeClock(time.Millisecond)

	outer := collector.Start("load")
	inner := collector.Start("parser.parse")
	inner.End()
	sibling := collector.Start("validate")
	sibling.End()
	outer.End()

	if len(collector.root.children) != 2 {
		t.Fatalf("expected 2 children under root, got %d", len(collector.root.children))
	}
	if collector.root.children[0].name != "parser.parse" || collector.root.children[1].name != "validate" {
		t.Errorf("unexpected children order: %s, %s",
			collector.root.children[0].name, collector.root.children[1].name)
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf)

	if buf.Len() != 0 {
		t.Errorf("expected no output before any timer starts, got: %s", buf.String())
	}
}

func TestUnfinishedTimerHasZeroDuration(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = fakeClock(time.Millisecond)

	root := collector.Start("parser.parse")
	root.Child("parser.build")
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	if !strings.Contains(buf.String(), "└─ parser.build: 0ms") {
		t.Errorf("expected unfinished child to report 0ms, got: %s", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0ms"},
		{12 * time.Millisecond, "12ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.00s"},
		{2500 * time.Millisecond, "2.50s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.duration); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
		}
	}
}
