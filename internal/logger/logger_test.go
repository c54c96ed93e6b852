package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Debug("hidden", nil)
	l.Info("shown", Fields{"venue": "velvet-room"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var entry Entry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" || entry.Message != "shown" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Fields["venue"] != "velvet-room" {
		t.Errorf("fields = %v", entry.Fields)
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Error("scrape failed", Fields{"venue": "grand-annex"}, errTest)

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("error field = %q, want boom", entry.Error)
	}
}

type testErr string

func (e testErr) Error() string { return string(e) }

var errTest = testErr("boom")

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("pipeline.inserted")
	m.IncrCounter("pipeline.inserted")
	m.AddCounter("pipeline.no_op", 3)
	m.RecordTiming("scrape.velvet-room", 100*time.Millisecond)
	m.RecordTiming("scrape.velvet-room", 300*time.Millisecond)

	counters, timings := m.Snapshot()

	if counters["pipeline.inserted"] != 2 {
		t.Errorf("inserted = %d, want 2", counters["pipeline.inserted"])
	}
	if counters["pipeline.no_op"] != 3 {
		t.Errorf("no_op = %d, want 3", counters["pipeline.no_op"])
	}

	stats := timings["scrape.velvet-room"]
	if stats.Count != 2 {
		t.Fatalf("timing count = %d, want 2", stats.Count)
	}
	if stats.Min != 100*time.Millisecond || stats.Max != 300*time.Millisecond {
		t.Errorf("min/max = %v/%v", stats.Min, stats.Max)
	}
	if stats.Average != 200*time.Millisecond {
		t.Errorf("average = %v, want 200ms", stats.Average)
	}
}
