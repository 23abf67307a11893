package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(LevelInfo, &buf).log(tt.level, tt.message, tt.fields, tt.err)

			if logged := buf.Len() > 0; logged != tt.want {
				t.Fatalf("log() logged = %v, want %v", logged, tt.want)
			}
			if !tt.want {
				return
			}

			entries := decodeLines(t, &buf)
			if entries[0].Message != tt.message || entries[0].Level != string(tt.level) {
				t.Errorf("entry = %+v", entries[0])
			}
			if tt.err != nil && entries[0].Error != tt.err.Error() {
				t.Errorf("entry error = %q, want %q", entries[0].Error, tt.err.Error())
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := New(LevelDebug, &buf)
	child := base.With(Fields{"table": "past", "row": 1})

	child.Debug("row parsed", Fields{"row": 2})
	base.Info("plain", nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["table"] != "past" {
		t.Errorf("inherited field missing: %v", entries[0].Fields)
	}
	if entries[0].Fields["row"] != float64(2) {
		t.Errorf("call-site field should win, got %v", entries[0].Fields["row"])
	}
	if len(entries[1].Fields) != 0 {
		t.Errorf("parent logger should not gain fields, got %v", entries[1].Fields)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" INFO ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("events.parsed")
	m.IncrCounter("events.parsed")
	m.AddCounter("fights", 5)
	m.SetGauge("events.total", 3)
	m.RecordTiming("fetch", 100*time.Millisecond)
	m.RecordTiming("fetch", 300*time.Millisecond)

	if got := m.Counter("events.parsed"); got != 2 {
		t.Errorf("Counter(events.parsed) = %d, want 2", got)
	}

	snap := m.Snapshot()
	if snap.Counters["fights"] != 5 {
		t.Errorf("fights counter = %d, want 5", snap.Counters["fights"])
	}
	if snap.Gauges["events.total"] != 3 {
		t.Errorf("events.total gauge = %v, want 3", snap.Gauges["events.total"])
	}

	stats := snap.Timings["fetch"]
	if stats.Count != 2 || stats.Min != 100*time.Millisecond || stats.Max != 300*time.Millisecond {
		t.Errorf("unexpected timing stats: %+v", stats)
	}
	if stats.Average != 200*time.Millisecond {
		t.Errorf("average = %v, want 200ms", stats.Average)
	}

	m.IncrCounter("events.parsed")
	if snap.Counters["events.parsed"] != 2 {
		t.Error("snapshot should not change after later updates")
	}
}
