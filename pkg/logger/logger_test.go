package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warn ", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"", INFO},
		{"verbose", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, WARN)

	l.Debugf("debug %d", 1)
	l.Printf("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	for _, absent := range []string{"debug 1", "info 2"} {
		if strings.Contains(out, absent) {
			t.Errorf("output contains %q: %s", absent, out)
		}
	}
	for _, present := range []string{"warn 3", "error 4"} {
		if !strings.Contains(out, present) {
			t.Errorf("output missing %q: %s", present, out)
		}
	}
}

func TestDebugLevelWritesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, DEBUG)
	l.Debugf("geocode variant %q", "Київ")
	l.Println("imported")
	if !strings.Contains(buf.String(), `geocode variant "Київ"`) || !strings.Contains(buf.String(), "imported") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
