package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{5.9, "0:05"},
		{65, "1:05"},
		{-2, "-0:02"},
		{3600, "60:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusRefreshesOnChange(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf, true, 80, 125)

	s.Update("play", 1.2)
	s.Update("play", 1.7)
	if got := strings.Count(buf.String(), "\r"); got != 1 {
		t.Errorf("wrote %d lines, want 1 for an unchanged second", got)
	}
	s.Update("pause", 1.7)
	if got := strings.Count(buf.String(), "\r"); got != 2 {
		t.Errorf("wrote %d lines, want 2", got)
	}
	if !strings.Contains(buf.String(), "0:01") || !strings.Contains(buf.String(), "2:05") {
		t.Errorf("status = %q", buf.String())
	}
}

func TestStatusQuietWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf, false, 80, 0)
	s.Update("play", 3)
	if buf.Len() != 0 {
		t.Errorf("wrote %q to a non-terminal", buf.String())
	}
	s.Finish("2 good, 0 missed (100.00%)")
	if got := buf.String(); got != "2 good, 0 missed (100.00%)\n" {
		t.Errorf("final line = %q", got)
	}
}

func TestLineFitsWidth(t *testing.T) {
	s := NewWriter(&bytes.Buffer{}, true, 8, 300)
	if got := s.Line("play", 10); len(got) > 7 {
		t.Errorf("line %q wider than the terminal", got)
	}
}
