// Package console writes the one-line status shown in the terminal while
// a beatmap plays.
package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Status refreshes a single terminal line in place. On a non-terminal
// output only the final line is written.
type Status struct {
	out      io.Writer
	tty      bool
	width    int
	duration float64
	last     string

	label  map[string]lipgloss.Style
	clock  lipgloss.Style
	dimmed lipgloss.Style
}

// New creates a status line on f, detecting whether f is a terminal.
func New(f *os.File, duration float64) *Status {
	fd := int(f.Fd())
	tty := term.IsTerminal(fd)
	width := 80
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = w
	}
	return NewWriter(f, tty, width, duration)
}

// NewWriter creates a status line on any writer.
func NewWriter(out io.Writer, tty bool, width int, duration float64) *Status {
	r := lipgloss.NewRenderer(out)
	return &Status{
		out:      out,
		tty:      tty,
		width:    width,
		duration: duration,
		label: map[string]lipgloss.Style{
			"play":  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
			"pause": r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
			"score": r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		},
		clock:  r.NewStyle().Foreground(lipgloss.Color("15")),
		dimmed: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Update redraws the line when its text changes.
func (s *Status) Update(screen string, now float64) {
	if !s.tty {
		return
	}
	line := s.Line(screen, now)
	if line == s.last {
		return
	}
	s.last = line
	fmt.Fprintf(s.out, "\r%s\x1b[K", line)
}

// Line formats the status for a screen at play time now.
func (s *Status) Line(screen string, now float64) string {
	style, ok := s.label[screen]
	if !ok {
		style = s.dimmed
	}
	parts := []string{
		style.Render(fmt.Sprintf("%-5s", screen)),
		s.clock.Render(FormatClock(now)),
	}
	if s.duration > 0 {
		parts = append(parts, s.dimmed.Render("/ "+FormatClock(s.duration)))
	}
	line := strings.Join(parts, " ")
	if s.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(s.width - 1).Render(line)
	}
	return line
}

// Finish ends the status line and prints a final message.
func (s *Status) Finish(msg string) {
	if s.tty && s.last != "" {
		fmt.Fprint(s.out, "\r\x1b[K")
	}
	fmt.Fprintln(s.out, msg)
}

// FormatClock formats seconds as m:ss, with a sign during lead-in.
func FormatClock(t float64) string {
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	total := int(math.Floor(t))
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}
