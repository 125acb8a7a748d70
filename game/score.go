package game

import (
	"fmt"
	"math"

	"github.com/automoto/oshu/beatmap"
)

// Score is the verdict count over a beatmap.
type Score struct {
	Good    int
	Bad     int
	Skipped int
	Total   int
}

// Ratio is good/(good+bad), NaN when nothing was judged.
func (s Score) Ratio() float64 {
	if s.Good+s.Bad == 0 {
		return math.NaN()
	}
	return float64(s.Good) / float64(s.Good+s.Bad)
}

func (s Score) String() string {
	r := s.Ratio()
	if math.IsNaN(r) {
		return fmt.Sprintf("%d good, %d missed", s.Good, s.Bad)
	}
	return fmt.Sprintf("%d good, %d missed (%.2f%%)", s.Good, s.Bad, 100*r)
}

// ComputeScore counts the verdicts of every real hit.
func ComputeScore(b *beatmap.Beatmap) Score {
	s := Score{Total: b.Len()}
	for _, h := range b.Real() {
		switch h.State {
		case beatmap.Good:
			s.Good++
		case beatmap.Missed:
			s.Bad++
		case beatmap.Skipped:
			s.Skipped++
		}
	}
	return s
}
