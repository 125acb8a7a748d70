package game

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/oshu/beatmap"
)

const eps = 1e-9

func TestClockLeadIn(t *testing.T) {
	b := beatmap.New([]beatmap.Hit{{Time: 5, Type: beatmap.TypeCircle}})
	b.Difficulty.AudioLeadIn = 2

	var c Clock
	c.Start(b, 0)
	walls := []float64{0, 0.5, 1.0, 1.5, 2.0, 2.5}
	want := []float64{-2, -1.5, -1, -0.5, 0, 0.5}
	for i, wall := range walls {
		c.Tick(wall, 0, false)
		if math.Abs(c.Now-want[i]) > eps {
			t.Errorf("wall=%v: now = %v, want %v", wall, c.Now, want[i])
		}
	}
}

func TestClockStart(t *testing.T) {
	tests := []struct {
		name   string
		leadIn float64
		first  float64
		want   float64
	}{
		{"lead-in wins", 1.5, 0.2, -1.5},
		{"early first hit", 0, 0.4, -0.6},
		{"late first hit", 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := beatmap.New([]beatmap.Hit{{Time: tt.first}})
			b.Difficulty.AudioLeadIn = tt.leadIn
			var c Clock
			c.Start(b, 10)
			if math.Abs(c.Now-tt.want) > eps {
				t.Errorf("now = %v, want %v", c.Now, tt.want)
			}
			if c.System != 10 {
				t.Errorf("system = %v, want 10", c.System)
			}
		})
	}

	t.Run("empty beatmap", func(t *testing.T) {
		var c Clock
		c.Start(beatmap.New(nil), 0)
		if c.Now != 0 {
			t.Errorf("now = %v, want 0", c.Now)
		}
	})
}

func TestClockAudioJitter(t *testing.T) {
	c := Clock{System: 0, Audio: 3.0, Before: 3.0, Now: 3.0}
	wall := 0.0
	for i, want := range []float64{3.016, 3.032, 3.048, 3.064} {
		wall += 0.016
		c.Tick(wall, 3.0, false)
		if math.Abs(c.Now-want) > 1e-6 {
			t.Errorf("frame %d: now = %v, want %v", i, c.Now, want)
		}
	}
	wall += 0.016
	c.Tick(wall, 3.080, false)
	if math.Abs(c.Now-3.080) > 1e-6 {
		t.Errorf("resync: now = %v, want 3.080", c.Now)
	}
}

func TestClockPauseHoldsTime(t *testing.T) {
	c := Clock{System: 0, Audio: 4, Before: 4, Now: 4}
	c.Tick(1, 5, true)
	if c.Now != 4 {
		t.Errorf("paused now = %v, want 4", c.Now)
	}
	// After the pause the wall delta is one frame, not the whole pause.
	c.Tick(1.016, 5, false)
	if math.Abs(c.Now-4.016) > 1e-6 {
		t.Errorf("now = %v, want 4.016", c.Now)
	}
}

func TestClockIgnoresAudioRegression(t *testing.T) {
	c := Clock{System: 0, Audio: 3.0, Before: 3.0, Now: 3.1}
	c.Tick(0.016, 2.5, false)
	if c.Now != 3.1 {
		t.Errorf("now = %v, want 3.1 (clamped)", c.Now)
	}
}

func TestClockMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	b := beatmap.New([]beatmap.Hit{{Time: 2}})
	b.Difficulty.AudioLeadIn = 0.5

	var c Clock
	c.Start(b, 0)
	wall, audio := 0.0, 0.0
	for i := 0; i < 10000; i++ {
		wall += rng.Float64() * 0.03
		switch rng.IntN(4) {
		case 0: // duplicate
		case 1:
			audio += rng.Float64() * 0.1
		case 2:
			audio -= rng.Float64() * 0.05
		case 3:
			audio += rng.Float64()
		}
		prev := c.Now
		c.Tick(wall, audio, rng.IntN(10) == 0)
		if c.Now < prev {
			t.Fatalf("frame %d: now went from %v to %v", i, prev, c.Now)
		}
	}
}
