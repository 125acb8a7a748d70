package game

import "github.com/automoto/oshu/beatmap"

// Clock reconciles the wall clock and the audio timestamp into the play
// clock Now. All values are seconds.
type Clock struct {
	System float64 // wall time of the last tick
	Audio  float64 // audio timestamp seen on the last tick
	Before float64 // Now of the previous tick
	Now    float64
}

// Start sets the clock for the first frame of play. Lead-in runs on wall
// time from a negative Now; without lead-in, a beatmap starting within the
// first second gets one second of pre-roll before its first hit.
func (c *Clock) Start(b *beatmap.Beatmap, wall float64) {
	switch first := b.FirstHitTime(); {
	case b.Difficulty.AudioLeadIn > 0:
		c.Now = -b.Difficulty.AudioLeadIn
	case first < 1:
		c.Now = first - 1
	default:
		c.Now = 0
	}
	c.Before = c.Now
	c.Audio = 0
	c.System = wall
}

// Tick advances the clock by one frame. While the audio timestamp is stale
// the clock extrapolates from the wall clock, and it snaps to the audio as
// soon as the audio moves. Now never decreases.
func (c *Clock) Tick(wall, audio float64, paused bool) {
	diff := wall - c.System
	prevAudio := c.Audio
	c.Before = c.Now

	switch {
	case paused:
	case c.Before < 0:
		c.Now = c.Before + diff
	case audio == prevAudio:
		c.Now = c.Before + diff
	default:
		c.Now = audio
	}
	if c.Now < c.Before {
		c.Now = c.Before
	}

	c.Audio = audio
	c.System = wall
}

// Jump moves the clock to t regardless of monotonicity. Only seeking uses it.
func (c *Clock) Jump(t, wall float64) {
	c.Now = t
	c.Before = t
	c.Audio = t
	c.System = wall
}
