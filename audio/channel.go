package audio

// Channel plays one Sample into the mix. An unbound channel is idle.
// Channels are owned by a Mixer and only touched under its lock.
type Channel struct {
	sample  *Sample
	cursor  int // frames
	volume  float32
	loop    bool
	started uint64
}

// Play binds a sample and rewinds the cursor.
func (c *Channel) Play(s *Sample, volume float32, loop bool) {
	c.sample = s
	c.cursor = 0
	c.volume = volume
	c.loop = loop
}

// Reset unbinds the sample, making the channel idle.
func (c *Channel) Reset() {
	c.sample = nil
	c.cursor = 0
	c.loop = false
}

// Idle reports whether no sample is bound.
func (c *Channel) Idle() bool {
	return c.sample == nil
}

// Looping reports whether the bound sample wraps around.
func (c *Channel) Looping() bool {
	return c.sample != nil && c.loop
}

// Mix adds len(out)/2 stereo frames of the bound sample, scaled by the
// channel volume, on top of out. It never clears out and never allocates.
// It returns the number of frames it contributed to.
func (c *Channel) Mix(out []float32) int {
	frames := len(out) / 2
	produced := 0
	for produced < frames && c.sample != nil {
		data := c.sample.Data
		total := len(data) / 2
		if c.cursor >= total {
			if c.loop && total > 0 {
				c.cursor = 0
			} else {
				c.Reset()
				break
			}
		}
		n := min(frames-produced, total-c.cursor)
		src := data[2*c.cursor : 2*(c.cursor+n)]
		dst := out[2*produced : 2*(produced+n)]
		for i := range src {
			dst[i] += src[i] * c.volume
		}
		c.cursor += n
		produced += n
		if c.cursor >= total && !c.loop {
			c.Reset()
		}
	}
	return produced
}
