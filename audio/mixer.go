package audio

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Mixer is the body of the device callback: one music stream plus a fixed
// pool of effect channels. Everything in it is guarded by one lock. The
// audio thread holds it for a whole Mix call, the game thread takes it
// briefly to start samples or seek.
type Mixer struct {
	mu          sync.Mutex
	music       *Stream
	musicVolume float32
	musicLogged bool
	channels    []Channel
	seq         uint64
}

// NewMixer creates a mixer with n effect channels.
func NewMixer(n int) *Mixer {
	return &Mixer{
		musicVolume: 1,
		channels:    make([]Channel, n),
	}
}

// Mix fills out with interleaved stereo frames: zero, add the music, then
// add every effect channel.
func (m *Mixer) Mix(out []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(out)
	if m.music != nil {
		m.mixMusic(out)
	}
	for i := range m.channels {
		m.channels[i].Mix(out)
	}
}

func (m *Mixer) mixMusic(out []float32) {
	n, err := m.music.Read(out)
	if err != nil && !errors.Is(err, io.EOF) && !m.musicLogged {
		log.Warn("music stream stopped", "error", err)
		m.musicLogged = true
	}
	if m.musicVolume == 1 {
		return
	}
	for i := range out[:2*n] {
		out[i] *= m.musicVolume
	}
}

// SetMusic replaces the music stream. The previous one is not closed.
func (m *Mixer) SetMusic(s *Stream) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.music = s
	m.musicLogged = false
}

// Music returns the current music stream, possibly nil.
func (m *Mixer) Music() *Stream {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.music
}

// SeekMusic repositions the music stream under the lock.
func (m *Mixer) SeekMusic(target float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.music == nil {
		return nil
	}
	return m.music.Seek(target)
}

// SetMusicVolume sets the music amplitude, clamped to [0,1].
func (m *Mixer) SetMusicVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicVolume = clampVolume(v)
}

// Play binds s to a free channel, or to the channel holding the oldest
// one-shot when every channel is busy. It returns false when every channel
// is looping.
func (m *Mixer) Play(s *Sample, volume float64, loop bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	pick := -1
	for i := range m.channels {
		c := &m.channels[i]
		if c.Idle() {
			pick = i
			break
		}
		if c.Looping() {
			continue
		}
		if pick < 0 || c.started < m.channels[pick].started {
			pick = i
		}
	}
	if pick < 0 {
		return false
	}
	m.seq++
	c := &m.channels[pick]
	c.Play(s, clampVolume(volume), loop)
	c.started = m.seq
	return true
}

// StopAll makes every channel idle.
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.channels {
		m.channels[i].Reset()
	}
}

// Active counts the channels currently bound to a sample.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.channels {
		if !m.channels[i].Idle() {
			n++
		}
	}
	return n
}

func clampVolume(v float64) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return float32(v)
}
