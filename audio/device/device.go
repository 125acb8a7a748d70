// Package device connects the mixer to the system audio output through
// ebiten's audio context. The context's player goroutine is the audio
// thread: it pulls float32 frames from Device.Read.
package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	oaudio "github.com/automoto/oshu/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const bytesPerFrame = 8 // stereo float32

var (
	globalContext *audio.Context
	contextOnce   sync.Once
)

// context returns the process-wide audio context. ebiten allows only one.
func context(sampleRate int) *audio.Context {
	contextOnce.Do(func() {
		globalContext = audio.NewContext(sampleRate)
	})
	return globalContext
}

// Device owns the output player and the mixer it pulls from.
type Device struct {
	mixer   *oaudio.Mixer
	music   *oaudio.Stream
	player  *audio.Player
	scratch []float32
}

// Open creates the output player at sampleRate. The player stays paused
// until Play is called.
func Open(sampleRate int, mixer *oaudio.Mixer, buffer time.Duration) (*Device, error) {
	ctx := context(sampleRate)
	if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz", ctx.SampleRate())
	}
	d := &Device{
		mixer: mixer,
	}
	player, err := ctx.NewPlayerF32(d)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio output: %w", err)
	}
	if buffer > 0 {
		player.SetBufferSize(buffer)
	}
	d.player = player
	return d, nil
}

// Read is the device callback. It renders len(p)/8 frames from the mixer
// and never reports the end of the stream.
func (d *Device) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(d.scratch) < 2*frames {
		d.scratch = make([]float32, 2*frames)
	}
	buf := d.scratch[:2*frames]
	d.mixer.Mix(buf)
	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	return frames * bytesPerFrame, nil
}

// SetMusic installs the music stream.
func (d *Device) SetMusic(s *oaudio.Stream) {
	d.music = s
	d.mixer.SetMusic(s)
}

// Play starts pulling frames.
func (d *Device) Play() {
	d.player.Play()
}

// Pause stops pulling frames; the music position is kept.
func (d *Device) Pause() {
	d.player.Pause()
}

// Resume restarts a paused device.
func (d *Device) Resume() {
	d.Play()
}

// Timestamp is the music stream's playback time, 0 without music. It is
// read without the lock: a stale value corrects itself on the next frame.
func (d *Device) Timestamp() float64 {
	if d.music == nil {
		return 0
	}
	return d.music.Timestamp()
}

// Duration is the music length in seconds, 0 when unknown.
func (d *Device) Duration() float64 {
	if d.music == nil {
		return 0
	}
	return d.music.Duration()
}

// Seek moves the music under the device lock.
func (d *Device) Seek(target float64) error {
	return d.mixer.SeekMusic(target)
}

// Close stops the player and releases the music stream.
func (d *Device) Close() error {
	d.player.Pause()
	if err := d.player.Close(); err != nil {
		return err
	}
	d.mixer.StopAll()
	d.mixer.SetMusic(nil)
	if d.music != nil {
		return d.music.Close()
	}
	return nil
}
