package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Stream decodes a compressed music track into stereo float at the device
// rate. The decoders hand out 16-bit stereo PCM already resampled to the
// device rate, so the byte position is the codec timestamp.
type Stream struct {
	src        io.ReadSeeker
	closer     io.Closer
	sampleRate int
	length     int64 // frames, or -1 when unknown

	buf      []byte
	frame    int64 // next frame to emit
	finished bool

	// Written by the audio thread, read by the game thread.
	timestamp atomic.Uint64
}

// OpenStream opens and decodes the track at path for the given spec.
func OpenStream(path string, spec Spec) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio %s: %w", path, err)
	}
	s, err := NewStream(filepath.Base(path), f, spec)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// NewStream decodes src, picking the codec from the name's extension.
func NewStream(name string, src io.ReadSeeker, spec Spec) (*Stream, error) {
	var (
		dec    io.ReadSeeker
		length int64 = -1
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		d, err := mp3.DecodeWithSampleRate(spec.SampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode mp3 %s: %w", name, err)
		}
		dec, length = d, d.Length()/bytesPerFrame
	case ".ogg":
		d, err := vorbis.DecodeWithSampleRate(spec.SampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", name, err)
		}
		dec, length = d, d.Length()/bytesPerFrame
	case ".wav":
		d, err := wav.DecodeWithSampleRate(spec.SampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", name, err)
		}
		dec, length = d, d.Length()/bytesPerFrame
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return newPCMStream(dec, spec.SampleRate, length), nil
}

func newPCMStream(src io.ReadSeeker, sampleRate int, length int64) *Stream {
	return &Stream{src: src, sampleRate: sampleRate, length: length}
}

// Timestamp is the playback time in seconds of the most recent frame
// returned by Read. It never decreases except through Seek.
func (s *Stream) Timestamp() float64 {
	return math.Float64frombits(s.timestamp.Load())
}

func (s *Stream) setTimestamp(t float64) {
	s.timestamp.Store(math.Float64bits(t))
}

// Duration is the track length in seconds, or 0 when unknown.
func (s *Stream) Duration() float64 {
	if s.length < 0 {
		return 0
	}
	return float64(s.length) / float64(s.sampleRate)
}

// Finished reports whether the stream hit the end or a decode error.
func (s *Stream) Finished() bool {
	return s.finished
}

// Read writes up to len(out)/2 stereo frames. It returns 0 and io.EOF at the
// end of the track. A decode error ends the stream: the frames decoded so far
// are returned along with the error.
func (s *Stream) Read(out []float32) (int, error) {
	if s.finished {
		return 0, io.EOF
	}
	frames := len(out) / 2
	if frames == 0 {
		return 0, nil
	}
	want := frames * bytesPerFrame
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	buf := s.buf[:want]

	n, err := io.ReadFull(s.src, buf)
	got := n / bytesPerFrame
	convertPCM16(out[:2*got], buf[:got*bytesPerFrame])
	if got > 0 {
		s.frame += int64(got)
		s.advanceTimestamp(float64(s.frame-1) / float64(s.sampleRate))
	}

	switch {
	case err == nil:
		return got, nil
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		if got == 0 {
			s.finished = true
			return 0, io.EOF
		}
		return got, nil
	default:
		s.finished = true
		return got, fmt.Errorf("audio decode: %w", err)
	}
}

// advanceTimestamp keeps the previous timestamp when the codec reports a
// spurious decrease.
func (s *Stream) advanceTimestamp(t float64) {
	if t < s.Timestamp() {
		return
	}
	s.setTimestamp(t)
}

// Seek repositions the decoder and resets the timestamp to target.
func (s *Stream) Seek(target float64) error {
	if target < 0 {
		target = 0
	}
	frame := int64(target * float64(s.sampleRate))
	if s.length >= 0 && frame > s.length {
		frame = s.length
		target = float64(frame) / float64(s.sampleRate)
	}
	if _, err := s.src.Seek(frame*bytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("audio seek to %.3fs: %w", target, err)
	}
	s.frame = frame
	s.finished = false
	s.setTimestamp(target)
	return nil
}

// Close releases the underlying file.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
