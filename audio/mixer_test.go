package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"math"
	"testing"

	"github.com/automoto/oshu/beatmap"
)

// pcmStream builds a stream over raw 16-bit stereo frames.
func pcmStream(rate int, frames []int16) *Stream {
	var buf bytes.Buffer
	for _, v := range frames {
		binary.Write(&buf, binary.LittleEndian, v)
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return newPCMStream(bytes.NewReader(buf.Bytes()), rate, int64(len(frames)))
}

func TestMixerOutputBounds(t *testing.T) {
	m := NewMixer(4)
	m.Play(constSample(64, 1), 0.25, false)
	m.Play(constSample(64, -1), 0.25, true)
	m.Play(constSample(64, 1), 0.5, false)

	out := make([]float32, 128)
	for i := range out {
		out[i] = 7 // garbage from a previous callback
	}
	m.Mix(out)
	for i, v := range out {
		if v < -1 || v > 1 {
			t.Fatalf("out[%d] = %v outside [-1,1]", i, v)
		}
	}
}

func TestMixerMusicFirst(t *testing.T) {
	m := NewMixer(1)
	m.SetMusic(pcmStream(100, []int16{16384, 16384, 16384, 16384}))
	m.Play(constSample(4, 0.25), 1, false)

	out := make([]float32, 8)
	m.Mix(out)
	for i, v := range out {
		if math.Abs(float64(v)-0.75) > 1e-6 {
			t.Errorf("out[%d] = %v, want 0.75", i, v)
		}
	}
}

func TestMixerReplacesOldestOneShot(t *testing.T) {
	m := NewMixer(2)
	a, b, c := constSample(100, 0.1), constSample(100, 0.2), constSample(100, 0.3)
	m.Play(a, 1, false)
	m.Play(b, 1, false)
	if !m.Play(c, 1, false) {
		t.Fatal("Play refused with one-shots to replace")
	}
	if m.channels[0].sample != c || m.channels[1].sample != b {
		t.Errorf("expected the oldest channel to be replaced")
	}
}

func TestMixerKeepsLoops(t *testing.T) {
	m := NewMixer(1)
	m.Play(constSample(10, 0.1), 1, true)
	if m.Play(constSample(10, 0.2), 1, false) {
		t.Error("Play replaced a looping channel")
	}
}

func TestMixerStopAll(t *testing.T) {
	m := NewMixer(3)
	m.Play(constSample(10, 0.1), 1, true)
	m.Play(constSample(10, 0.2), 1, false)
	m.StopAll()
	if got := m.Active(); got != 0 {
		t.Errorf("Active = %d after StopAll, want 0", got)
	}
}

func TestStreamReadAndTimestamp(t *testing.T) {
	s := pcmStream(10, []int16{0, 1000, 2000, 3000, 4000})

	out := make([]float32, 4)
	n, err := s.Read(out)
	if err != nil || n != 2 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if got := s.Timestamp(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("Timestamp = %v, want 0.1", got)
	}

	out = make([]float32, 10)
	n, err = s.Read(out)
	if err != nil || n != 3 {
		t.Fatalf("Read = %d, %v; want 3 frames", n, err)
	}
	if got := s.Timestamp(); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Timestamp = %v, want 0.4", got)
	}

	n, err = s.Read(out)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("Read at end = %d, %v; want 0, EOF", n, err)
	}
	if !s.Finished() {
		t.Error("stream not finished at EOF")
	}
}

func TestStreamSeekResetsTimestamp(t *testing.T) {
	s := pcmStream(10, make([]int16, 50))
	out := make([]float32, 60)
	s.Read(out)
	if err := s.Seek(1.0); err != nil {
		t.Fatal(err)
	}
	if got := s.Timestamp(); got != 1.0 {
		t.Errorf("Timestamp after seek = %v, want 1", got)
	}
	n, _ := s.Read(make([]float32, 2))
	if n != 1 {
		t.Fatalf("Read after seek = %d", n)
	}
	if got := s.Timestamp(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Timestamp = %v, want 1.0", got)
	}

	// Past the end clamps to the track length.
	if err := s.Seek(60); err != nil {
		t.Fatal(err)
	}
	if got := s.Timestamp(); got != 5 {
		t.Errorf("Timestamp = %v, want 5", got)
	}
}

func TestStreamTimestampNeverRegresses(t *testing.T) {
	s := pcmStream(10, nil)
	s.advanceTimestamp(3.0)
	s.advanceTimestamp(2.5)
	if got := s.Timestamp(); got != 3.0 {
		t.Errorf("Timestamp = %v, want 3", got)
	}
}

func TestNewStreamRejectsUnknownFormat(t *testing.T) {
	_, err := NewStream("song.flac", bytes.NewReader(nil), StereoSpec(44100))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLibraryFallsBackToDefault(t *testing.T) {
	spec := StereoSpec(8000)
	custom := constSample(10, 0.5)
	var loaded []string

	l := NewLibrary("maps/set", spec, NewMixer(4))
	l.SetLoader(func(path string, _ Spec) (*Sample, error) {
		loaded = append(loaded, path)
		if path == "maps/set/soft-hitclap2.wav" {
			return custom, nil
		}
		return nil, fs.ErrNotExist
	})

	clap := SampleKey{Set: beatmap.SampleSoft, Index: 2, Type: beatmap.SoundClap}
	if got := l.Get(clap); got != custom {
		t.Errorf("Get(%v) did not return the beatmap sample", clap)
	}
	whistle := SampleKey{Set: beatmap.SampleDrum, Index: 0, Type: beatmap.SoundWhistle}
	if got := l.Get(whistle); got == nil || got.Name != "default-hitwhistle" {
		t.Errorf("Get(%v) = %v, want the default whistle", whistle, got)
	}
	l.Get(whistle)
	if len(loaded) != 2 {
		t.Errorf("loader called %d times, want 2 (cached after first lookup)", len(loaded))
	}
}

func TestLibraryPlayHitAdditions(t *testing.T) {
	m := NewMixer(8)
	l := NewLibrary("", StereoSpec(8000), m)
	h := &beatmap.Hit{Sound: beatmap.Sound{
		Set:         beatmap.SampleNormal,
		AdditionSet: beatmap.SampleSoft,
		Types:       beatmap.SoundNormal | beatmap.SoundWhistle | beatmap.SoundClap,
	}}
	l.PlayHit(h)
	if got := m.Active(); got != 3 {
		t.Errorf("Active = %d, want 3", got)
	}
}

func TestLibraryTypeVolume(t *testing.T) {
	m := NewMixer(2)
	l := NewLibrary("", StereoSpec(8000), m)
	l.SetVolume(0.5)
	l.SetTypeVolume(beatmap.SoundClap, 0.5)
	l.Play(SampleKey{Set: beatmap.SampleNormal, Type: beatmap.SoundClap}, 1)
	l.Play(SampleKey{Set: beatmap.SampleNormal, Type: beatmap.SoundNormal}, 1)
	if got := m.channels[0].volume; got != 0.25 {
		t.Errorf("clap volume = %v, want 0.25", got)
	}
	if got := m.channels[1].volume; got != 0.5 {
		t.Errorf("normal volume = %v, want 0.5", got)
	}
}

func TestSampleKeyFilename(t *testing.T) {
	tests := []struct {
		key  SampleKey
		want string
	}{
		{SampleKey{beatmap.SampleNormal, 0, beatmap.SoundNormal}, "normal-hitnormal.wav"},
		{SampleKey{beatmap.SampleSoft, 1, beatmap.SoundWhistle}, "soft-hitwhistle.wav"},
		{SampleKey{beatmap.SampleDrum, 3, beatmap.SoundFinish}, "drum-hitfinish3.wav"},
	}
	for _, tt := range tests {
		if got := tt.key.Filename(); got != tt.want {
			t.Errorf("Filename() = %q, want %q", got, tt.want)
		}
	}
}
