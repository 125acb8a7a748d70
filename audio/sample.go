package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Spec is the output format every sample and stream is converted to.
// Channels is always 2: interleaved stereo float.
type Spec struct {
	SampleRate int
	Channels   int
}

// StereoSpec returns a stereo Spec at the given rate.
func StereoSpec(sampleRate int) Spec {
	return Spec{SampleRate: sampleRate, Channels: 2}
}

const bytesPerFrame = 4 // 16-bit stereo as produced by the decoders

// Sample is a fully decoded, device-format PCM buffer.
type Sample struct {
	Name string
	Data []float32 // interleaved stereo
}

// NewSample wraps interleaved stereo data.
func NewSample(name string, data []float32) *Sample {
	return &Sample{Name: name, Data: data}
}

// Frames is the number of stereo frames in the sample.
func (s *Sample) Frames() int {
	return len(s.Data) / 2
}

// LoadSample decodes a WAV (or OGG) file and resamples it once to spec.
func LoadSample(path string, spec Spec) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample %s: %w", path, err)
	}
	return DecodeSample(filepath.Base(path), bytes.NewReader(data), spec)
}

// DecodeSample decodes an in-memory sample. The format is picked from the
// name's extension, WAV being the default.
func DecodeSample(name string, src io.ReadSeeker, spec Spec) (*Sample, error) {
	var (
		stream io.Reader
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(spec.SampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", name, err)
		}
	default:
		stream, err = wav.DecodeWithSampleRate(spec.SampleRate, src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", name, err)
		}
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", name, err)
	}
	pcm := make([]float32, len(decoded)/bytesPerFrame*2)
	convertPCM16(pcm, decoded)
	return NewSample(name, pcm), nil
}

// convertPCM16 converts little-endian signed 16-bit samples to float32.
// It converts min(len(dst), len(src)/2) samples and returns that count.
func convertPCM16(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(src[2*i:]))
		dst[i] = float32(v) / 32768
	}
	return n
}
