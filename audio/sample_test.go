package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// wavBytes encodes 16-bit stereo PCM into a minimal RIFF/WAVE file.
func wavBytes(rate int, frames [][2]int16) []byte {
	var data bytes.Buffer
	for _, f := range frames {
		binary.Write(&data, binary.LittleEndian, f[0])
		binary.Write(&data, binary.LittleEndian, f[1])
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+data.Len()))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*4))
	binary.Write(&b, binary.LittleEndian, uint16(4))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(data.Len()))
	b.Write(data.Bytes())
	return b.Bytes()
}

func TestDecodeSampleWAV(t *testing.T) {
	raw := wavBytes(44100, [][2]int16{{0, 0}, {16384, -16384}, {32767, -32768}})
	s, err := DecodeSample("normal-hitnormal.wav", bytes.NewReader(raw), StereoSpec(44100))
	if err != nil {
		t.Fatalf("DecodeSample: %v", err)
	}
	if s.Frames() != 3 {
		t.Fatalf("Frames = %d, want 3", s.Frames())
	}
	want := []float32{0, 0, 0.5, -0.5, 32767.0 / 32768, -1}
	for i, w := range want {
		if math.Abs(float64(s.Data[i]-w)) > 1e-6 {
			t.Errorf("Data[%d] = %v, want %v", i, s.Data[i], w)
		}
	}
}

func TestDecodeSampleRejectsGarbage(t *testing.T) {
	if _, err := DecodeSample("broken.wav", bytes.NewReader([]byte("nope")), StereoSpec(44100)); err == nil {
		t.Error("expected an error for a non-WAV file")
	}
}

func TestConvertPCM16(t *testing.T) {
	src := []byte{0x00, 0x80, 0xff, 0x7f, 0x00, 0x00}
	dst := make([]float32, 2)
	if n := convertPCM16(dst, src); n != 2 {
		t.Fatalf("converted %d samples, want 2", n)
	}
	if dst[0] != -1 {
		t.Errorf("dst[0] = %v, want -1", dst[0])
	}
	if math.Abs(float64(dst[1])-1) > 1e-4 {
		t.Errorf("dst[1] = %v, want ~1", dst[1])
	}
}
