package audio

import (
	"math"
	"testing"
)

func constSample(frames int, v float32) *Sample {
	data := make([]float32, 2*frames)
	for i := range data {
		data[i] = v
	}
	return NewSample("const", data)
}

func TestChannelMixIsAdditive(t *testing.T) {
	var c Channel
	c.Play(constSample(4, 0.5), 0.5, false)

	out := []float32{0.1, 0.1, 0.1, 0.1}
	if n := c.Mix(out); n != 2 {
		t.Fatalf("Mix = %d frames, want 2", n)
	}
	for i, v := range out {
		if math.Abs(float64(v)-0.35) > 1e-6 {
			t.Errorf("out[%d] = %v, want 0.35", i, v)
		}
	}
	if c.Idle() {
		t.Error("channel went idle before the end of the sample")
	}
}

func TestChannelOneShotUnbindsAtEnd(t *testing.T) {
	var c Channel
	c.Play(constSample(3, 1), 1, false)

	out := make([]float32, 10)
	if n := c.Mix(out); n != 3 {
		t.Fatalf("Mix = %d frames, want 3", n)
	}
	if !c.Idle() {
		t.Fatal("one-shot channel still bound after its end")
	}
	for i := 6; i < len(out); i++ {
		if out[i] != 0 {
			t.Errorf("out[%d] = %v past the end of the sample", i, out[i])
		}
	}
	if n := c.Mix(out); n != 0 {
		t.Errorf("idle channel produced %d frames", n)
	}
}

func TestChannelLoopWraps(t *testing.T) {
	data := []float32{1, 1, 2, 2, 3, 3}
	var c Channel
	c.Play(NewSample("ramp", data), 1, true)

	out := make([]float32, 14)
	if n := c.Mix(out); n != 7 {
		t.Fatalf("Mix = %d frames, want 7", n)
	}
	want := []float32{1, 2, 3, 1, 2, 3, 1}
	for i, w := range want {
		if out[2*i] != w || out[2*i+1] != w {
			t.Errorf("frame %d = (%v,%v), want %v", i, out[2*i], out[2*i+1], w)
		}
	}
	if c.Idle() {
		t.Error("looping channel went idle")
	}
}

func TestChannelEmptyLoopDoesNotSpin(t *testing.T) {
	var c Channel
	c.Play(NewSample("empty", nil), 1, true)
	if n := c.Mix(make([]float32, 8)); n != 0 {
		t.Errorf("Mix = %d, want 0", n)
	}
	if !c.Idle() {
		t.Error("empty looping sample should unbind")
	}
}

func TestChannelMixDoesNotAllocate(t *testing.T) {
	var c Channel
	s := constSample(1024, 0.25)
	out := make([]float32, 256)
	allocs := testing.AllocsPerRun(100, func() {
		c.Play(s, 1, true)
		c.Mix(out)
	})
	if allocs != 0 {
		t.Errorf("Mix allocated %v times per run", allocs)
	}
}

// Scenario: a looping sine at half volume and a one-shot at full volume.
func TestMixScenario(t *testing.T) {
	const rate = 44100
	sine := Tone(rate, 0.1, 1, 440)
	shot := constSample(100, 0.25)

	m := NewMixer(2)
	m.Play(sine, 0.5, true)
	m.Play(shot, 1.0, false)

	out := make([]float32, 2*256)
	m.Mix(out)

	for i := 0; i < 256; i++ {
		want := sine.Data[2*i] * 0.5
		if i < 100 {
			want += 0.25
		}
		for ch := 0; ch < 2; ch++ {
			if got := out[2*i+ch]; math.Abs(float64(got-want)) > 1e-6 {
				t.Fatalf("frame %d ch %d = %v, want %v", i, ch, got, want)
			}
		}
	}
	if got := m.Active(); got != 1 {
		t.Errorf("Active = %d, want 1 (one-shot should be idle)", got)
	}
}
