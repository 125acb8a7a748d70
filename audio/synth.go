package audio

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/oshu/beatmap"
)

// DefaultSamples synthesises the built-in hit sounds used when a beatmap
// does not ship its own.
func DefaultSamples(spec Spec) map[beatmap.SoundType]*Sample {
	rate := float64(spec.SampleRate)
	return map[beatmap.SoundType]*Sample{
		beatmap.SoundNormal:  tone("default-hitnormal", rate, 0.08, 0.5, 880),
		beatmap.SoundWhistle: tone("default-hitwhistle", rate, 0.15, 0.3, 1760),
		beatmap.SoundFinish:  tone("default-hitfinish", rate, 0.35, 0.3, 440, 660),
		beatmap.SoundClap:    noise("default-hitclap", rate, 0.06, 0.4),
	}
}

// Tone returns a plain stereo sine wave.
func Tone(rate, seconds, amplitude, freq float64) *Sample {
	frames := int(rate * seconds)
	data := make([]float32, 2*frames)
	for i := 0; i < frames; i++ {
		v := float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/rate))
		data[2*i], data[2*i+1] = v, v
	}
	return NewSample("tone", data)
}

// tone sums sines with an exponential decay envelope.
func tone(name string, rate, seconds, amplitude float64, freqs ...float64) *Sample {
	frames := int(rate * seconds)
	data := make([]float32, 2*frames)
	scale := amplitude / float64(len(freqs))
	for i := 0; i < frames; i++ {
		t := float64(i) / rate
		env := math.Exp(-5 * t / seconds)
		var v float64
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		s := float32(v * scale * env)
		data[2*i], data[2*i+1] = s, s
	}
	return NewSample(name, data)
}

func noise(name string, rate, seconds, amplitude float64) *Sample {
	rng := rand.New(rand.NewPCG(0x05, 0x4a))
	frames := int(rate * seconds)
	data := make([]float32, 2*frames)
	for i := 0; i < frames; i++ {
		env := math.Exp(-6 * float64(i) / float64(frames))
		s := float32((rng.Float64()*2 - 1) * amplitude * env)
		data[2*i], data[2*i+1] = s, s
	}
	return NewSample(name, data)
}
