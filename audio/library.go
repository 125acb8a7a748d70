package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/automoto/oshu/beatmap"
	"github.com/charmbracelet/log"
)

// SampleKey identifies a hit sound.
type SampleKey struct {
	Set   beatmap.SampleSet
	Index int
	Type  beatmap.SoundType
}

// Filename is the on-disk name of the sample in a beatmap directory, e.g.
// soft-hitwhistle2.wav. Index 0 and 1 map to the unnumbered file.
func (k SampleKey) Filename() string {
	if k.Index <= 1 {
		return fmt.Sprintf("%s-hit%s.wav", k.Set, k.Type)
	}
	return fmt.Sprintf("%s-hit%s%d.wav", k.Set, k.Type, k.Index)
}

// SampleLoader loads a sample file for a spec. LoadSample is the default.
type SampleLoader func(path string, spec Spec) (*Sample, error)

// Library maps hit-sound keys to samples and plays them on the mixer.
// It is only used from the game thread.
type Library struct {
	dir      string
	spec     Spec
	mixer    *Mixer
	volume   float64
	scales   map[beatmap.SoundType]float64
	load     SampleLoader
	samples  map[SampleKey]*Sample
	defaults map[beatmap.SoundType]*Sample
}

// NewLibrary creates a library backed by the beatmap directory dir.
func NewLibrary(dir string, spec Spec, mixer *Mixer) *Library {
	return &Library{
		dir:      dir,
		spec:     spec,
		mixer:    mixer,
		volume:   1,
		scales:   make(map[beatmap.SoundType]float64),
		load:     LoadSample,
		samples:  make(map[SampleKey]*Sample),
		defaults: DefaultSamples(spec),
	}
}

// SetLoader replaces the sample loader.
func (l *Library) SetLoader(load SampleLoader) {
	l.load = load
}

// SetVolume sets the effect volume multiplier.
func (l *Library) SetVolume(v float64) {
	l.volume = v
}

// SetTypeVolume scales every sample of sound type t.
func (l *Library) SetTypeVolume(t beatmap.SoundType, v float64) {
	l.scales[t] = v
}

// Get returns the sample for key, loading it on first use. When the file is
// missing or broken the built-in sample for the same type is used instead.
func (l *Library) Get(key SampleKey) *Sample {
	if s, ok := l.samples[key]; ok {
		return s
	}
	s := l.lookup(key)
	l.samples[key] = s
	return s
}

func (l *Library) lookup(key SampleKey) *Sample {
	if l.dir != "" && key.Set != beatmap.SampleAuto {
		path := filepath.Join(l.dir, key.Filename())
		s, err := l.load(path, l.spec)
		if err == nil {
			return s
		}
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("sample not in beatmap, using default", "file", key.Filename())
		} else {
			log.Warn("could not load sample, using default", "file", key.Filename(), "error", err)
		}
	}
	return l.defaults[key.Type]
}

// Play starts the sample for key at the given volume.
func (l *Library) Play(key SampleKey, volume float64) {
	s := l.Get(key)
	if s == nil {
		return
	}
	if scale, ok := l.scales[key.Type]; ok {
		volume *= scale
	}
	if !l.mixer.Play(s, volume*l.volume, false) {
		log.Debug("no free effect channel", "sample", s.Name)
	}
}

// PlayHit plays the hit-normal sound of the hit plus each of its additions.
func (l *Library) PlayHit(h *beatmap.Hit) {
	snd := h.Sound
	volume := snd.Volume
	if volume == 0 {
		volume = 1
	}
	for _, t := range beatmap.SoundTypes {
		if snd.Types&t == 0 {
			continue
		}
		set := snd.AdditionSet
		if t == beatmap.SoundNormal {
			set = snd.Set
		}
		l.Play(SampleKey{Set: set, Index: snd.Index, Type: t}, volume)
	}
}
