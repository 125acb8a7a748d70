package beatmap

import (
	"math"
	"path/filepath"
)

// HitType is the classifier bitmask of a hit object, as stored in the
// type field of a .osu hit object line.
type HitType int

const (
	TypeCircle   HitType = 1 << iota // 1
	TypeSlider                       // 2
	TypeNewCombo                     // 4
	TypeSpinner                      // 8
	TypeComboSkip1
	TypeComboSkip2
	TypeComboSkip3
	TypeHold HitType = 1 << 7
)

// State is the judgement state of a single hit.
type State int

const (
	Initial State = iota
	Good
	Missed
	Skipped
)

func (s State) String() string {
	switch s {
	case Initial:
		return "initial"
	case Good:
		return "good"
	case Missed:
		return "missed"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// SampleSet names a bundle of hit-sound samples.
type SampleSet int

const (
	SampleAuto SampleSet = iota
	SampleNormal
	SampleSoft
	SampleDrum
)

func (s SampleSet) String() string {
	switch s {
	case SampleNormal:
		return "normal"
	case SampleSoft:
		return "soft"
	case SampleDrum:
		return "drum"
	}
	return "auto"
}

// ParseSampleSet accepts either the numeric or the named form.
func ParseSampleSet(v string) SampleSet {
	switch v {
	case "1", "normal", "Normal":
		return SampleNormal
	case "2", "soft", "Soft":
		return SampleSoft
	case "3", "drum", "Drum":
		return SampleDrum
	}
	return SampleAuto
}

// SoundType is the hit-sound bitmask. SoundNormal is always played.
type SoundType int

const (
	SoundNormal SoundType = 1 << iota
	SoundWhistle
	SoundFinish
	SoundClap
)

// SoundTypes lists every sound type in bit order.
var SoundTypes = []SoundType{SoundNormal, SoundWhistle, SoundFinish, SoundClap}

func (s SoundType) String() string {
	switch s {
	case SoundNormal:
		return "normal"
	case SoundWhistle:
		return "whistle"
	case SoundFinish:
		return "finish"
	case SoundClap:
		return "clap"
	}
	return "none"
}

// Sound describes which samples a hit triggers.
type Sound struct {
	Set         SampleSet
	AdditionSet SampleSet
	Index       int
	Volume      float64 // 0..1, zero means use the beatmap default
	Types       SoundType
}

// Slider holds the slider-only part of a hit.
type Slider struct {
	Path     *Path
	Duration float64 // seconds for a single repeat
	Repeat   int
}

// Hit is one user-actionable object. Hits live in Beatmap.Hits and are
// addressed by index; Prev and Next are index arithmetic over that array.
type Hit struct {
	Time   float64
	Type   HitType
	P      Point
	State  State
	Offset float64
	Sound  Sound
	Slider Slider
}

// IsSlider reports whether the hit is a slider.
func (h *Hit) IsSlider() bool {
	return h.Type&TypeSlider != 0
}

// EndTime is the time the hit is fully resolved: the slider tail for sliders,
// the hit time for circles.
func (h *Hit) EndTime() float64 {
	if h.IsSlider() {
		return h.Time + h.Slider.Duration*float64(h.Slider.Repeat)
	}
	return h.Time
}

// PositionAt returns where the hit expects the cursor to be at time t. For
// sliders the path parameter bounces back and forth on every repeat.
func (h *Hit) PositionAt(t float64) Point {
	if !h.IsSlider() || h.Slider.Path == nil || h.Slider.Duration <= 0 {
		return h.P
	}
	progress := (t - h.Time) / h.Slider.Duration
	repeat := float64(h.Slider.Repeat)
	if progress <= 0 {
		return h.Slider.Path.At(0)
	}
	if progress >= repeat {
		progress = repeat
	}
	lap := math.Floor(progress)
	frac := progress - lap
	if progress == repeat && repeat > 0 {
		lap = repeat - 1
		frac = 1
	}
	if int(lap)%2 == 1 {
		frac = 1 - frac
	}
	return h.Slider.Path.At(frac)
}

// Metadata is the descriptive part of a beatmap.
type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Source        string
	Creator       string
	Version       string
}

// Difficulty holds both the raw .osu values and the derived gameplay values.
type Difficulty struct {
	OverallDifficulty float64
	CircleSize        float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64

	Leniency     float64 // seconds, half-width of the judgement window
	CircleRadius float64 // beatmap pixels
	ApproachTime float64 // seconds of visual pre-roll
	AudioLeadIn  float64 // seconds
}

// Beatmap is a fully parsed chart. Hits[0] and Hits[len-1] are the head and
// tail sentinels; real hits are Hits[1:len-1], strictly time-ordered.
type Beatmap struct {
	Path               string
	FormatVersion      int
	Metadata           Metadata
	Difficulty         Difficulty
	AudioFilename      string
	BackgroundFilename string
	SampleSet          SampleSet
	SampleVolume       float64
	Hits               []Hit
}

// New builds a beatmap around the given hits, adding the sentinels.
func New(hits []Hit) *Beatmap {
	b := &Beatmap{}
	b.SetHits(hits)
	return b
}

// SetHits replaces the hit list. Hits must already be sorted by time.
func (b *Beatmap) SetHits(hits []Hit) {
	all := make([]Hit, 0, len(hits)+2)
	all = append(all, Hit{Time: math.Inf(-1), State: Skipped})
	all = append(all, hits...)
	all = append(all, Hit{Time: math.Inf(1), State: Skipped})
	for i := 2; i < len(all)-1; i++ {
		if all[i].Time < all[i-1].Time {
			panic("beatmap: hits are not time-ordered")
		}
	}
	b.Hits = all
}

// Head is the index of the head sentinel.
func (b *Beatmap) Head() int { return 0 }

// First is the index of the first real hit, or Tail when there is none.
func (b *Beatmap) First() int { return 1 }

// Tail is the index of the tail sentinel.
func (b *Beatmap) Tail() int { return len(b.Hits) - 1 }

// Len is the number of real hits.
func (b *Beatmap) Len() int { return len(b.Hits) - 2 }

// Hit returns the hit at index i.
func (b *Beatmap) Hit(i int) *Hit {
	if i < 0 || i >= len(b.Hits) {
		panic("beatmap: hit index out of range")
	}
	return &b.Hits[i]
}

// Real returns the real hits, without sentinels.
func (b *Beatmap) Real() []Hit {
	if len(b.Hits) < 2 {
		return nil
	}
	return b.Hits[1 : len(b.Hits)-1]
}

// FirstHitTime is the time of the first real hit, +Inf when empty.
func (b *Beatmap) FirstHitTime() float64 {
	return b.Hits[b.First()].Time
}

// Duration is the time at which the last hit ends.
func (b *Beatmap) Duration() float64 {
	if b.Len() == 0 {
		return 0
	}
	return b.Hits[b.Tail()-1].EndTime()
}

// Dir is the directory audio and background filenames are relative to.
func (b *Beatmap) Dir() string {
	return filepath.Dir(b.Path)
}

// AudioPath resolves the audio filename against the beatmap directory.
func (b *Beatmap) AudioPath() string {
	if b.AudioFilename == "" {
		return ""
	}
	return filepath.Join(b.Dir(), b.AudioFilename)
}

// BackgroundPath resolves the background filename against the beatmap directory.
func (b *Beatmap) BackgroundPath() string {
	if b.BackgroundFilename == "" {
		return ""
	}
	return filepath.Join(b.Dir(), b.BackgroundFilename)
}

// DisplayTitle prefers the Unicode title when present.
func (m Metadata) DisplayTitle() string {
	if m.TitleUnicode != "" {
		return m.TitleUnicode
	}
	return m.Title
}

// DisplayArtist prefers the Unicode artist when present.
func (m Metadata) DisplayArtist() string {
	if m.ArtistUnicode != "" {
		return m.ArtistUnicode
	}
	return m.Artist
}
