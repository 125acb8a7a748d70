package config

import (
	"image/color"
	"time"
)

// Quality levels accepted by OSHU_QUALITY.
const (
	QualityDefault = "default"
	QualityLow     = "low"
)

// DisplayConfig contains window and rendering configuration values
type DisplayConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FrameRate int    `yaml:"frame_rate"`
	Quality   string `yaml:"quality"`
	Title     string `yaml:"-"`
}

// LowQuality reports whether optional visual features are disabled.
func (d DisplayConfig) LowQuality() bool {
	return d.Quality == QualityLow
}

// FrameDuration is the per-frame time budget.
func (d DisplayConfig) FrameDuration() time.Duration {
	if d.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(d.FrameRate)
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate     int           `yaml:"sample_rate"`
	EffectChannels int           `yaml:"effect_channels"`
	MusicVolume    float64       `yaml:"music_volume"`
	EffectVolume   float64       `yaml:"effect_volume"`
	BufferSize     time.Duration `yaml:"buffer_size"`
}

// GameConfig contains gameplay configuration values
type GameConfig struct {
	// Fraction of the leniency window granted before a slider's end
	SliderEndLeniency float64 `yaml:"slider_end_leniency"`

	// Seek steps and the rewind applied on unpause, in seconds
	SeekBackward  float64 `yaml:"seek_backward"`
	SeekForward   float64 `yaml:"seek_forward"`
	UnpauseRewind float64 `yaml:"unpause_rewind"`

	// Frames missed before the one-shot pacing warning
	MissedFrameWarning int `yaml:"missed_frame_warning"`
}

// UIConfig contains widget colors and timings
type UIConfig struct {
	BackgroundDim     float64 // alpha of the black veil over the background while playing
	PausedDim         float64
	MetadataFade      float64 // seconds
	MetadataHold      float64 // seconds shown before fading out
	CursorTrailLength int

	HitColor      color.RGBA
	SliderColor   color.RGBA
	GoodColor     color.RGBA
	MissedColor   color.RGBA
	CursorColor   color.RGBA
	ProgressColor color.RGBA
	TextColor     color.RGBA

	FontSize      float64
	TitleFontSize float64
}

// Render layers, drawn in order.
const (
	LayerBackground = iota
	LayerPlayfield
	LayerOverlay
)

var Display DisplayConfig
var Audio AudioConfig
var Game GameConfig
var UI UIConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Pink         = color.RGBA{R: 255, G: 102, B: 170, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	Display = DisplayConfig{
		Width:     960,
		Height:    720,
		FrameRate: 60,
		Quality:   QualityDefault,
		Title:     "oshu!",
	}

	Audio = AudioConfig{
		SampleRate:     44100,
		EffectChannels: 16,
		MusicVolume:    1.0,
		EffectVolume:   1.0,
		BufferSize:     40 * time.Millisecond,
	}

	Game = GameConfig{
		SliderEndLeniency:  0.5,
		SeekBackward:       10,
		SeekForward:        20,
		UnpauseRewind:      1,
		MissedFrameWarning: 1000,
	}

	UI = UIConfig{
		BackgroundDim:     0.6,
		PausedDim:         0.85,
		MetadataFade:      1.0,
		MetadataHold:      4.0,
		CursorTrailLength: 8,

		HitColor:      Pink,
		SliderColor:   LightBlue,
		GoodColor:     Green,
		MissedColor:   LightRed,
		CursorColor:   Yellow,
		ProgressColor: White,
		TextColor:     White,

		FontSize:      14,
		TitleFontSize: 22,
	}

	ApplyEnv()
}
