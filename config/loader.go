package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional override file inside the oshu home.
const FileName = "oshu.yaml"

// Environment variables read by the runtime.
const (
	EnvHome    = "OSHU_HOME"
	EnvQuality = "OSHU_QUALITY"
)

// fileConfig is the layout of oshu.yaml. Absent keys keep their defaults.
type fileConfig struct {
	Display DisplayConfig           `yaml:"display"`
	Audio   AudioConfig             `yaml:"audio"`
	Game    GameConfig              `yaml:"game"`
	Sound   SoundConfig             `yaml:"sound"`
	Input   map[string]InputBinding `yaml:"input"`
}

// Home returns the oshu home directory: $OSHU_HOME, or ~/.oshu.
func Home() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".oshu")
	}
	return ".oshu"
}

// BeatmapsDir is the root of the beatmap library.
func BeatmapsDir() string {
	return filepath.Join(Home(), "beatmaps")
}

// DefaultPath is the override file location.
func DefaultPath() string {
	return filepath.Join(Home(), FileName)
}

// ApplyEnv applies environment overrides to the global configuration.
func ApplyEnv() {
	switch os.Getenv(EnvQuality) {
	case QualityLow:
		Display.Quality = QualityLow
	case QualityDefault:
		Display.Quality = QualityDefault
	}
}

// Load merges the YAML file at path into the global configuration. A
// missing file is not an error. Environment variables win over the file.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse merges a YAML document into the global configuration.
func Parse(data []byte) error {
	f := fileConfig{Display: Display, Audio: Audio, Game: Game}
	f.Sound.VolumeMultipliers = make(map[string]float64, len(Sound.VolumeMultipliers))
	for name, v := range Sound.VolumeMultipliers {
		f.Sound.VolumeMultipliers[name] = v
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	bindings := make(map[string]InputBinding, len(f.Input))
	for name, b := range f.Input {
		if _, ok := ParseAction(name); !ok {
			return fmt.Errorf("unknown input action %q", name)
		}
		bindings[name] = b
	}
	if err := validate(&f); err != nil {
		return err
	}

	Display = f.Display
	Audio = f.Audio
	Game = f.Game
	Sound = f.Sound
	for name, b := range bindings {
		a, _ := ParseAction(name)
		Input.Bindings[a] = b
	}
	ApplyEnv()
	return nil
}

func validate(f *fileConfig) error {
	if f.Display.Quality != QualityLow && f.Display.Quality != QualityDefault {
		return fmt.Errorf("invalid quality %q", f.Display.Quality)
	}
	if f.Display.FrameRate <= 0 {
		return fmt.Errorf("invalid frame rate %d", f.Display.FrameRate)
	}
	if f.Audio.SampleRate <= 0 || f.Audio.EffectChannels <= 0 {
		return fmt.Errorf("invalid audio settings: %d Hz, %d channels", f.Audio.SampleRate, f.Audio.EffectChannels)
	}
	if f.Game.SliderEndLeniency <= 0 {
		return fmt.Errorf("invalid slider end leniency %v", f.Game.SliderEndLeniency)
	}
	if err := validateSound(f.Sound); err != nil {
		return err
	}
	f.Audio.MusicVolume = clamp01(f.Audio.MusicVolume)
	f.Audio.EffectVolume = clamp01(f.Audio.EffectVolume)
	return nil
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
