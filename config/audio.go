package config

import (
	"fmt"

	"github.com/automoto/oshu/beatmap"
)

// SoundConfig scales hit sounds by type, on top of the effect volume.
type SoundConfig struct {
	VolumeMultipliers map[string]float64 `yaml:"volume_multipliers"`
}

// Multiplier returns the scale for a sound type, 1 when unset.
func (s SoundConfig) Multiplier(t beatmap.SoundType) float64 {
	if v, ok := s.VolumeMultipliers[t.String()]; ok {
		return v
	}
	return 1
}

var Sound SoundConfig

func init() {
	Sound = SoundConfig{
		VolumeMultipliers: map[string]float64{
			beatmap.SoundFinish.String(): 0.8,
		},
	}
}

func validateSound(s SoundConfig) error {
	for name, v := range s.VolumeMultipliers {
		if !knownSoundType(name) {
			return fmt.Errorf("unknown sound type %q", name)
		}
		if v < 0 {
			return fmt.Errorf("negative volume multiplier for %s", name)
		}
	}
	return nil
}

func knownSoundType(name string) bool {
	for _, t := range beatmap.SoundTypes {
		if t.String() == name {
			return true
		}
	}
	return false
}
