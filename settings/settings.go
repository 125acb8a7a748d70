// Package settings persists the user's audio preferences between runs.
package settings

import (
	"encoding/json"
	"fmt"

	cfg "github.com/automoto/oshu/config"
	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
)

const (
	appName = "oshu"
	itemKey = "settings"
)

// Saved is the settings data stored on disk.
type Saved struct {
	MusicVolume  float64 `json:"musicVolume"`
	EffectVolume float64 `json:"effectVolume"`
}

// itemStore is the part of gdata.Manager the store needs.
type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store reads and writes Saved through gdata.
type Store struct {
	items itemStore
}

// Open initialises the platform data directory for oshu.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings storage: %w", err)
	}
	return &Store{items: m}, nil
}

// Load returns the saved settings, or nil when nothing was saved yet.
func (s *Store) Load() (*Saved, error) {
	data, err := s.items.LoadItem(itemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var saved Saved
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse saved settings: %w", err)
	}
	return &saved, nil
}

// Save writes the settings.
func (s *Store) Save(saved *Saved) error {
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if err := s.items.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Current snapshots the configured volumes.
func Current() *Saved {
	return &Saved{
		MusicVolume:  cfg.Audio.MusicVolume,
		EffectVolume: cfg.Audio.EffectVolume,
	}
}

// Apply copies saved volumes into the audio configuration.
func Apply(saved *Saved) {
	if saved == nil {
		return
	}
	cfg.Audio.MusicVolume = clamp01(saved.MusicVolume)
	cfg.Audio.EffectVolume = clamp01(saved.EffectVolume)
}

// LoadAndApply applies the saved settings if there are any. Failures are
// logged: the defaults are always usable.
func LoadAndApply() {
	store, err := Open()
	if err != nil {
		log.Warn("could not initialize persistence", "error", err)
		return
	}
	saved, err := store.Load()
	if err != nil {
		log.Warn("could not load settings", "error", err)
		return
	}
	Apply(saved)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
