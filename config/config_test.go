package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/automoto/oshu/beatmap"
	"github.com/automoto/oshu/game"
)

func saveGlobals(t *testing.T) {
	t.Helper()
	display, audio, gameCfg, sound := Display, Audio, Game, Sound
	bindings := make(map[game.Action]InputBinding, len(Input.Bindings))
	for a, b := range Input.Bindings {
		bindings[a] = b
	}
	t.Cleanup(func() {
		Display, Audio, Game, Sound = display, audio, gameCfg, sound
		Input.Bindings = bindings
	})
}

func TestDefaults(t *testing.T) {
	if Game.SliderEndLeniency != 0.5 {
		t.Errorf("slider end leniency = %v, want 0.5", Game.SliderEndLeniency)
	}
	if Game.SeekBackward != 10 || Game.SeekForward != 20 {
		t.Errorf("seek steps = %v/%v, want 10/20", Game.SeekBackward, Game.SeekForward)
	}
	if got := Display.FrameDuration(); got != time.Second/60 {
		t.Errorf("frame duration = %v", got)
	}
	for a := game.ActionNone + 1; a < game.ActionCount; a++ {
		if len(Input.Bindings[a].Keys) == 0 {
			t.Errorf("action %v has no key", a)
		}
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	saveGlobals(t)
	t.Setenv(EnvQuality, "")

	doc := []byte(`
display:
  quality: low
audio:
  effect_volume: 1.5
  buffer_size: 80ms
game:
  seek_forward: 5
input:
  finger1:
    keys: [D]
    mouse: [left]
`)
	if err := Parse(doc); err != nil {
		t.Fatal(err)
	}
	if !Display.LowQuality() {
		t.Error("quality not applied")
	}
	if Display.FrameRate != 60 {
		t.Errorf("frame rate = %d, want the default 60", Display.FrameRate)
	}
	if Audio.EffectVolume != 1 {
		t.Errorf("effect volume = %v, want clamped to 1", Audio.EffectVolume)
	}
	if Audio.BufferSize != 80*time.Millisecond {
		t.Errorf("buffer = %v", Audio.BufferSize)
	}
	if Game.SeekForward != 5 || Game.SeekBackward != 10 {
		t.Errorf("seek = %v/%v", Game.SeekBackward, Game.SeekForward)
	}
	if keys := Input.Bindings[game.ActionFinger1].Keys; len(keys) != 1 || keys[0] != "D" {
		t.Errorf("finger1 keys = %v", keys)
	}
	if keys := Input.Bindings[game.ActionFinger2].Keys; len(keys) != 1 || keys[0] != "X" {
		t.Errorf("finger2 keys = %v, want untouched", keys)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "display: [1"},
		{"bad quality", "display:\n  quality: ultra\n"},
		{"bad frame rate", "display:\n  frame_rate: 0\n"},
		{"bad leniency", "game:\n  slider_end_leniency: -1\n"},
		{"unknown action", "input:\n  jump:\n    keys: [W]\n"},
		{"unknown sound", "sound:\n  volume_multipliers:\n    cowbell: 1\n"},
		{"negative sound", "sound:\n  volume_multipliers:\n    clap: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saveGlobals(t)
			before := Display
			if err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected an error")
			}
			if Display != before {
				t.Error("configuration changed on error")
			}
		})
	}
}

func TestSoundMultipliers(t *testing.T) {
	saveGlobals(t)
	if got := Sound.Multiplier(beatmap.SoundNormal); got != 1 {
		t.Errorf("normal = %v, want 1", got)
	}
	if err := Parse([]byte("sound:\n  volume_multipliers:\n    clap: 0.5\n")); err != nil {
		t.Fatal(err)
	}
	if got := Sound.Multiplier(beatmap.SoundClap); got != 0.5 {
		t.Errorf("clap = %v, want 0.5", got)
	}
	if got := Sound.Multiplier(beatmap.SoundFinish); got != 0.8 {
		t.Errorf("finish = %v, want the default 0.8 kept", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	saveGlobals(t)
	if err := Load(filepath.Join(t.TempDir(), "none.yaml")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	saveGlobals(t)
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("game:\n  unpause_rewind: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if Game.UnpauseRewind != 2 {
		t.Errorf("unpause rewind = %v, want 2", Game.UnpauseRewind)
	}
}

func TestEnv(t *testing.T) {
	saveGlobals(t)
	t.Setenv(EnvHome, "/tmp/oshu-home")
	if got := BeatmapsDir(); got != filepath.Join("/tmp/oshu-home", "beatmaps") {
		t.Errorf("beatmaps dir = %q", got)
	}
	t.Setenv(EnvQuality, QualityLow)
	Display.Quality = QualityDefault
	ApplyEnv()
	if !Display.LowQuality() {
		t.Error("OSHU_QUALITY=low not applied")
	}
}
