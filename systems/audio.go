package systems

import (
	cfg "github.com/automoto/oshu/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const musicFadeDuration = 3 // seconds

// UpdateMusicFade lowers the music volume to silence after the last hit.
func UpdateMusicFade(ecs *ecs.ECS) {
	s := GetSession(ecs)
	if s == nil || s.Mixer == nil {
		return
	}
	if s.MusicFade == nil {
		s.MusicFade = gween.New(float32(cfg.Audio.MusicVolume), 0, musicFadeDuration, ease.Linear)
	}
	volume, _ := s.MusicFade.Update(frameDelta(ecs))
	s.Mixer.SetMusicVolume(float64(volume))
}
