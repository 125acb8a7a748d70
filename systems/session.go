package systems

import (
	"github.com/automoto/oshu/archetypes"
	"github.com/automoto/oshu/audio"
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/yohamta/donburi/ecs"
)

// SpawnSession registers the running game with the widget world. mixer may
// be nil when no audio device is attached.
func SpawnSession(ecs *ecs.ECS, g *game.Game, mixer *audio.Mixer, duration float64) {
	e := archetypes.Session.Spawn(ecs)
	components.Session.SetValue(e, components.SessionData{
		Game:      g,
		Mixer:     mixer,
		Duration:  duration,
		FrameRate: cfg.Display.FrameRate,
	})
}

// GetSession returns the session singleton, or nil before SpawnSession.
func GetSession(ecs *ecs.ECS) *components.SessionData {
	e, ok := components.Session.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Session.Get(e)
}

// frameDelta is the tween step for one frame.
func frameDelta(ecs *ecs.ECS) float32 {
	if s := GetSession(ecs); s != nil && s.FrameRate > 0 {
		return 1 / float32(s.FrameRate)
	}
	return 1.0 / 60
}
