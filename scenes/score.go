package scenes

import (
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/automoto/oshu/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// ScoreScreen shows the final score until the user quits.
type ScoreScreen struct {
	ecs  *ecs.ECS
	game *game.Game
}

// NewScoreScreen wires the score widgets on e.
func NewScoreScreen(_ ScreenChanger, g *game.Game, e *ecs.ECS) *ScoreScreen {
	ss := &ScoreScreen{ecs: e, game: g}

	ss.ecs.AddSystem(systems.UpdateMusicFade)

	ss.ecs.AddRenderer(cfg.LayerBackground, systems.DrawBackground)
	ss.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawMetadata)
	ss.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawScoreBar)
	return ss
}

func (ss *ScoreScreen) OnEvent(ev game.Event) {
	if ev.Kind == game.EventKeyDown && !ev.Repeat && ev.Action == game.ActionQuit {
		ss.game.Stop = true
	}
}

func (ss *ScoreScreen) Update() {
	ss.ecs.Update()
}

func (ss *ScoreScreen) Draw(screen *ebiten.Image) {
	ss.ecs.Draw(screen)
}
