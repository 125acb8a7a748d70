package scenes

import (
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/automoto/oshu/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// PauseScreen holds the game. It never moves on to the score screen by
// itself, even when every hit has been judged.
type PauseScreen struct {
	ecs           *ecs.ECS
	screenChanger ScreenChanger
	game          *game.Game
}

// NewPauseScreen wires the pause overlay widgets on e.
func NewPauseScreen(sc ScreenChanger, g *game.Game, e *ecs.ECS) *PauseScreen {
	ps := &PauseScreen{ecs: e, screenChanger: sc, game: g}

	ps.ecs.AddSystem(systems.UpdatePause)

	ps.ecs.AddRenderer(cfg.LayerBackground, systems.DrawBackground)
	ps.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawMetadata)
	ps.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawProgress)
	ps.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawPausedGlyph)
	return ps
}

func (ps *PauseScreen) OnEvent(ev game.Event) {
	if ev.Kind != game.EventKeyDown || ev.Repeat {
		return
	}
	switch ev.Action {
	case game.ActionQuit:
		ps.game.Stop = true
	case game.ActionPause:
		ps.screenChanger.ChangeScreen(ScreenPlay)
	default:
		seek(ps.game, ev.Action)
	}
}

func (ps *PauseScreen) Update() {
	ps.ecs.Update()
}

func (ps *PauseScreen) Draw(screen *ebiten.Image) {
	ps.ecs.Draw(screen)
}
