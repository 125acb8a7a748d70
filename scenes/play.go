package scenes

import (
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/automoto/oshu/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// PlayScreen is the gameplay screen.
type PlayScreen struct {
	ecs           *ecs.ECS
	screenChanger ScreenChanger
	game          *game.Game
}

// NewPlayScreen wires the gameplay widgets on e.
func NewPlayScreen(sc ScreenChanger, g *game.Game, e *ecs.ECS) *PlayScreen {
	ps := &PlayScreen{ecs: e, screenChanger: sc, game: g}

	ps.ecs.AddSystem(systems.UpdateBackground)
	ps.ecs.AddSystem(systems.UpdateMetadata)
	ps.ecs.AddSystem(systems.UpdateCursor)

	ps.ecs.AddRenderer(cfg.LayerBackground, systems.DrawBackground)
	ps.ecs.AddRenderer(cfg.LayerPlayfield, systems.DrawHitObjects)
	ps.ecs.AddRenderer(cfg.LayerPlayfield, systems.DrawCursor)
	ps.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawMetadata)
	ps.ecs.AddRenderer(cfg.LayerOverlay, systems.DrawProgress)
	return ps
}

func (ps *PlayScreen) OnEvent(ev game.Event) {
	g := ps.game
	switch ev.Kind {
	case game.EventMouseMove:
		g.MoveMouse(ev.X, ev.Y)
	case game.EventFocusLost:
		ps.screenChanger.ChangeScreen(ScreenPause)
	case game.EventKeyUp:
		if ev.Action.IsFinger() && !g.Osu.Autoplay {
			g.Release(ev.Action)
		}
	case game.EventKeyDown:
		if ev.Repeat {
			return
		}
		switch ev.Action {
		case game.ActionQuit:
			g.Stop = true
		case game.ActionPause:
			ps.screenChanger.ChangeScreen(ScreenPause)
		case game.ActionAutoplay:
			g.ToggleAutoplay()
		case game.ActionFinger1, game.ActionFinger2:
			if !g.Osu.Autoplay {
				g.Press(ev.Action)
			}
		default:
			seek(g, ev.Action)
		}
	}
}

func (ps *PlayScreen) Update() {
	ps.game.Update()
	ps.ecs.Update()
	if ps.game.Done() {
		ps.screenChanger.ChangeScreen(ScreenScore)
	}
}

func (ps *PlayScreen) Draw(screen *ebiten.Image) {
	ps.ecs.Draw(screen)
}
