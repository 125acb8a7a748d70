package scenes

import (
	"image"

	"github.com/automoto/oshu/audio"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/automoto/oshu/systems"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ScreenID names one of the three screens.
type ScreenID int

const (
	ScreenPlay ScreenID = iota
	ScreenPause
	ScreenScore
	screenCount
)

func (id ScreenID) String() string {
	switch id {
	case ScreenPlay:
		return "play"
	case ScreenPause:
		return "pause"
	case ScreenScore:
		return "score"
	}
	return "unknown"
}

// Screen handles the input, update and draw of one game phase. Screens share
// the dispatcher's game and widget world.
type Screen interface {
	OnEvent(ev game.Event)
	Update()
	Draw(screen *ebiten.Image)
}

// ScreenChanger switches the active screen.
type ScreenChanger interface {
	ChangeScreen(id ScreenID)
}

// Options are the assets and audio hooks the widgets use.
type Options struct {
	Mixer      *audio.Mixer
	Duration   float64     // music length in seconds, 0 when unknown
	Background image.Image // nil when the beatmap has none
	Paused     bool        // start on the pause screen
}

// Dispatcher owns the screens and forwards the loop's calls to the active one.
type Dispatcher struct {
	game    *game.Game
	world   donburi.World
	base    *ecs.ECS
	screens [screenCount]Screen
	current ScreenID
}

// NewDispatcher builds the widget world and the three screens for g.
func NewDispatcher(g *game.Game, opts Options) *Dispatcher {
	d := &Dispatcher{
		game:  g,
		world: donburi.NewWorld(),
	}
	d.base = ecs.NewECS(d.world)
	systems.SpawnSession(d.base, g, opts.Mixer, opts.Duration)
	systems.SpawnBackground(d.base, opts.Background)
	systems.SpawnMetadata(d.base, g.Beatmap.Metadata)
	systems.SpawnPlayfield(d.base, g.Beatmap.Difficulty)
	systems.SpawnCursor(d.base)

	d.screens[ScreenPlay] = NewPlayScreen(d, g, ecs.NewECS(d.world))
	d.screens[ScreenPause] = NewPauseScreen(d, g, ecs.NewECS(d.world))
	d.screens[ScreenScore] = NewScoreScreen(d, g, ecs.NewECS(d.world))

	d.current = ScreenPlay
	if opts.Paused {
		d.ChangeScreen(ScreenPause)
	}
	return d
}

// Current is the active screen.
func (d *Dispatcher) Current() ScreenID {
	return d.current
}

// Paused reports whether the play clock should hold.
func (d *Dispatcher) Paused() bool {
	return d.current == ScreenPause
}

// ChangeScreen leaves the active screen for id. Entering the pause screen
// stops the music; leaving it for play resumes it.
func (d *Dispatcher) ChangeScreen(id ScreenID) {
	if id == d.current {
		return
	}
	from := d.current
	d.current = id
	log.Debug("screen", "from", from, "to", id, "now", d.game.Now())

	switch id {
	case ScreenPause:
		d.game.Pause()
		systems.SetPaused(d.base, true)
	case ScreenPlay:
		systems.SetPaused(d.base, false)
		if from == ScreenPause {
			d.game.Resume()
		}
	case ScreenScore:
		systems.SetPaused(d.base, false)
		log.Info("beatmap complete", "score", d.game.Score())
	}
}

// OnEvent forwards an input event to the active screen.
func (d *Dispatcher) OnEvent(ev game.Event) {
	d.screens[d.current].OnEvent(ev)
}

// Update runs the active screen's update.
func (d *Dispatcher) Update() {
	d.screens[d.current].Update()
}

// Draw renders the active screen.
func (d *Dispatcher) Draw(screen *ebiten.Image) {
	d.screens[d.current].Draw(screen)
}

// seek applies a seek action, shared by the play and pause screens.
func seek(g *game.Game, action game.Action) bool {
	switch action {
	case game.ActionSeekBackward:
		g.Seek(-cfg.Game.SeekBackward)
	case game.ActionSeekForward:
		g.Seek(cfg.Game.SeekForward)
	default:
		return false
	}
	return true
}
