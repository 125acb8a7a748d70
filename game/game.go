package game

import (
	"github.com/automoto/oshu/beatmap"
	"github.com/charmbracelet/log"
)

// Music is the playing track as seen from the game thread.
type Music interface {
	Play()
	Pause()
	Resume()
	Timestamp() float64
	Seek(target float64) error
}

// Options tunes a game session.
type Options struct {
	Autoplay          bool
	SliderEndLeniency float64 // fraction of the leniency window, default 0.5
	UnpauseRewind     float64 // seconds, default 1
}

// Game is the state shared by the screens: the beatmap, the clock, the hit
// state machine and the music. It is only touched from the game thread.
type Game struct {
	Beatmap *beatmap.Beatmap
	Clock   Clock
	Osu     *Osu
	Music   Music
	View    View
	Mouse   beatmap.Point
	Stop    bool

	unpauseRewind float64
	musicStarted  bool
	started       bool
}

// New creates a game session over a loaded beatmap.
func New(b *beatmap.Beatmap, music Music, sounds HitSounder, opts Options) *Game {
	osu := NewOsu(b, sounds)
	osu.Autoplay = opts.Autoplay
	if opts.SliderEndLeniency > 0 {
		osu.SliderEndLeniency = opts.SliderEndLeniency
	}
	rewind := opts.UnpauseRewind
	if rewind == 0 {
		rewind = 1
	}
	g := &Game{
		Beatmap:       b,
		Osu:           osu,
		Music:         music,
		Mouse:         beatmap.Point{X: PlayfieldWidth / 2, Y: PlayfieldHeight / 2},
		unpauseRewind: rewind,
	}
	g.View.Reset(FrameWidth, FrameHeight)
	return g
}

// Now is the current play-clock time.
func (g *Game) Now() float64 {
	return g.Clock.Now
}

// Started reports whether the clock has been started.
func (g *Game) Started() bool {
	return g.started
}

// Tick advances the clock for a new frame. The first call starts the clock.
// The music starts once the play clock reaches zero.
func (g *Game) Tick(wall float64, paused bool) {
	if !g.started {
		g.Clock.Start(g.Beatmap, wall)
		g.started = true
	}
	g.Clock.Tick(wall, g.Music.Timestamp(), paused)
	if !paused && !g.musicStarted && g.Clock.Now >= 0 {
		g.Music.Play()
		g.musicStarted = true
	}
}

// Update runs the hit state machine for the current frame.
func (g *Game) Update() {
	now := g.Clock.Now
	g.Osu.Update(now, g.Mouse)
	if g.Osu.Autoplay {
		g.Mouse = g.Osu.AutoCursor(now)
	}
}

// MoveMouse records a mouse move in screen coordinates.
func (g *Game) MoveMouse(x, y float64) {
	if g.Osu.Autoplay {
		return
	}
	g.Mouse = g.View.FromScreen(x, y)
}

// Press forwards a finger press to the state machine.
func (g *Game) Press(key Action) *beatmap.Hit {
	return g.Osu.Press(key, g.Clock.Now)
}

// Release forwards a finger release to the state machine.
func (g *Game) Release(key Action) {
	g.Osu.Release(key, g.Clock.Now)
}

// ToggleAutoplay switches between human play and autoplay.
func (g *Game) ToggleAutoplay() {
	g.Osu.Autoplay = !g.Osu.Autoplay
	g.Osu.releaseSlider()
	log.Info("autoplay", "enabled", g.Osu.Autoplay)
}

// Seek moves the music by delta seconds and re-synchronises the clock and
// the hit states with it.
func (g *Game) Seek(delta float64) {
	target := max(g.Music.Timestamp()+delta, 0)
	if err := g.Music.Seek(target); err != nil {
		log.Warn("seek failed", "target", target, "error", err)
		return
	}
	now := g.Music.Timestamp()
	g.Clock.Jump(now, g.Clock.System)
	if delta < 0 {
		g.Osu.Rewind(now)
	} else {
		g.Osu.Forward(now)
	}
	log.Debug("seek", "delta", delta, "now", now)
}

// Pause stops the music.
func (g *Game) Pause() {
	if g.musicStarted {
		g.Music.Pause()
	}
}

// Resume rewinds a little for human players, then restarts the music.
func (g *Game) Resume() {
	if !g.Osu.Autoplay && g.Clock.Now > 0 {
		g.Seek(-g.unpauseRewind)
	}
	if g.musicStarted {
		g.Music.Resume()
	}
}

// Done reports whether every hit has been judged.
func (g *Game) Done() bool {
	return g.Osu.Done()
}

// Score counts the current verdicts.
func (g *Game) Score() Score {
	return ComputeScore(g.Beatmap)
}
