// Package loop drives a game session from ebiten's update and draw calls.
//
// Each update ticks the play clock once, drains the pending input through
// the active screen, then runs the screen's update, so all the input of a
// frame sees the same time.
package loop

import (
	"image/color"
	"time"

	"github.com/automoto/oshu/game"
	"github.com/automoto/oshu/scenes"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// StatusFunc observes the loop once per frame.
type StatusFunc func(screen scenes.ScreenID, now float64)

// Options tunes the loop. The zero value paces with ebiten's tick rate.
type Options struct {
	// Wall returns the wall clock in seconds. Defaults to the time since New.
	Wall func() float64
	// Sleep waits out the rest of a frame. Nil leaves pacing to ebiten.
	Sleep func(time.Duration)
	// FrameDuration is the per-frame budget, 1/60s by default.
	FrameDuration time.Duration
	// MissedFrameWarning is the missed frame count that triggers the warning.
	MissedFrameWarning int
	Status             StatusFunc
}

// Loop implements ebiten.Game for one game session.
type Loop struct {
	game    *game.Game
	screens *scenes.Dispatcher
	events  game.EventSource
	opts    Options

	buf           []game.Event
	missed        int
	warned        bool
	width, height int
}

// New creates a loop over a game, its screens and an input source.
func New(g *game.Game, screens *scenes.Dispatcher, events game.EventSource, opts Options) *Loop {
	if opts.Wall == nil {
		start := time.Now()
		opts.Wall = func() float64 { return time.Since(start).Seconds() }
	}
	if opts.FrameDuration <= 0 {
		opts.FrameDuration = time.Second / 60
	}
	if opts.MissedFrameWarning <= 0 {
		opts.MissedFrameWarning = 1000
	}
	return &Loop{
		game:    g,
		screens: screens,
		events:  events,
		opts:    opts,
		width:   game.FrameWidth,
		height:  game.FrameHeight,
	}
}

// MissedFrames is the number of frames that overran their budget.
func (l *Loop) MissedFrames() int {
	return l.missed
}

// Update runs one frame. It returns ebiten.Termination once the game stops.
func (l *Loop) Update() error {
	if l.game.Stop {
		return ebiten.Termination
	}

	l.game.Tick(l.opts.Wall(), l.screens.Paused())
	l.game.View.Reset(l.width, l.height)

	l.buf = l.events.Poll(l.buf[:0])
	for _, ev := range l.buf {
		if ev.Kind == game.EventWindowClose {
			l.game.Stop = true
			continue
		}
		l.screens.OnEvent(ev)
	}

	l.screens.Update()
	if l.opts.Status != nil {
		l.opts.Status(l.screens.Current(), l.game.Now())
	}
	l.pace()

	if l.game.Stop {
		return ebiten.Termination
	}
	return nil
}

// pace sleeps out the rest of the frame, or counts the frame as missed.
func (l *Loop) pace() {
	elapsed := l.opts.Wall() - l.game.Clock.System
	remaining := l.opts.FrameDuration - time.Duration(elapsed*float64(time.Second))
	if remaining > 0 {
		if l.opts.Sleep != nil {
			l.opts.Sleep(remaining)
		}
		return
	}
	l.missed++
	if l.missed >= l.opts.MissedFrameWarning && !l.warned {
		l.warned = true
		log.Warn("the game is running slow", "missed_frames", l.missed, "budget", l.opts.FrameDuration)
	}
}

// Draw clears the screen and draws the active screen.
func (l *Loop) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	l.screens.Draw(screen)
}

// Layout uses the whole window; the game view scales the playfield into it.
func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	l.width, l.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
