package scenes

import (
	"testing"

	"github.com/automoto/oshu/beatmap"
	"github.com/automoto/oshu/game"
)

type fakeMusic struct {
	timestamp float64
	playing   bool
	seeks     []float64
}

func (m *fakeMusic) Play()              { m.playing = true }
func (m *fakeMusic) Pause()             { m.playing = false }
func (m *fakeMusic) Resume()            { m.playing = true }
func (m *fakeMusic) Timestamp() float64 { return m.timestamp }

func (m *fakeMusic) Seek(target float64) error {
	m.seeks = append(m.seeks, target)
	m.timestamp = target
	return nil
}

func newSession(t *testing.T, opts Options, times ...float64) (*game.Game, *fakeMusic, *Dispatcher) {
	t.Helper()
	hits := make([]beatmap.Hit, len(times))
	for i, at := range times {
		hits[i] = beatmap.Hit{Time: at, Type: beatmap.TypeCircle, P: beatmap.Point{X: 256, Y: 192}}
	}
	b := beatmap.New(hits)
	b.Difficulty.Leniency = 0.1
	b.Difficulty.CircleRadius = 30
	b.Difficulty.ApproachTime = 1

	music := &fakeMusic{}
	g := game.New(b, music, nil, game.Options{})
	return g, music, NewDispatcher(g, opts)
}

func keyDown(a game.Action) game.Event {
	return game.Event{Kind: game.EventKeyDown, Action: a}
}

func TestPauseAndResume(t *testing.T) {
	g, music, d := newSession(t, Options{}, 20)
	g.Tick(0, d.Paused())
	g.Clock.Jump(5, 0)
	music.playing = true
	music.timestamp = 5

	d.OnEvent(keyDown(game.ActionPause))
	if d.Current() != ScreenPause || !d.Paused() {
		t.Fatalf("screen = %v, want pause", d.Current())
	}

	// Gameplay keys are ignored while paused.
	d.OnEvent(keyDown(game.ActionFinger1))
	d.OnEvent(keyDown(game.ActionAutoplay))
	if g.Osu.Autoplay {
		t.Error("autoplay toggled from the pause screen")
	}

	d.OnEvent(keyDown(game.ActionPause))
	if d.Current() != ScreenPlay {
		t.Fatalf("screen = %v, want play", d.Current())
	}
	if len(music.seeks) != 1 || music.seeks[0] != 4 {
		t.Errorf("seeks = %v, want a 1s rewind to 4", music.seeks)
	}
	if !music.playing {
		t.Error("music not resumed")
	}
}

func TestFocusLossPauses(t *testing.T) {
	_, _, d := newSession(t, Options{}, 20)
	d.OnEvent(game.Event{Kind: game.EventFocusLost})
	if d.Current() != ScreenPause {
		t.Errorf("screen = %v, want pause", d.Current())
	}
	d.OnEvent(game.Event{Kind: game.EventFocusGained})
	if d.Current() != ScreenPause {
		t.Errorf("focus gain left the pause screen")
	}
}

func TestRepeatIgnored(t *testing.T) {
	g, _, d := newSession(t, Options{}, 20)
	ev := keyDown(game.ActionQuit)
	ev.Repeat = true
	d.OnEvent(ev)
	if g.Stop {
		t.Error("repeated key handled")
	}
	d.OnEvent(keyDown(game.ActionQuit))
	if !g.Stop {
		t.Error("quit not handled")
	}
}

func TestPlayMovesToScore(t *testing.T) {
	g, _, d := newSession(t, Options{}, 0.5)
	g.Tick(0, false)
	g.Tick(2, false)
	d.Update()
	if d.Current() != ScreenScore {
		t.Fatalf("screen = %v, want score", d.Current())
	}
	if s := g.Score(); s.Bad != 1 {
		t.Errorf("score = %+v, want one miss", s)
	}

	d.OnEvent(keyDown(game.ActionPause))
	if d.Current() != ScreenScore {
		t.Error("score screen handled pause")
	}
	d.OnEvent(keyDown(game.ActionQuit))
	if !g.Stop {
		t.Error("quit ignored on the score screen")
	}
}

func TestPauseNeverMovesToScore(t *testing.T) {
	g, _, d := newSession(t, Options{Paused: true}, 0.5)
	if d.Current() != ScreenPause {
		t.Fatalf("screen = %v, want pause at start", d.Current())
	}
	g.Tick(0, true)
	g.Clock.Jump(3, 0)
	g.Osu.Update(3, g.Mouse)
	if !g.Done() {
		t.Fatal("game not done")
	}
	d.Update()
	if d.Current() != ScreenPause {
		t.Errorf("screen = %v, want pause", d.Current())
	}
}

func TestPlayForwardsFingers(t *testing.T) {
	g, _, d := newSession(t, Options{}, 1)
	g.Tick(0, false)
	g.Clock.Jump(1.02, 0)

	d.OnEvent(keyDown(game.ActionFinger2))
	h := g.Beatmap.Hit(g.Beatmap.First())
	if h.State != beatmap.Good {
		t.Errorf("state = %v, want good", h.State)
	}
	d.OnEvent(game.Event{Kind: game.EventKeyUp, Action: game.ActionFinger2})
	if h.State != beatmap.Good {
		t.Errorf("release changed a circle to %v", h.State)
	}
}

func TestPlaySeeks(t *testing.T) {
	g, music, d := newSession(t, Options{}, 30)
	g.Tick(0, false)
	music.timestamp = 15
	d.OnEvent(keyDown(game.ActionSeekBackward))
	d.OnEvent(keyDown(game.ActionSeekForward))
	want := []float64{5, 25}
	if len(music.seeks) != 2 || music.seeks[0] != want[0] || music.seeks[1] != want[1] {
		t.Errorf("seeks = %v, want %v", music.seeks, want)
	}
}

func TestMouseMoveIgnoredWhilePaused(t *testing.T) {
	g, _, d := newSession(t, Options{Paused: true}, 5)
	before := g.Mouse
	d.OnEvent(game.Event{Kind: game.EventMouseMove, X: 10, Y: 10})
	if g.Mouse != before {
		t.Errorf("mouse moved to %v while paused", g.Mouse)
	}
	d.ChangeScreen(ScreenPlay)
	d.OnEvent(game.Event{Kind: game.EventMouseMove, X: 10, Y: 10})
	if g.Mouse == before {
		t.Error("mouse did not move while playing")
	}
}
