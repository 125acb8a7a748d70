package game

import (
	"github.com/automoto/oshu/beatmap"
)

// HitSounder plays the sound of a hit. The audio library implements it.
type HitSounder interface {
	PlayHit(h *beatmap.Hit)
}

type nopSounder struct{}

func (nopSounder) PlayHit(*beatmap.Hit) {}

// Osu is the osu!standard hit state machine. The cursor is an index into
// the beatmap's hit array; every hit before it has a verdict.
type Osu struct {
	beatmap *beatmap.Beatmap
	sounds  HitSounder

	cursor  int
	slider  int // index of the held slider, -1 when none
	heldKey Action

	// Autoplay judges every hit Good on time and ignores input.
	Autoplay bool
	// SliderEndLeniency is the fraction of the leniency window accepted
	// before a slider's end on release.
	SliderEndLeniency float64
}

// NewOsu creates a state machine positioned on the first hit.
func NewOsu(b *beatmap.Beatmap, sounds HitSounder) *Osu {
	if sounds == nil {
		sounds = nopSounder{}
	}
	return &Osu{
		beatmap:           b,
		sounds:            sounds,
		cursor:            b.First(),
		slider:            -1,
		SliderEndLeniency: 0.5,
	}
}

// Cursor is the index of the first hit still waiting for a verdict.
func (o *Osu) Cursor() int { return o.cursor }

// Done reports whether every hit has a verdict and no slider is held.
func (o *Osu) Done() bool {
	return o.cursor == o.beatmap.Tail() && o.slider < 0
}

// HeldSlider returns the slider being held, or nil.
func (o *Osu) HeldSlider() *beatmap.Hit {
	if o.slider < 0 {
		return nil
	}
	return o.beatmap.Hit(o.slider)
}

func (o *Osu) leniency() float64 {
	return o.beatmap.Difficulty.Leniency
}

// Update runs once per frame before input: autoplay judging, or the
// advance rule and slider tracking for human play.
func (o *Osu) Update(now float64, mouse beatmap.Point) {
	if o.Autoplay {
		o.autoplay(now)
		return
	}
	o.advance(now)
	o.track(now, mouse)
}

// advance marks every hit that left the judgement window as missed.
func (o *Osu) advance(now float64) {
	limit := now - o.leniency()/2
	for o.cursor != o.beatmap.Tail() && o.beatmap.Hit(o.cursor).Time < limit {
		h := o.beatmap.Hit(o.cursor)
		if h.State == beatmap.Initial {
			h.State = beatmap.Missed
			h.Offset = now - h.Time
		}
		o.cursor++
	}
	o.settle()
}

// settle moves the cursor past hits that already have a verdict.
func (o *Osu) settle() {
	for o.cursor != o.beatmap.Tail() && o.beatmap.Hit(o.cursor).State != beatmap.Initial {
		o.cursor++
	}
}

// Press judges a finger press at now. It returns the judged hit, or nil for
// a press outside every window.
func (o *Osu) Press(key Action, now float64) *beatmap.Hit {
	if o.Autoplay {
		return nil
	}
	window := o.leniency()
	for i := o.cursor; i != o.beatmap.Tail(); i++ {
		h := o.beatmap.Hit(i)
		if h.Time > now+window {
			break
		}
		if h.State != beatmap.Initial || abs(h.Time-now) > window {
			continue
		}
		h.State = beatmap.Good
		h.Offset = now - h.Time
		if h.IsSlider() {
			o.releaseSlider()
			o.slider = i
			o.heldKey = key
		}
		o.sounds.PlayHit(h)
		o.settle()
		return h
	}
	return nil
}

// Release ends the held slider when key is the one holding it.
func (o *Osu) Release(key Action, now float64) {
	if o.Autoplay || o.slider < 0 || key != o.heldKey {
		return
	}
	h := o.beatmap.Hit(o.slider)
	if now >= h.EndTime()-o.leniency()*o.SliderEndLeniency {
		o.sounds.PlayHit(h)
	} else {
		h.State = beatmap.Missed
	}
	o.slider = -1
}

// track checks the mouse follows the held slider and completes sliders the
// player held to the end.
func (o *Osu) track(now float64, mouse beatmap.Point) {
	if o.slider < 0 {
		return
	}
	h := o.beatmap.Hit(o.slider)
	if now >= h.EndTime() {
		o.sounds.PlayHit(h)
		o.slider = -1
		return
	}
	if mouse.Dist(h.PositionAt(now)) > o.beatmap.Difficulty.CircleRadius {
		h.State = beatmap.Missed
		o.slider = -1
	}
}

// autoplay judges every due hit Good and releases sliders at their end.
func (o *Osu) autoplay(now float64) {
	if o.slider >= 0 {
		h := o.beatmap.Hit(o.slider)
		if now >= h.EndTime() {
			o.sounds.PlayHit(h)
			o.slider = -1
		}
	}
	for o.cursor != o.beatmap.Tail() && o.beatmap.Hit(o.cursor).Time <= now {
		h := o.beatmap.Hit(o.cursor)
		if h.State == beatmap.Initial {
			h.State = beatmap.Good
			h.Offset = 0
			o.sounds.PlayHit(h)
			if h.IsSlider() && now < h.EndTime() {
				o.slider = o.cursor
				o.heldKey = ActionFinger1
			}
		}
		o.cursor++
	}
	o.settle()
}

// AutoCursor is where an autoplaying cursor sits at now.
func (o *Osu) AutoCursor(now float64) beatmap.Point {
	if h := o.HeldSlider(); h != nil {
		return h.PositionAt(now)
	}
	if o.cursor != o.beatmap.Tail() {
		return o.beatmap.Hit(o.cursor).P
	}
	if o.cursor > o.beatmap.First() {
		return o.beatmap.Hit(o.cursor - 1).P
	}
	return beatmap.Point{X: 256, Y: 192}
}

// releaseSlider drops the held slider without judging it.
func (o *Osu) releaseSlider() {
	o.slider = -1
}

// Rewind resets every hit after now-1s to Initial and moves the cursor back
// to the first of them.
func (o *Osu) Rewind(now float64) {
	o.releaseSlider()
	limit := now - 1
	for o.cursor > o.beatmap.First() && o.beatmap.Hit(o.cursor-1).Time > limit {
		o.cursor--
	}
	for i := o.cursor; i != o.beatmap.Tail(); i++ {
		h := o.beatmap.Hit(i)
		h.State = beatmap.Initial
		h.Offset = 0
	}
}

// Forward skips every hit before now+1s.
func (o *Osu) Forward(now float64) {
	o.releaseSlider()
	limit := now + 1
	for o.cursor != o.beatmap.Tail() && o.beatmap.Hit(o.cursor).Time < limit {
		h := o.beatmap.Hit(o.cursor)
		if h.State == beatmap.Initial {
			h.State = beatmap.Skipped
		}
		o.cursor++
	}
	o.settle()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
