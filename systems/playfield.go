package systems

import (
	"image/color"

	"github.com/automoto/oshu/archetypes"
	"github.com/automoto/oshu/beatmap"
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const (
	hitFadeOut          = 0.3 // seconds a judged hit stays visible
	approachScale       = 4
	defaultApproachTime = 1.2
	outlineWidth        = 2
)

// SpawnPlayfield creates the hit object animation curves for a difficulty.
func SpawnPlayfield(ecs *ecs.ECS, d beatmap.Difficulty) {
	approach := float32(d.ApproachTime)
	if approach <= 0 {
		approach = defaultApproachTime
	}
	e := archetypes.Playfield.Spawn(ecs)
	components.Playfield.SetValue(e, components.PlayfieldData{
		Approach: gween.New(approachScale, 1, approach, ease.Linear),
		FadeIn:   gween.New(0, 1, approach/3, ease.Linear),
		FadeOut:  gween.New(1, 0, hitFadeOut, ease.OutQuad),
	})
}

// DrawHitObjects renders the hits around the cursor, latest first so that
// the next hit to play is on top.
func DrawHitObjects(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	e, ok := components.Playfield.First(ecs.World)
	if s == nil || !ok {
		return
	}
	pf := components.Playfield.Get(e)
	g := s.Game
	b := g.Beatmap
	now := g.Now()
	approach := b.Difficulty.ApproachTime
	if approach <= 0 {
		approach = defaultApproachTime
	}

	first := g.Osu.Cursor()
	for first > b.First() && b.Hit(first-1).EndTime()+hitFadeOut >= now {
		first--
	}
	last := g.Osu.Cursor()
	for last < b.Tail() && b.Hit(last).Time-approach <= now {
		last++
	}

	for i := last - 1; i >= first; i-- {
		drawHit(screen, &g.View, pf, b.Hit(i), now, approach, b.Difficulty.CircleRadius)
	}
}

func drawHit(screen *ebiten.Image, v *game.View, pf *components.PlayfieldData, h *beatmap.Hit, now, approach, radius float64) {
	r := float32(v.Length(radius))
	x, y := v.ToScreen(h.P)

	switch h.State {
	case beatmap.Skipped:
		return
	case beatmap.Missed:
		alpha, _ := pf.FadeOut.Set(float32(now - h.EndTime()))
		drawCircle(screen, float32(x), float32(y), r, fade(cfg.UI.MissedColor, alpha))
		return
	case beatmap.Good:
		if h.IsSlider() && now < h.EndTime() {
			drawSliderBody(screen, v, h, r, 1)
			bx, by := v.ToScreen(h.PositionAt(now))
			vector.FillCircle(screen, float32(bx), float32(by), r*0.8, cfg.UI.GoodColor, true)
			vector.StrokeCircle(screen, float32(bx), float32(by), r*1.6, outlineWidth, cfg.UI.CursorColor, true)
			return
		}
		judged := h.Time + h.Offset
		if h.IsSlider() {
			judged = h.EndTime()
		}
		elapsed := float32(now - judged)
		alpha, _ := pf.FadeOut.Set(elapsed)
		// The ring grows as it fades.
		grow := 1 + elapsed/hitFadeOut*0.5
		vector.StrokeCircle(screen, float32(x), float32(y), r*grow, outlineWidth*2, fade(cfg.UI.GoodColor, alpha), true)
		return
	}

	alpha, _ := pf.FadeIn.Set(float32(now - (h.Time - approach)))
	if h.IsSlider() {
		drawSliderBody(screen, v, h, r, alpha)
	}
	drawCircle(screen, float32(x), float32(y), r, fade(cfg.UI.HitColor, alpha))
	if now < h.Time {
		scale, _ := pf.Approach.Set(float32(now - (h.Time - approach)))
		vector.StrokeCircle(screen, float32(x), float32(y), r*scale, outlineWidth, fade(cfg.UI.HitColor, alpha), true)
	}
}

func drawCircle(screen *ebiten.Image, x, y, r float32, c color.RGBA) {
	vector.FillCircle(screen, x, y, r, c, true)
	vector.StrokeCircle(screen, x, y, r, outlineWidth, fade(cfg.White, float32(c.A)/255), true)
}

func drawSliderBody(screen *ebiten.Image, v *game.View, h *beatmap.Hit, r, alpha float32) {
	if h.Slider.Path == nil {
		return
	}
	c := fade(cfg.UI.SliderColor, alpha*0.6)
	points := h.Slider.Path.Points()
	for i := 1; i < len(points); i++ {
		x0, y0 := v.ToScreen(points[i-1])
		x1, y1 := v.ToScreen(points[i])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), r*2, c, true)
	}
	if len(points) > 0 {
		ex, ey := v.ToScreen(points[len(points)-1])
		drawCircle(screen, float32(ex), float32(ey), r, fade(cfg.UI.SliderColor, alpha))
	}
}
