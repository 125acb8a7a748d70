package systems

import (
	"image/color"

	"github.com/automoto/oshu/archetypes"
	"github.com/automoto/oshu/beatmap"
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin         = 12
	progressBarHeight = 4
	scoreBarWidth     = 0.6 // of the screen width
	scoreBarHeight    = 16
)

// SpawnMetadata creates the song title card.
func SpawnMetadata(ecs *ecs.ECS, m beatmap.Metadata) {
	e := archetypes.Metadata.Spawn(ecs)
	components.Metadata.SetValue(e, components.MetadataData{
		Title:   m.DisplayTitle(),
		Artist:  m.DisplayArtist(),
		Version: m.Version,
		Hold:    float32(cfg.UI.MetadataHold),
		Fade:    gween.New(1, 0, float32(cfg.UI.MetadataFade), ease.InQuad),
		Alpha:   1,
	})
}

// UpdateMetadata keeps the title card up for a while, then fades it out.
func UpdateMetadata(ecs *ecs.ECS) {
	e, ok := components.Metadata.First(ecs.World)
	if !ok {
		return
	}
	m := components.Metadata.Get(e)
	dt := frameDelta(ecs)
	if m.Hold > 0 {
		m.Hold -= dt
		return
	}
	m.Alpha, _ = m.Fade.Update(dt)
}

// DrawMetadata renders the title and artist in the top-left corner. The
// card is always fully visible while paused.
func DrawMetadata(ecs *ecs.ECS, screen *ebiten.Image) {
	e, ok := components.Metadata.First(ecs.World)
	if !ok || !fonts.Loaded(fonts.Title) {
		return
	}
	m := components.Metadata.Get(e)
	alpha := m.Alpha
	if GetOrCreatePause(ecs).IsPaused {
		alpha = 1
	}
	if alpha <= 0 {
		return
	}

	c := fade(cfg.UI.TextColor, alpha)
	titleFont := fonts.Title.Get()
	y := hudMargin + titleFont.Metrics().Ascent.Ceil()
	text.Draw(screen, m.Title, titleFont, hudMargin, y, c)

	regular := fonts.Regular.Get()
	line := m.Artist
	if m.Version != "" {
		line += " [" + m.Version + "]"
	}
	y += regular.Metrics().Height.Ceil() + 4
	text.Draw(screen, line, regular, hudMargin, y, c)
}

// DrawProgress renders the song progress along the bottom edge.
func DrawProgress(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	if s == nil {
		return
	}
	duration := s.Duration
	if duration <= 0 {
		duration = s.Game.Beatmap.Duration()
	}
	if duration <= 0 {
		return
	}
	ratio := min(max(s.Game.Now()/duration, 0), 1)

	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	vector.FillRect(
		screen,
		0, height-progressBarHeight,
		width*float32(ratio), progressBarHeight,
		fade(cfg.UI.ProgressColor, 0.5),
		false,
	)
}

// DrawScoreBar renders the final ratio of good and missed hits.
func DrawScoreBar(ecs *ecs.ECS, screen *ebiten.Image) {
	s := GetSession(ecs)
	if s == nil {
		return
	}
	score := s.Game.Score()

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())
	barW := width * scoreBarWidth
	x := (width - barW) / 2
	y := (height - scoreBarHeight) / 2

	vector.FillRect(screen, float32(x), float32(y), float32(barW), scoreBarHeight, color.RGBA{40, 40, 40, 255}, false)
	if judged := score.Good + score.Bad; judged > 0 {
		goodW := barW * float64(score.Good) / float64(judged)
		vector.FillRect(screen, float32(x), float32(y), float32(goodW), scoreBarHeight, cfg.UI.GoodColor, false)
		vector.FillRect(screen, float32(x+goodW), float32(y), float32(barW-goodW), scoreBarHeight, cfg.UI.MissedColor, false)
	}

	if !fonts.Loaded(fonts.Title) {
		return
	}
	summary := score.String()
	titleFont := fonts.Title.Get()
	tw := text.BoundString(titleFont, summary).Dx()
	text.Draw(screen, summary, titleFont, int((width-float64(tw))/2), int(y)-hudMargin, cfg.UI.TextColor)
}

// fade scales a color's alpha, keeping it premultiplied.
func fade(c color.RGBA, alpha float32) color.RGBA {
	a := min(max(alpha, 0), 1)
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}
