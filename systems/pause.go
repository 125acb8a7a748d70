package systems

import (
	"image/color"
	"math"

	"github.com/automoto/oshu/archetypes"
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const pausedHint = "space: resume   q: quit   arrows: seek"

// SetPaused marks the overlays as paused or playing.
func SetPaused(ecs *ecs.ECS, paused bool) {
	pause := GetOrCreatePause(ecs)
	if pause.IsPaused != paused {
		pause.Frames = 0
	}
	pause.IsPaused = paused
}

// UpdatePause advances the glyph animation.
func UpdatePause(ecs *ecs.ECS) {
	pause := GetOrCreatePause(ecs)
	if pause.IsPaused {
		pause.Frames++
	}
}

// DrawPausedGlyph renders the pause bars in the middle of the screen.
func DrawPausedGlyph(ecs *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(ecs)
	if !pause.IsPaused {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())
	unit := min(width, height) / 12

	// Slow breathing between 60% and 100% opacity
	phase := float64(pause.Frames) / float64(max(cfg.Display.FrameRate, 1))
	alpha := 0.8 + 0.2*math.Sin(phase*math.Pi)
	c := color.RGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)}

	cx, cy := width/2, height/2
	barW, barH := unit*0.6, unit*2
	vector.FillRect(screen, float32(cx-unit*0.9), float32(cy-barH/2), float32(barW), float32(barH), c, true)
	vector.FillRect(screen, float32(cx+unit*0.3), float32(cy-barH/2), float32(barW), float32(barH), c, true)

	if !fonts.Loaded(fonts.Regular) {
		return
	}
	hintFont := fonts.Regular.Get()
	hintWidth := text.BoundString(hintFont, pausedHint).Dx()
	hintX := int((width - float64(hintWidth)) / 2)
	text.Draw(screen, pausedHint, hintFont, hintX, int(cy+barH), cfg.UI.TextColor)
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	if _, ok := components.Pause.First(ecs.World); !ok {
		ent := archetypes.Overlay.Spawn(ecs)
		components.Pause.SetValue(ent, components.PauseData{})
	}

	ent, _ := components.Pause.First(ecs.World)
	return components.Pause.Get(ent)
}
