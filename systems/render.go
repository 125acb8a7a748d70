package systems

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/automoto/oshu/archetypes"
	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

var (
	drawOp = &ebiten.DrawImageOptions{}
)

// LoadBackground decodes a JPEG or PNG background picture.
func LoadBackground(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open background: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background %s: %w", path, err)
	}
	return img, nil
}

// SpawnBackground creates the background widget. src may be nil, in which
// case only the veil is drawn.
func SpawnBackground(ecs *ecs.ECS, src image.Image) {
	e := archetypes.Background.Spawn(ecs)
	components.Background.SetValue(e, components.BackgroundData{
		Source: src,
		Dim:    gween.New(0, float32(cfg.UI.BackgroundDim), 1, ease.OutQuad),
	})
}

// UpdateBackground fades the veil in.
func UpdateBackground(ecs *ecs.ECS) {
	e, ok := components.Background.First(ecs.World)
	if !ok {
		return
	}
	bg := components.Background.Get(e)
	bg.Alpha, _ = bg.Dim.Update(frameDelta(ecs))
}

// DrawBackground renders the background picture under a black veil. The
// veil is darker while paused.
func DrawBackground(ecs *ecs.ECS, screen *ebiten.Image) {
	e, ok := components.Background.First(ecs.World)
	if !ok {
		return
	}
	bg := components.Background.Get(e)
	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	if img := backgroundImage(bg); img != nil {
		iw := float64(img.Bounds().Dx())
		ih := float64(img.Bounds().Dy())
		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()
		if cfg.Display.LowQuality() {
			drawOp.GeoM.Translate((width-iw)/2, (height-ih)/2)
		} else {
			// Cover the whole screen, cropping the overflow.
			scale := max(width/iw, height/ih)
			drawOp.GeoM.Scale(scale, scale)
			drawOp.GeoM.Translate((width-iw*scale)/2, (height-ih*scale)/2)
		}
		screen.DrawImage(img, drawOp)
	}

	alpha := float64(bg.Alpha)
	if GetOrCreatePause(ecs).IsPaused {
		alpha = max(alpha, cfg.UI.PausedDim)
	}
	if alpha <= 0 {
		return
	}
	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		color.RGBA{A: uint8(min(alpha, 1) * 255)},
		false,
	)
}

// backgroundImage uploads the decoded picture on first use.
func backgroundImage(bg *components.BackgroundData) *ebiten.Image {
	if bg.Image == nil && bg.Source != nil {
		bg.Image = ebiten.NewImageFromImage(bg.Source)
		bg.Source = nil
	}
	return bg.Image
}
