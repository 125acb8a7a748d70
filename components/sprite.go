package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// BackgroundData holds the beatmap's background picture. Source is decoded
// at load time; Image is uploaded on first draw.
type BackgroundData struct {
	Source image.Image
	Image  *ebiten.Image

	// Veil opacity, faded in from clear when the game starts
	Dim   *gween.Tween
	Alpha float32
}

var Background = donburi.NewComponentType[BackgroundData]()
