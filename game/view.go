package game

import "github.com/automoto/oshu/beatmap"

// The playfield is 512x384 beatmap pixels inside a 640x480 frame.
const (
	FrameWidth      = 640
	FrameHeight     = 480
	PlayfieldLeft   = 64
	PlayfieldTop    = 48
	PlayfieldWidth  = 512
	PlayfieldHeight = 384
)

// View maps beatmap space to screen space.
type View struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// Reset fits the 640x480 frame into a w×h screen, centred.
func (v *View) Reset(w, h int) {
	v.Width, v.Height = float64(w), float64(h)
	v.Scale = min(v.Width/FrameWidth, v.Height/FrameHeight)
	v.OffsetX = (v.Width - FrameWidth*v.Scale) / 2
	v.OffsetY = (v.Height - FrameHeight*v.Scale) / 2
}

// ToScreen converts a beatmap position to screen coordinates.
func (v *View) ToScreen(p beatmap.Point) (float64, float64) {
	return (p.X+PlayfieldLeft)*v.Scale + v.OffsetX, (p.Y+PlayfieldTop)*v.Scale + v.OffsetY
}

// FromScreen converts screen coordinates to a beatmap position.
func (v *View) FromScreen(x, y float64) beatmap.Point {
	if v.Scale == 0 {
		return beatmap.Point{X: x - PlayfieldLeft, Y: y - PlayfieldTop}
	}
	return beatmap.Point{
		X: (x-v.OffsetX)/v.Scale - PlayfieldLeft,
		Y: (y-v.OffsetY)/v.Scale - PlayfieldTop,
	}
}

// Length scales a beatmap distance to screen pixels.
func (v *View) Length(d float64) float64 {
	return d * v.Scale
}
