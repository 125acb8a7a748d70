package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MetadataData is the song title card shown at the start of the game.
type MetadataData struct {
	Title   string
	Artist  string
	Version string

	Hold  float32 // seconds before the fade starts
	Fade  *gween.Tween
	Alpha float32
}

var Metadata = donburi.NewComponentType[MetadataData]()

// PlayfieldData holds the per-hit animation curves, evaluated against the
// play clock rather than advanced per frame.
type PlayfieldData struct {
	Approach *gween.Tween // approach circle scale over the approach time
	FadeIn   *gween.Tween // hit opacity over the first third of the approach
	FadeOut  *gween.Tween // verdict opacity after the hit is judged
}

var Playfield = donburi.NewComponentType[PlayfieldData]()
