package components

import "github.com/yohamta/donburi"

// PauseData tracks the active screen for the overlays.
type PauseData struct {
	IsPaused bool
	// Frames spent on the pause screen, drives the glyph pulse
	Frames int
}

var Pause = donburi.NewComponentType[PauseData]()
