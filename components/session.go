package components

import (
	"github.com/automoto/oshu/audio"
	"github.com/automoto/oshu/game"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// SessionData shares the running game with the widgets.
type SessionData struct {
	Game  *game.Game
	Mixer *audio.Mixer

	// Duration of the music in seconds, 0 when unknown
	Duration  float64
	FrameRate int

	// Music volume ramp once the game is over
	MusicFade *gween.Tween
}

var Session = donburi.NewComponentType[SessionData]()
