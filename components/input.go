package components

import (
	"github.com/automoto/oshu/beatmap"
	"github.com/automoto/oshu/game"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous frame's pressed state for all actions.
// Key events are computed by comparing frames.
type InputData struct {
	Current  [game.ActionCount]bool // Current frame's Pressed state
	Previous [game.ActionCount]bool // Previous frame's Pressed state

	MouseX, MouseY int
	Focused        bool
	Polled         bool
}

var Input = donburi.NewComponentType[InputData]()

// CursorData keeps the recent cursor positions for the trail.
type CursorData struct {
	Trail []beatmap.Point
	Next  int
	Full  bool
}

var Cursor = donburi.NewComponentType[CursorData]()
