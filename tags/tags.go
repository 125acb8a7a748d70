package tags

import "github.com/yohamta/donburi"

var (
	Session    = donburi.NewTag().SetName("Session")
	Background = donburi.NewTag().SetName("Background")
	Metadata   = donburi.NewTag().SetName("Metadata")
	Playfield  = donburi.NewTag().SetName("Playfield")
	Cursor     = donburi.NewTag().SetName("Cursor")
	Overlay    = donburi.NewTag().SetName("Overlay")
)
