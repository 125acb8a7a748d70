package config

import "github.com/automoto/oshu/game"

// InputBinding names the keys and mouse buttons bound to an action. Key
// names are ebiten key names ("Q", "Space", "ArrowLeft"); mouse buttons are
// "left", "right" or "middle".
type InputBinding struct {
	Keys         []string `yaml:"keys"`
	MouseButtons []string `yaml:"mouse"`
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[game.Action]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[game.Action]InputBinding{
			game.ActionQuit: {
				Keys: []string{"Q"},
			},
			game.ActionPause: {
				Keys: []string{"Space", "P"},
			},
			game.ActionSeekBackward: {
				Keys: []string{"ArrowLeft"},
			},
			game.ActionSeekForward: {
				Keys: []string{"ArrowRight"},
			},
			game.ActionFinger1: {
				Keys:         []string{"Z"},
				MouseButtons: []string{"left"},
			},
			game.ActionFinger2: {
				Keys:         []string{"X"},
				MouseButtons: []string{"right"},
			},
			game.ActionAutoplay: {
				Keys: []string{"A"},
			},
		},
	}
}

// ParseAction resolves an action by its name.
func ParseAction(name string) (game.Action, bool) {
	for a := game.ActionNone + 1; a < game.ActionCount; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return game.ActionNone, false
}
