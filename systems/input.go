package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/oshu/components"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var mouseButtons = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

// InputSource polls ebiten's input state once per frame and reports the
// changes as game events. Polling has no key repeat, so Repeat is never set.
type InputSource struct {
	keys    [game.ActionCount][]ebiten.Key
	buttons [game.ActionCount][]ebiten.MouseButton
	state   components.InputData
}

// NewInputSource resolves the configured bindings.
func NewInputSource() (*InputSource, error) {
	src := &InputSource{}
	for action, binding := range cfg.Input.Bindings {
		for _, name := range binding.Keys {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("invalid key %q for %s: %w", name, action, err)
			}
			src.keys[action] = append(src.keys[action], k)
		}
		for _, name := range binding.MouseButtons {
			b, ok := mouseButtons[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("invalid mouse button %q for %s", name, action)
			}
			src.buttons[action] = append(src.buttons[action], b)
		}
	}
	// Window close is reported as an event instead of ending the game loop.
	ebiten.SetWindowClosingHandled(true)
	return src, nil
}

// Poll appends the window, mouse and action changes since the last call.
func (s *InputSource) Poll(dst []game.Event) []game.Event {
	in := &s.state

	if ebiten.IsWindowBeingClosed() {
		dst = append(dst, game.Event{Kind: game.EventWindowClose})
	}

	focused := ebiten.IsFocused()
	if in.Polled && focused != in.Focused {
		kind := game.EventFocusLost
		if focused {
			kind = game.EventFocusGained
		}
		dst = append(dst, game.Event{Kind: kind})
	}
	in.Focused = focused

	mx, my := ebiten.CursorPosition()
	if !in.Polled || mx != in.MouseX || my != in.MouseY {
		dst = append(dst, game.Event{Kind: game.EventMouseMove, X: float64(mx), Y: float64(my)})
	}
	in.MouseX, in.MouseY = mx, my

	// Swap buffers: current becomes previous, then zero out current
	in.Previous = in.Current
	in.Current = [game.ActionCount]bool{}
	for action := range in.Current {
		for _, key := range s.keys[action] {
			if ebiten.IsKeyPressed(key) {
				in.Current[action] = true
			}
		}
		for _, b := range s.buttons[action] {
			if ebiten.IsMouseButtonPressed(b) {
				in.Current[action] = true
			}
		}
	}

	// Releases first, so a key swap within a frame reads as up then down.
	for action := range in.Current {
		if in.Previous[action] && !in.Current[action] {
			dst = append(dst, game.Event{Kind: game.EventKeyUp, Action: game.Action(action)})
		}
	}
	for action := range in.Current {
		if in.Current[action] && !in.Previous[action] {
			dst = append(dst, game.Event{Kind: game.EventKeyDown, Action: game.Action(action)})
		}
	}

	in.Polled = true
	return dst
}
