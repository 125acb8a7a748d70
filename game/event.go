package game

// Action is a logical input, bound to keys and mouse buttons by the input host.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionSeekBackward
	ActionSeekForward
	ActionFinger1
	ActionFinger2
	ActionAutoplay
	ActionCount
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionPause:
		return "pause"
	case ActionSeekBackward:
		return "seek-backward"
	case ActionSeekForward:
		return "seek-forward"
	case ActionFinger1:
		return "finger1"
	case ActionFinger2:
		return "finger2"
	case ActionAutoplay:
		return "autoplay"
	}
	return "none"
}

// IsFinger reports whether the action is a gameplay key.
func (a Action) IsFinger() bool {
	return a == ActionFinger1 || a == ActionFinger2
}

// EventKind classifies polled input events.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventMouseMove
	EventFocusLost
	EventFocusGained
	EventWindowClose
)

// Event is one polled input event. X and Y are screen coordinates for
// mouse moves.
type Event struct {
	Kind   EventKind
	Action Action
	Repeat bool
	X, Y   float64
}

// EventSource is the input host.
type EventSource interface {
	// Poll appends the events since the previous call, in delivery order.
	Poll(dst []Event) []Event
}
