package interact

import "github.com/Faultbox/wikiwalk/internal/room"

// EventKind tags an Event.
type EventKind int

const (
	EventDoor EventKind = iota
	EventHoldStarted
	EventHoldReleased
	EventAction
)

func (k EventKind) String() string {
	switch k {
	case EventDoor:
		return "door"
	case EventHoldStarted:
		return "hold-started"
	case EventHoldReleased:
		return "hold-released"
	case EventAction:
		return "action"
	default:
		return "unknown"
	}
}

// Event is the outcome of a successful trigger.
type Event struct {
	Kind EventKind

	Door       room.Door   // EventDoor
	PickableID string      // EventHoldStarted, EventHoldReleased
	ActionID   string      // EventAction
	Action     room.Action // EventAction
}
