package view

import "termlife/src/universe"

//EventKind is the logical input event decoded from keys and mouse
type EventKind int

const (
	EventQuit EventKind = iota
	EventToggleRunning
	EventSpeedUp
	EventSpeedDown
	EventMoveCursor
	EventToggleCell
	EventRandomize
	EventClear
	EventStep
	EventSetCell
)

var eventNames = map[EventKind]string{
	EventQuit:          "quit",
	EventToggleRunning: "toggle running",
	EventSpeedUp:       "speed up",
	EventSpeedDown:     "speed down",
	EventMoveCursor:    "move cursor",
	EventToggleCell:    "toggle cell",
	EventRandomize:     "randomize",
	EventClear:         "clear",
	EventStep:          "step",
	EventSetCell:       "set cell",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

//Event is one input event
//Direction is set for EventMoveCursor, Point and Alive for EventSetCell
type Event struct {
	Kind      EventKind
	Direction Direction
	Point     universe.Point
	Alive     universe.Cell
}
