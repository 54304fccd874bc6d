package view

import (
	"context"
	"errors"
	"termlife/src/universe"
	"time"
)

//ErrClosed is returned once the terminal has been released
var ErrClosed = errors.New("terminal closed")

//Frame is everything drawn by one Render call
type Frame struct {
	Status universe.Status
	Cursor universe.Point
}

//Terminal is the interface to the terminal the controller works with
type Terminal interface {
	//NextEvent waits up to timeout for the next input event
	//ok is false when the timeout expired without any event
	NextEvent(ctx context.Context, timeout time.Duration) (ev Event, ok bool, err error)
	//Render draws the grid, the cursor and the status
	Render(f Frame) error
	//Close restores the terminal, safe to call more than once
	Close() error
}
