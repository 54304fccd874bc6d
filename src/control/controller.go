package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"termlife/src/universe"
	"termlife/src/view"
	"time"
)

//Mode is the state of the controller
type Mode int

const (
	ModeRunning Mode = iota
	ModePaused
	ModeShuttingDown //terminal, reached only by the quit event
)

var modeNames = map[Mode]string{
	ModeRunning:      "running",
	ModePaused:       "paused",
	ModeShuttingDown: "shutting down",
}

func (m Mode) String() string {
	return modeNames[m]
}

//handler applies one event to the controller state
type handler func(c *Controller, ev view.Event)

//handlers is the event table, a new input event is a new row here
var handlers = map[view.EventKind]handler{
	view.EventQuit:          (*Controller).quit,
	view.EventToggleRunning: (*Controller).toggleRunning,
	view.EventSpeedUp:       (*Controller).speedUp,
	view.EventSpeedDown:     (*Controller).speedDown,
	view.EventMoveCursor:    (*Controller).moveCursor,
	view.EventToggleCell:    (*Controller).toggleCell,
	view.EventRandomize:     (*Controller).randomize,
	view.EventClear:         (*Controller).clear,
	view.EventStep:          (*Controller).step,
	view.EventSetCell:       (*Controller).setCell,
}

//Controller is the foreground loop: reads input, changes the state, renders
type Controller struct {
	u       *universe.Universe
	term    view.Terminal
	seeder  *universe.Seeder
	options universe.Options
	logger  *log.Logger
	cursor  Cursor
	mode    Mode
}

//New creates the Controller, the initial mode follows the running state of u
func New(u *universe.Universe, term view.Terminal, seeder *universe.Seeder, o universe.Options, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Controller{
		u:       u,
		term:    term,
		seeder:  seeder,
		options: o,
		logger:  logger,
		cursor:  NewCursor(o.Width, o.Height),
		mode:    ModePaused,
	}
	if u.Running() {
		c.mode = ModeRunning
	}
	return c
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) Cursor() universe.Point {
	return c.cursor.Point()
}

//Run is the main cycle
//waits for the input at most InputTimeout, handles it and always renders the latest generation
//returns nil after the quit event, the caller is responsible for stopping the scheduler
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Printf("controller: started in %v mode", c.mode)
	for c.mode != ModeShuttingDown {
		ev, ok, err := c.term.NextEvent(ctx, c.options.InputTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("controller interrupted: %w", err)
			}
			return fmt.Errorf("read input: %w", err)
		}
		if ok {
			c.Handle(ev)
		}
		if c.mode == ModeShuttingDown {
			break
		}
		if err := c.term.Render(c.Frame()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	c.logger.Printf("controller: stopped")
	return nil
}

//Handle applies ev, unknown events are ignored
func (c *Controller) Handle(ev view.Event) {
	if c.mode == ModeShuttingDown {
		return
	}
	h, ok := handlers[ev.Kind]
	if !ok {
		c.logger.Printf("controller: no handler for event %v", ev.Kind)
		return
	}
	h(c, ev)
}

//Frame is what Run renders on every cycle
func (c *Controller) Frame() view.Frame {
	return view.Frame{Status: c.u.Status(), Cursor: c.cursor.Point()}
}

func (c *Controller) quit(_ view.Event) {
	c.logger.Printf("controller: quit")
	c.mode = ModeShuttingDown
}

func (c *Controller) toggleRunning(_ view.Event) {
	switch c.mode {
	case ModeRunning:
		c.mode = ModePaused
	case ModePaused:
		c.mode = ModeRunning
	}
	c.u.SetRunning(c.mode == ModeRunning)
}

func (c *Controller) speedUp(_ view.Event) {
	c.adjustInterval(-c.options.IntervalStep)
}

func (c *Controller) speedDown(_ view.Event) {
	c.adjustInterval(c.options.IntervalStep)
}

//adjustInterval changes the tick interval by delta, stops at the configured bounds
func (c *Controller) adjustInterval(delta time.Duration) {
	cur := c.u.Interval()
	next := c.options.ClampInterval(cur + delta)
	if next == cur {
		return
	}
	c.u.SetInterval(next)
}

func (c *Controller) moveCursor(ev view.Event) {
	c.cursor.Move(ev.Direction)
}

func (c *Controller) toggleCell(_ view.Event) {
	if !c.u.Toggle(c.cursor.Point()) {
		c.logger.Printf("controller: cursor %v is outside the grid", c.cursor.Point())
	}
}

//setCell handles the mouse click, clicks outside the grid are ignored
func (c *Controller) setCell(ev view.Event) {
	if !c.u.Snapshot().Grid.Contains(ev.Point) {
		c.logger.Printf("controller: click %v is outside the grid", ev.Point)
		return
	}
	c.cursor.MoveTo(ev.Point)
	c.u.QueueEdit(universe.Edit{Point: ev.Point, Alive: ev.Alive})
}

func (c *Controller) randomize(_ view.Event) {
	c.u.Reset(c.seeder.Random(c.options.Width, c.options.Height))
}

func (c *Controller) clear(_ view.Event) {
	c.u.Reset(universe.NewGrid(c.options.Width, c.options.Height))
}

//step asks for one generation, only meaningful when paused
func (c *Controller) step(_ view.Event) {
	if c.mode == ModePaused {
		c.u.RequestStep()
	}
}
