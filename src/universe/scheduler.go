package universe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

//ErrSchedulerFailed is returned by Run when the scheduler loop cannot continue
var ErrSchedulerFailed = errors.New("scheduler failed")

var discardLogger = log.New(io.Discard, "", 0)

//Scheduler advances the Universe in the background
type Scheduler struct {
	u      *Universe
	engine Engine
	logger *log.Logger
}

//NewScheduler creates the Scheduler, logger may be nil
func NewScheduler(u *Universe, engine Engine, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = discardLogger
	}
	return &Scheduler{u: u, engine: engine, logger: logger}
}

//Run is the main cycle, should start as a goroutine
//sleeps for the current interval, then drains pending changes and does the rule step if running
//pending changes wake it up earlier and are applied without the rule step
//an interval change is picked up by the next sleep, the current one is not shortened or extended
//returns nil when ctx is done, a panic inside the cycle is returned as an error
func (s *Scheduler) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSchedulerFailed, r)
			s.logger.Printf("scheduler: %v", err)
		}
	}()
	s.logger.Printf("scheduler: started, engine %v", s.engine.Name())
	for {
		timer := time.NewTimer(s.u.Interval())
		for ticked := false; !ticked; {
			select {
			case <-ctx.Done():
				timer.Stop()
				s.logger.Printf("scheduler: stopped")
				return nil
			case <-s.u.wake:
				s.cycle(false)
			case <-timer.C:
				ticked = true
			}
		}
		s.cycle(true)
	}
}

//cycle does one drain-apply-step-publish round
//returns the published Generation and false when there was nothing to publish
func (s *Scheduler) cycle(tick bool) (Generation, bool) {
	w := s.u.drain(tick)
	if w.reset == nil && len(w.edits) == 0 && !w.step {
		return w.base, false
	}

	gen := w.base
	g := gen.Grid
	if w.reset != nil {
		g = *w.reset
	}
	if len(w.edits) > 0 {
		g = g.WithEdits(w.edits)
	}
	if w.reset != nil || len(w.edits) > 0 {
		gen.Grid = g
		gen.LiveCells = g.LiveCells()
	}

	if w.step {
		start := time.Now()
		next := s.engine.Next(g)
		gen = Generation{
			Number:        w.base.Number + 1,
			Grid:          next,
			LiveCells:     next.LiveCells(),
			IterationTime: time.Since(start),
		}
	}

	s.u.publish(gen)
	return gen, true
}
