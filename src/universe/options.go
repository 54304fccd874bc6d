package universe

import (
	"errors"
	"fmt"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Width        int
	Height       int
	Interval     time.Duration //initial tick interval
	MinInterval  time.Duration //the fastest allowed tick interval
	MaxInterval  time.Duration //the slowest allowed tick interval
	IntervalStep time.Duration //tick interval change per speed up or slow down
	InputTimeout time.Duration //how long the controller waits for input before redrawing
	Running      bool
	Seed         int64 //0 means derived from the clock
	Density      float64
	Wrap         bool
}

//default options
const (
	DefWidth           = 40
	DefHeight          = 15
	DefTickInterval    = time.Millisecond * 250
	DefMinTickInterval = time.Millisecond * 20
	DefMaxTickInterval = time.Second * 2
	DefIntervalStep    = time.Millisecond * 10
	DefInputTimeout    = time.Millisecond * 50
	DefDensity         = 0.3
)

var DefaultUniverseOptions = Options{
	Width:        DefWidth,
	Height:       DefHeight,
	Interval:     DefTickInterval,
	MinInterval:  DefMinTickInterval,
	MaxInterval:  DefMaxTickInterval,
	IntervalStep: DefIntervalStep,
	InputTimeout: DefInputTimeout,
	Running:      true,
	Density:      DefDensity,
}

//ErrInvalidOptions is wrapped by every error returned from Validate
var ErrInvalidOptions = errors.New("invalid options")

//Validate checks the options before anything is started
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: dimension %v x %v must be positive", ErrInvalidOptions, o.Width, o.Height)
	case o.Wrap && (o.Width < 3 || o.Height < 3):
		//a smaller torus makes the same cell a neighbour more than once
		return fmt.Errorf("%w: wrapped dimension %v x %v must be at least 3 x 3", ErrInvalidOptions, o.Width, o.Height)
	case o.MinInterval <= 0:
		return fmt.Errorf("%w: min interval %v must be positive", ErrInvalidOptions, o.MinInterval)
	case o.MaxInterval < o.MinInterval:
		return fmt.Errorf("%w: max interval %v is less than min interval %v", ErrInvalidOptions, o.MaxInterval, o.MinInterval)
	case o.Interval < o.MinInterval || o.Interval > o.MaxInterval:
		return fmt.Errorf("%w: interval %v is outside [%v, %v]", ErrInvalidOptions, o.Interval, o.MinInterval, o.MaxInterval)
	case o.IntervalStep <= 0:
		return fmt.Errorf("%w: interval step %v must be positive", ErrInvalidOptions, o.IntervalStep)
	case o.InputTimeout <= 0:
		return fmt.Errorf("%w: input timeout %v must be positive", ErrInvalidOptions, o.InputTimeout)
	case o.Density < 0 || o.Density > 1:
		return fmt.Errorf("%w: density %v is outside [0, 1]", ErrInvalidOptions, o.Density)
	}
	return nil
}

//Topology returns the grid topology selected by the Wrap option
func (o Options) Topology() Topology {
	if o.Wrap {
		return Torus
	}
	return Bounded
}

//ClampInterval keeps d within [MinInterval, MaxInterval]
func (o Options) ClampInterval(d time.Duration) time.Duration {
	if d < o.MinInterval {
		return o.MinInterval
	}
	if d > o.MaxInterval {
		return o.MaxInterval
	}
	return d
}
