package universe

import (
	"sync"
	"time"
)

//Generation is the immutable snapshot of the grid at a point in simulated time
type Generation struct {
	Number        int //0 for the initial grid, +1 per rule step
	Grid          Grid
	LiveCells     int
	IterationTime time.Duration //time spent on the rule step that produced Grid
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation
	Running  bool
	Interval time.Duration
	Pending  int //queued manual edits
}

//Universe is the slot shared by the scheduler and the controller
//it holds the latest Generation and the simulation control state
//every method holds the lock only for a read or a replace, never during the rule computation
type Universe struct {
	mu       sync.Mutex
	current  Generation
	running  bool
	interval time.Duration
	edits    []Edit
	reset    *Grid
	step     bool
	wake     chan struct{}
}

//work is what the scheduler takes from the Universe for one cycle
type work struct {
	base  Generation
	reset *Grid
	edits []Edit
	step  bool
}

//New creates the Universe with g as generation 0
func New(g Grid, running bool, interval time.Duration) *Universe {
	return &Universe{
		current:  Generation{Grid: g, LiveCells: g.LiveCells()},
		running:  running,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

//Snapshot returns the latest published Generation
func (u *Universe) Snapshot() Generation {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.current
}

//Status returns the latest Generation together with the control state
func (u *Universe) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Status{
		Generation: u.current,
		Running:    u.running,
		Interval:   u.interval,
		Pending:    len(u.edits),
	}
}

func (u *Universe) Running() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.running
}

func (u *Universe) SetRunning(running bool) {
	u.mu.Lock()
	u.running = running
	u.mu.Unlock()
}

func (u *Universe) Interval() time.Duration {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.interval
}

//SetInterval changes the tick interval starting from the next tick
func (u *Universe) SetInterval(d time.Duration) {
	u.mu.Lock()
	u.interval = d
	u.mu.Unlock()
}

//QueueEdit queues the manual edit for the next cycle
//edits outside the grid are ignored and false is returned
func (u *Universe) QueueEdit(e Edit) bool {
	u.mu.Lock()
	if !u.current.Grid.Contains(e.Point) {
		u.mu.Unlock()
		return false
	}
	u.edits = append(u.edits, e)
	u.mu.Unlock()
	u.notify()
	return true
}

//Toggle queues the edit inverting the cell at p
//the inverted state takes into account the edits which are still pending
func (u *Universe) Toggle(p Point) bool {
	u.mu.Lock()
	if !u.current.Grid.Contains(p) {
		u.mu.Unlock()
		return false
	}
	u.edits = append(u.edits, Edit{Point: p, Alive: !u.effectiveCell(p)})
	u.mu.Unlock()
	u.notify()
	return true
}

//Reset replaces the whole grid on the next cycle, before any rule step
//edits queued earlier are dropped, a grid of the other size is ignored
func (u *Universe) Reset(g Grid) bool {
	u.mu.Lock()
	if !g.SameSize(u.current.Grid) {
		u.mu.Unlock()
		return false
	}
	u.reset = &g
	u.edits = nil
	u.mu.Unlock()
	u.notify()
	return true
}

//RequestStep asks for exactly one rule step on the next cycle, even when paused
func (u *Universe) RequestStep() {
	u.mu.Lock()
	u.step = true
	u.mu.Unlock()
	u.notify()
}

//effectiveCell returns the state of p after all pending changes, the lock must be held
func (u *Universe) effectiveCell(p Point) Cell {
	for i := len(u.edits) - 1; i >= 0; i-- {
		if u.edits[i].Point == p {
			return u.edits[i].Alive
		}
	}
	if u.reset != nil {
		return u.reset.Cell(p)
	}
	return u.current.Grid.Cell(p)
}

//notify wakes up the scheduler, never blocks
func (u *Universe) notify() {
	select {
	case u.wake <- struct{}{}:
	default:
	}
}

//drain takes all pending changes, each of them is handed out exactly once
//tick means the interval elapsed, the rule step is done if the universe is running
func (u *Universe) drain(tick bool) work {
	u.mu.Lock()
	defer u.mu.Unlock()
	w := work{
		base:  u.current,
		reset: u.reset,
		edits: u.edits,
		step:  u.step || (tick && u.running),
	}
	u.reset = nil
	u.edits = nil
	u.step = false
	return w
}

//publish replaces the current Generation
func (u *Universe) publish(gen Generation) {
	u.mu.Lock()
	u.current = gen
	u.mu.Unlock()
}
