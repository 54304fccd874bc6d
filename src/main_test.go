package main

import (
	"context"
	"errors"
	"sync"
	"termlife/src/universe"
	"termlife/src/view"
	"testing"
	"time"
)

//scriptTerminal sends quit once the universe reaches the wanted generation
type scriptTerminal struct {
	mu     sync.Mutex
	u      *universe.Universe
	quitAt int
	frames int
}

func (s *scriptTerminal) NextEvent(ctx context.Context, timeout time.Duration) (view.Event, bool, error) {
	select {
	case <-ctx.Done():
		return view.Event{}, false, ctx.Err()
	case <-time.After(timeout):
	}
	if s.quitAt >= 0 && s.u.Snapshot().Number >= s.quitAt {
		return view.Event{Kind: view.EventQuit}, true, nil
	}
	return view.Event{}, false, nil
}

func (s *scriptTerminal) Render(view.Frame) error {
	s.mu.Lock()
	s.frames++
	s.mu.Unlock()
	return nil
}

func (s *scriptTerminal) Close() error { return nil }

func testOptions() universe.Options {
	o := universe.DefaultUniverseOptions
	o.Width, o.Height = 3, 3
	o.Interval = universe.DefMinTickInterval
	o.InputTimeout = time.Millisecond
	return o
}

func TestSimulateBlinker(t *testing.T) {
	o := testOptions()
	grid := universe.GridFromPoints(3, 3, []universe.Point{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}})
	u := universe.New(grid, true, o.Interval)
	term := &scriptTerminal{u: u, quitAt: 2}

	err := simulate(context.Background(), u, universe.NewBaseEngine(universe.Bounded), term, universe.NewSeeder(1, 0.3), o, nil)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	snap := u.Snapshot()
	if snap.Number < 2 {
		t.Fatalf("stopped at generation %v", snap.Number)
	}
	//the blinker has period 2
	expected := grid
	if snap.Number%2 == 1 {
		expected = universe.GridFromPoints(3, 3, []universe.Point{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}})
	}
	if !snap.Grid.Equal(expected) {
		t.Fatalf("generation %v:\n%v", snap.Number, snap.Grid)
	}
	if term.frames == 0 {
		t.Fatal("nothing was rendered")
	}
}

type brokenEngine struct{}

func (brokenEngine) Next(universe.Grid) universe.Grid { panic("boom") }
func (brokenEngine) Name() string                     { return "broken" }

func TestSimulateSchedulerFailure(t *testing.T) {
	o := testOptions()
	u := universe.New(universe.NewGrid(3, 3), true, o.Interval)
	term := &scriptTerminal{u: u, quitAt: -1}

	done := make(chan error, 1)
	go func() {
		done <- simulate(context.Background(), u, brokenEngine{}, term, universe.NewSeeder(1, 0.3), o, nil)
	}()
	select {
	case err := <-done:
		if !errors.Is(err, universe.ErrSchedulerFailed) {
			t.Fatalf("expected ErrSchedulerFailed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler failure did not stop the controller")
	}
}

func TestGuard(t *testing.T) {
	err := guard("task", func() error { panic("oops") })()
	if err == nil || err.Error() != "task: panic: oops" {
		t.Fatalf("got %v", err)
	}
	sentinel := errors.New("sentinel")
	if err := guard("task", func() error { return sentinel })(); err != sentinel {
		t.Fatalf("got %v", err)
	}
}

func TestValidate(t *testing.T) {
	o := universe.DefaultUniverseOptions
	tests := []struct {
		name  string
		eo    EnvOptions
		valid bool
	}{
		{"defaults", EnvOptions{engine: "base", template: universe.TemplateRandom}, true},
		{"multithreaded glider", EnvOptions{engine: "multithreaded", template: "glider"}, true},
		{"unknown engine", EnvOptions{engine: "gpu", template: universe.TemplateRandom}, false},
		{"unknown template", EnvOptions{engine: "base", template: "gosper"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.eo, &o)
			if tt.valid != (err == nil) {
				t.Fatalf("valid %v, got %v", tt.valid, err)
			}
			if err != nil && !errors.Is(err, universe.ErrInvalidOptions) {
				t.Fatalf("unexpected error kind %v", err)
			}
		})
	}
}

func TestOpenLog(t *testing.T) {
	logger, closeLog, err := openLog("")
	if err != nil || logger == nil {
		t.Fatalf("discard logger: %v", err)
	}
	closeLog()

	path := t.TempDir() + "/termlife.log"
	logger, closeLog, err = openLog(path)
	if err != nil {
		t.Fatalf("file logger: %v", err)
	}
	logger.Printf("hello")
	closeLog()
}
