package main

import (
	"context"
	"fmt"
	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"termlife/src/control"
	"termlife/src/universe"
	"termlife/src/view"
)

type EnvOptions struct {
	paused   bool
	engine   string
	template string
	logFile  string
}

func main() {
	eo, uo := initOptions()

	if err := run(eo, uo); err != nil {
		fmt.Fprintf(os.Stderr, "termlife: %v\n", err)
		os.Exit(1)
	}
}

//run owns the terminal: it is acquired once and released on every return path
func run(eo *EnvOptions, uo *universe.Options) (err error) {
	logger, closeLog, err := openLog(eo.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	seeder := universe.NewSeeder(uo.Seed, uo.Density)
	grid, err := universe.Settle(eo.template, uo.Width, uo.Height, seeder)
	if err != nil {
		return err
	}
	u := universe.New(grid, uo.Running, uo.Interval)
	engine := universe.Engines[eo.engine](uo.Topology())

	details := map[string]interface{}{
		"Engine":   engine.Name(),
		"Seed":     seeder.Seed(),
		"Template": eo.template,
		"Topology": uo.Topology(),
	}
	logger.Printf("main: %v x %v, seed %v, engine %v, template %v", uo.Width, uo.Height, seeder.Seed(), engine.Name(), eo.template)

	ui, err := view.NewConsoleUI(*uo, details, logger)
	if err != nil {
		return fmt.Errorf("acquire terminal: %w", err)
	}
	defer func() {
		if cerr := ui.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return simulate(context.Background(), u, engine, ui, seeder, *uo, logger)
}

//simulate runs the scheduler and the controller until quit or the first error
func simulate(ctx context.Context, u *universe.Universe, engine universe.Engine, term view.Terminal, seeder *universe.Seeder, o universe.Options, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(guard("scheduler", func() error {
		return universe.NewScheduler(u, engine, logger).Run(ctx)
	}))
	eg.Go(guard("controller", func() error {
		//quit stops the scheduler as well
		defer cancel()
		return control.New(u, term, seeder, o, logger).Run(ctx)
	}))

	return eg.Wait()
}

//guard turns a panic of the task into its error, so the terminal is released by the deferred Close
func guard(name string, task func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v: panic: %v", name, r)
			}
		}()
		return task()
	}
}

//openLog opens the diagnostic log, the terminal belongs to the UI so nothing is logged there
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "termlife ", log.LstdFlags|log.Lmicroseconds), func() { _ = f.Close() }, nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultUniverseOptions
	uo = &o
	eo = &EnvOptions{engine: "base", template: universe.TemplateRandom}

	flaggy.SetName("termlife")
	flaggy.SetDescription("\"The Life\" game in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Duration(&uo.MinInterval, "", "minInterval", "The fastest allowed interval")
	flaggy.Duration(&uo.MaxInterval, "", "maxInterval", "The slowest allowed interval")
	flaggy.Duration(&uo.IntervalStep, "", "step", "Interval change per speed up or slow down")
	flaggy.Bool(&eo.paused, "p", "paused", "Start paused")
	flaggy.Int64(&uo.Seed, "s", "seed", "Random seed, 0 means derived from the clock")
	flaggy.Float64(&uo.Density, "d", "density", "Probability of a live cell in random data")
	flaggy.Bool(&uo.Wrap, "w", "wrap", "Wrap the field edges around (torus)")
	flaggy.String(&eo.template, "t", "template", "Initial pattern ["+strings.Join(universe.TemplateNames(), "|")+"]")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(engineNames(), "|")+"]")
	flaggy.String(&eo.logFile, "l", "log", "Write diagnostics to the file")

	flaggy.Parse()

	uo.Running = !eo.paused
	if err := validate(eo, uo); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}

//validate checks everything before the terminal is touched
func validate(eo *EnvOptions, uo *universe.Options) error {
	if err := uo.Validate(); err != nil {
		return err
	}
	if _, ok := universe.Engines[eo.engine]; !ok {
		return fmt.Errorf("%w: unknown engine %q", universe.ErrInvalidOptions, eo.engine)
	}
	if _, ok := universe.LookupTemplate(eo.template); !ok {
		return fmt.Errorf("%w: unknown template %q", universe.ErrInvalidOptions, eo.template)
	}
	return nil
}

func engineNames() []string {
	names := make([]string, 0, len(universe.Engines))
	for k := range universe.Engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
