package universe

import (
	"sync"
)

/*
	Engine with multithreaded computation algorithm
	the grid is splitted into horizontal bands each of which is computed by individual goroutine
	bands write disjoint rows of the fresh buffer, so no locking is needed
*/

const (
	DefWorkers          = 10 //default workers
	DefMinRowsPerWorker = 3  //minimum rows for one worker
)

type MultithreadedEngine struct {
	topology Topology
	workers  int
}

//workArea describes the band of rows for the worker
type workArea struct {
	y1 int
	y2 int
}

//NewMultithreadedEngine creates the engine, workers <= 0 means DefWorkers
func NewMultithreadedEngine(t Topology, workers int) *MultithreadedEngine {
	if workers <= 0 {
		workers = DefWorkers
	}
	return &MultithreadedEngine{topology: t, workers: workers}
}

func (e *MultithreadedEngine) Name() string {
	return "multithreaded"
}

//Next starts goroutines and waits for all of them
func (e *MultithreadedEngine) Next(g Grid) Grid {
	next := NewGrid(g.Width, g.Height)
	var waitGroup sync.WaitGroup
	for _, wa := range e.workAreas(g.Height) {
		waitGroup.Add(1)
		go func(wa workArea) {
			defer waitGroup.Done()
			e.calcArea(g, next, wa)
		}(wa)
	}
	waitGroup.Wait()
	return next
}

//workAreas splits height rows into bands
func (e *MultithreadedEngine) workAreas(height int) []workArea {
	linesPerWorker := height / e.workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*e.workers < height {
		linesPerWorker++
	}
	areas := make([]workArea, 0, e.workers)
	for y1 := 0; y1 < height; y1 += linesPerWorker {
		y2 := y1 + linesPerWorker - 1
		if y2 > height-1 {
			y2 = height - 1
		}
		areas = append(areas, workArea{y1, y2})
	}
	return areas
}

//calcArea calculates new states for the cells inside workArea
func (e *MultithreadedEngine) calcArea(g Grid, next Grid, wa workArea) {
	for y := wa.y1; y <= wa.y2; y++ {
		for x := 0; x < g.Width; x++ {
			next.cells[y][x] = cellNextState(g, y, x, e.topology)
		}
	}
}
