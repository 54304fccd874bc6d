package universe

import (
	"math/rand"
	"time"
)

//Seeder produces random grids from a reproducible seed
//not safe for concurrent use, it is owned by one goroutine at a time
type Seeder struct {
	rnd     *rand.Rand
	seed    int64
	density float64
}

//NewSeeder creates the Seeder, seed 0 is replaced by the clock based one
func NewSeeder(seed int64, density float64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		rnd:     rand.New(rand.NewSource(seed)),
		seed:    seed,
		density: density,
	}
}

//Seed returns the effective seed, runs started with it are reproducible
func (s *Seeder) Seed() int64 {
	return s.seed
}

//Random returns the grid where each cell is alive with the seeder density
func (s *Seeder) Random(width int, height int) Grid {
	g := NewGrid(width, height)
	g.walk(func(row int, col int, _ Cell) {
		g.cells[row][col] = Cell(s.rnd.Float64() < s.density)
	})
	return g
}
