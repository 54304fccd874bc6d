package universe

//Topology defines what lies beyond the grid edges
type Topology int

const (
	//Bounded treats every position outside the grid as a dead cell
	Bounded Topology = iota
	//Torus wraps the edges around, the last row neighbours the first one
	Torus
)

func (t Topology) String() string {
	if t == Torus {
		return "torus"
	}
	return "bounded"
}

//Engine computes the next generation
//Next must be pure: it never writes the passed grid and always returns the fresh one
type Engine interface {
	Next(g Grid) Grid
	Name() string
}

//Engines is the table of the available engines by name
var Engines = map[string]func(t Topology) Engine{
	"base": func(t Topology) Engine {
		return NewBaseEngine(t)
	},
	"multithreaded": func(t Topology) Engine {
		return NewMultithreadedEngine(t, DefWorkers)
	},
}

//BaseEngine is the simplest engine
//walks the grid in one goroutine and calculates the next state for the each cell into a new buffer
type BaseEngine struct {
	topology Topology
}

//NewBaseEngine creates the BaseEngine instance
func NewBaseEngine(t Topology) *BaseEngine {
	return &BaseEngine{topology: t}
}

func (e *BaseEngine) Name() string {
	return "base"
}

func (e *BaseEngine) Next(g Grid) Grid {
	next := NewGrid(g.Width, g.Height)
	g.walk(func(row int, col int, _ Cell) {
		next.cells[row][col] = cellNextState(g, row, col, e.topology)
	})
	return next
}

//liveNeighbours counts live cells in the Moore neighbourhood of row, col
func liveNeighbours(g Grid, row int, col int, t Topology) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			ny := row + i
			nx := col + j
			if t == Torus {
				ny = (ny + g.Height) % g.Height
				nx = (nx + g.Width) % g.Width
			} else if ny < 0 || nx < 0 || ny >= g.Height || nx >= g.Width {
				continue
			}
			if g.cells[ny][nx] {
				n++
			}
		}
	}
	return n
}

//cellNextState applies B3/S23 to one cell
func cellNextState(g Grid, row int, col int, t Topology) Cell {
	n := liveNeighbours(g, row, col, t)
	switch {
	case n == 3:
		return true
	case n == 2:
		return g.cells[row][col]
	default:
		return false
	}
}
