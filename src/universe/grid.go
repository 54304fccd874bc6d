package universe

type Cell bool

//Point addresses a cell by its row and column
type Point struct {
	Row int
	Col int
}

//Edit is a manual change of a single cell
type Edit struct {
	Point
	Alive Cell
}

//Grid is the dense field where cells are living
//the Grid stored in a published Generation is never written again, all the writers work on a copy
type Grid struct {
	Width  int
	Height int
	cells  [][]Cell
}

//NewGrid allocates the new grid with all cells dead
//rows share one backing buffer
func NewGrid(width int, height int) Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := Grid{Width: width, Height: height, cells: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range g.cells {
		start := width * i
		g.cells[i] = b[start : start+width : start+width]
	}
	return g
}

//GridFromPoints creates the grid with live cells at the given points, points outside are dropped
func GridFromPoints(width int, height int, points []Point) Grid {
	g := NewGrid(width, height)
	for _, p := range points {
		g.set(p, true)
	}
	return g
}

//Contains reports whether p is inside the grid
func (g Grid) Contains(p Point) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < g.Height && p.Col < g.Width
}

//Cell returns the cell state, positions outside the grid are dead
func (g Grid) Cell(p Point) Cell {
	if !g.Contains(p) {
		return false
	}
	return g.cells[p.Row][p.Col]
}

//Clone returns a deep copy
func (g Grid) Clone() Grid {
	c := NewGrid(g.Width, g.Height)
	for y := range g.cells {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

//WithEdits returns a copy of the grid with edits applied in order
//out of range edits are ignored
func (g Grid) WithEdits(edits []Edit) Grid {
	c := g.Clone()
	for _, e := range edits {
		c.set(e.Point, e.Alive)
	}
	return c
}

//SameSize reports whether both grids have the same dimensions
func (g Grid) SameSize(o Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

//LiveCells calculates the count of live cells
func (g Grid) LiveCells() int {
	liveCells := 0
	g.walk(func(_ int, _ int, c Cell) {
		if c {
			liveCells++
		}
	})
	return liveCells
}

//LivePoints returns positions of all live cells in row-major order
func (g Grid) LivePoints() []Point {
	points := make([]Point, 0)
	g.walk(func(row int, col int, c Cell) {
		if c {
			points = append(points, Point{row, col})
		}
	})
	return points
}

//Equal reports whether both grids have the same size and cells
func (g Grid) Equal(o Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

//String renders the grid with '#' for live and '.' for dead cells, one line per row
func (g Grid) String() string {
	b := make([]byte, 0, (g.Width+1)*g.Height)
	for y := range g.cells {
		if y != 0 {
			b = append(b, '\n')
		}
		for _, c := range g.cells[y] {
			if c {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}

//set places the cell at p, returns false when p is outside
func (g Grid) set(p Point, c Cell) bool {
	if !g.Contains(p) {
		return false
	}
	g.cells[p.Row][p.Col] = c
	return true
}

//walk walks the entire grid and calls the cb function for each cell
func (g Grid) walk(cb func(row int, col int, c Cell)) {
	for y := range g.cells {
		for x := range g.cells[y] {
			cb(y, x, g.cells[y][x])
		}
	}
}
