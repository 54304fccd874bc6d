package universe

import (
	"fmt"
	"sort"
)

//Template represents the seeding template which can be used to settle the universe with predefined data
type Template struct {
	Name   string  //template name
	Descr  string  //template descr
	Points []Point //live cells, the ones outside the grid are dropped
}

const (
	TemplateRandom = "random"
	TemplateBlank  = "blank"
)

var templates = map[string]Template{
	TemplateRandom: {TemplateRandom, "every cell is alive with the configured density", nil},
	TemplateBlank:  {TemplateBlank, "all cells are dead", nil},
	"sample": {"sample", "the test sample with 3 stable patterns", []Point{
		{1, 1}, {2, 1},
		{1, 2}, {2, 2},
		{3, 3},
		{2, 4},
		{3, 4},
		{3, 5},
	}},
	"glider":  {"glider", "the glider moving down-right", []Point{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
	"blinker": {"blinker", "period 2 oscillator", []Point{{1, 0}, {1, 1}, {1, 2}}},
	"block":   {"block", "2x2 still life", []Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
}

//TemplateNames returns the sorted names of the known templates
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//LookupTemplate returns the template by name
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

//Settle creates the initial grid from the template
//s is only used by the random template
func Settle(name string, width int, height int, s *Seeder) (Grid, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Grid{}, fmt.Errorf("%w: unknown template %q", ErrInvalidOptions, name)
	}
	switch tmpl.Name {
	case TemplateRandom:
		return s.Random(width, height), nil
	case TemplateBlank:
		return NewGrid(width, height), nil
	}
	return GridFromPoints(width, height, tmpl.Points), nil
}
