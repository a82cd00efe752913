package model

import "sort"

// PatternTemplate is a named, reusable arrangement of living cells
type PatternTemplate struct {
	Name   string
	Descr  string
	Points []Point // offsets from the top-left corner of the pattern
}

// At returns a seed placing the template with its top-left corner at (row, col)
func (t PatternTemplate) At(row, col int) Seed {
	return Shape(row, col, t.Points...)
}

var templates = map[string]PatternTemplate{
	"block": {
		Name:   "block",
		Descr:  "2x2 still life",
		Points: []Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	"blinker": {
		Name:   "blinker",
		Descr:  "period 2 oscillator, horizontal phase",
		Points: []Point{{0, 0}, {0, 1}, {0, 2}},
	},
	"toad": {
		Name:   "toad",
		Descr:  "period 2 oscillator",
		Points: []Point{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}},
	},
	"beacon": {
		Name:   "beacon",
		Descr:  "period 2 oscillator made of two blocks",
		Points: []Point{{0, 0}, {0, 1}, {1, 0}, {2, 3}, {3, 2}, {3, 3}},
	},
	"glider": {
		Name:   "glider",
		Descr:  "spaceship moving one cell diagonally every 4 generations",
		Points: []Point{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	},
	"lwss": {
		Name:  "lwss",
		Descr: "lightweight spaceship moving left two cells every 4 generations",
		Points: []Point{
			{0, 1}, {0, 4},
			{1, 0},
			{2, 0}, {2, 4},
			{3, 0}, {3, 1}, {3, 2}, {3, 3},
		},
	},
}

// Template looks up a template by name
func Template(name string) (PatternTemplate, bool) {
	t, ok := templates[name]
	return t, ok
}

// Templates returns every known template sorted by name
func Templates() []PatternTemplate {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]PatternTemplate, 0, len(names))
	for _, n := range names {
		out = append(out, templates[n])
	}
	return out
}
