package model

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-torus-life/rules"
)

// ErrInvalidDimensions is returned when a universe is requested with a
// non-positive width or height
var ErrInvalidDimensions = errors.New("universe dimensions must be positive")

// Tracer receives every rule evaluation performed by Tick, in row-major order
type Tracer interface {
	TraceCell(row, col int, cell Cell, neighbors uint8, next Cell)
}

// Option configures a Universe at construction time
type Option func(u *Universe)

// WithWorkers splits each generation into n row bands computed concurrently.
// Values below 2 keep the computation on the calling goroutine.
func WithWorkers(n int) Option {
	return func(u *Universe) {
		u.workers = n
	}
}

// WithTracer installs a per-cell tracer. Tracing always runs sequentially.
func WithTracer(t Tracer) Option {
	return func(u *Universe) {
		u.tracer = t
	}
}

// Universe is a fixed-size toroidal Game of Life grid.
//
// Cells are stored row-major in a flat buffer: position (row, col) lives at
// index row*width + col. The grid has no edges; row 0 neighbours row height-1
// and column 0 neighbours column width-1.
type Universe struct {
	width      int
	height     int
	cells      []Cell
	next       []Cell // scratch buffer, swapped with cells on every tick
	generation int

	workers int
	tracer  Tracer
}

// NewUniverse allocates a width x height universe and applies seed to it.
// A nil seed leaves every cell Dead.
func NewUniverse(width, height int, seed Seed, opts ...Option) (*Universe, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewUniverse] got %dx%d", width, height)
	}

	u := &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		next:   make([]Cell, width*height),
	}
	for _, opt := range opts {
		opt(u)
	}
	if seed != nil {
		seed(u)
	}
	return u, nil
}

// Width returns the number of columns
func (u *Universe) Width() int {
	return u.width
}

// Height returns the number of rows
func (u *Universe) Height() int {
	return u.height
}

// Generation returns how many times Tick has been applied
func (u *Universe) Generation() int {
	return u.generation
}

// Cells exposes the current generation, row-major, one value per cell
// (0 = Dead, 1 = Alive). The slice must not be modified and is only valid
// until the next call to Tick.
func (u *Universe) Cells() []Cell {
	return u.cells
}

// Get returns the state at (row, col); both coordinates wrap around the torus
func (u *Universe) Get(row, col int) Cell {
	return u.cells[u.index(wrap(row, u.height), wrap(col, u.width))]
}

// Population returns the number of living cells
func (u *Universe) Population() (count int) {
	for _, c := range u.cells {
		count += int(c)
	}
	return
}

// LiveNeighborCount counts the living cells among the eight toroidally
// adjacent positions of (row, col).
func (u *Universe) LiveNeighborCount(row, col int) uint8 {
	row, col = wrap(row, u.height), wrap(col, u.width)

	var (
		w     = u.width
		c     = u.cells
		north = ((row + u.height - 1) % u.height) * w
		here  = row * w
		south = ((row + 1) % u.height) * w
		west  = (col + w - 1) % w
		east  = (col + 1) % w
	)
	return uint8(c[north+west] + c[north+col] + c[north+east] +
		c[here+west] + c[here+east] +
		c[south+west] + c[south+col] + c[south+east])
}

// Tick advances the universe by one generation. The whole next generation is
// computed from the current one before the buffers are swapped.
func (u *Universe) Tick() {
	if u.tracer != nil || u.workers < 2 || u.height < 2 {
		u.advanceRows(0, u.height)
	} else {
		u.advanceParallel()
	}
	u.cells, u.next = u.next, u.cells
	u.generation++
}

// advanceParallel computes the next generation in row bands. Workers only
// read u.cells and each writes a disjoint range of u.next.
func (u *Universe) advanceParallel() {
	var (
		eg            errgroup.Group
		numWorkers    = min(u.workers, u.height)
		rowsPerWorker = (u.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := 0; i < numWorkers; i++ {
		startRow := i * rowsPerWorker
		if startRow >= u.height {
			break
		}
		endRow := min(startRow+rowsPerWorker, u.height)

		eg.Go(func() error {
			u.advanceRows(startRow, endRow)
			return nil
		})
	}

	_ = eg.Wait()
}

// advanceRows writes the next state of rows [startRow, endRow) into u.next
func (u *Universe) advanceRows(startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for col := 0; col < u.width; col++ {
			idx := u.index(row, col)
			cell := u.cells[idx]
			neighbors := u.LiveNeighborCount(row, col)
			next := cellOf(rules.ApplyConwayRules(int(neighbors), cell == Alive))

			if u.tracer != nil {
				u.tracer.TraceCell(row, col, cell, neighbors, next)
			}
			u.next[idx] = next
		}
	}
}

// set writes a cell during seeding; coordinates wrap
func (u *Universe) set(row, col int, c Cell) {
	u.cells[u.index(wrap(row, u.height), wrap(col, u.width))] = c
}

func (u *Universe) index(row, col int) int {
	return row*u.width + col
}

// wrap maps any integer coordinate onto [0, n)
func wrap(v, n int) int {
	return ((v % n) + n) % n
}
