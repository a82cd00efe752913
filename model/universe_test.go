package model

import (
	"fmt"
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func newTestUniverse(t testing.TB, width, height int, seed Seed, opts ...Option) *Universe {
	t.Helper()
	u, err := NewUniverse(width, height, seed, opts...)
	if err != nil {
		t.Fatalf("NewUniverse(%d, %d): %v", width, height, err)
	}
	return u
}

// livePoints lists the living cells in row-major order
func livePoints(u *Universe) []Point {
	var out []Point
	for i, c := range u.Cells() {
		if c == Alive {
			out = append(out, Point{Row: i / u.Width(), Col: i % u.Width()})
		}
	}
	return out
}

func TestNewUniverseRejectsNonPositiveDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -4}, {0, 0}} {
		u, err := NewUniverse(dims[0], dims[1], nil)
		if err == nil {
			t.Fatalf("%dx%d: expected an error", dims[0], dims[1])
		}
		if errors.Cause(err) != ErrInvalidDimensions {
			t.Fatalf("%dx%d: unexpected error %v", dims[0], dims[1], err)
		}
		if u != nil {
			t.Fatalf("%dx%d: expected nil universe", dims[0], dims[1])
		}
	}
}

func TestNewUniverseWithoutSeedIsDead(t *testing.T) {
	u := newTestUniverse(t, 7, 3, nil)
	if u.Width() != 7 || u.Height() != 3 {
		t.Fatalf("unexpected dimensions %dx%d", u.Width(), u.Height())
	}
	if got := u.Population(); got != 0 {
		t.Fatalf("expected empty universe, got %d living cells", got)
	}
}

func TestCellsLengthInvariant(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 9}, {9, 1}, {3, 3}, {17, 5}, {64, 64}}
	for _, s := range sizes {
		u := newTestUniverse(t, s[0], s[1], Random(42, 0.4))
		for i := 0; i < 10; i++ {
			if got, want := len(u.Cells()), u.Width()*u.Height(); got != want {
				t.Fatalf("%dx%d after %d ticks: len(Cells()) = %d, want %d", s[0], s[1], i, got, want)
			}
			for idx, c := range u.Cells() {
				if c != Dead && c != Alive {
					t.Fatalf("%dx%d: cell %d has value %d", s[0], s[1], idx, c)
				}
			}
			u.Tick()
		}
	}
}

func TestAllDeadIsFixedPoint(t *testing.T) {
	for _, s := range [][2]int{{1, 1}, {2, 2}, {3, 7}, {16, 16}} {
		u := newTestUniverse(t, s[0], s[1], nil)
		for i := 0; i < 5; i++ {
			u.Tick()
		}
		if u.Width() != s[0] || u.Height() != s[1] {
			t.Fatalf("dimensions changed to %dx%d", u.Width(), u.Height())
		}
		if got := u.Population(); got != 0 {
			t.Fatalf("%dx%d: spontaneous generation of %d cells", s[0], s[1], got)
		}
	}
}

func TestBlockIsStillLife(t *testing.T) {
	block, _ := Template("block")

	tests := []struct {
		name   string
		width  int
		height int
		row    int
		col    int
	}{
		{"interior", 6, 6, 2, 2},
		{"straddling both seams", 8, 8, 7, 7},
		{"straddling column seam", 6, 5, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUniverse(t, tt.width, tt.height, block.At(tt.row, tt.col))
			before := slices.Clone(u.Cells())
			u.Tick()
			if !slices.Equal(before, u.Cells()) {
				t.Fatalf("block changed:\n%s", u)
			}
			if got := u.Population(); got != 4 {
				t.Fatalf("expected 4 living cells, got %d", got)
			}
		})
	}
}

func TestSingleCellDiesOnSmallTorus(t *testing.T) {
	u := newTestUniverse(t, 3, 3, Shape(1, 1, Point{}))
	u.Tick()
	if got := u.Population(); got != 0 {
		t.Fatalf("expected every cell dead, got:\n%s", u)
	}
}

func TestLiveNeighborCountWraps(t *testing.T) {
	u := newTestUniverse(t, 4, 4, Shape(0, 0, Point{}))

	tests := []struct {
		row, col int
		want     uint8
	}{
		{3, 3, 1}, // opposite corner
		{0, 3, 1},
		{3, 0, 1},
		{1, 1, 1},
		{0, 1, 1},
		{1, 0, 1},
		{3, 1, 1},
		{1, 3, 1},
		{0, 0, 0}, // a cell is not its own neighbour
		{2, 2, 0},
		{2, 0, 0},
		{-1, -1, 1}, // out of range coordinates wrap too
	}
	for _, tt := range tests {
		if got := u.LiveNeighborCount(tt.row, tt.col); got != tt.want {
			t.Errorf("LiveNeighborCount(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestLiveNeighborCountFull(t *testing.T) {
	u := newTestUniverse(t, 5, 5, Stripes(1, 0))
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if got := u.LiveNeighborCount(row, col); got != 8 {
				t.Fatalf("LiveNeighborCount(%d, %d) = %d, want 8", row, col, got)
			}
		}
	}
}

func TestLiveNeighborCountDoesNotAllocate(t *testing.T) {
	u := newTestUniverse(t, 16, 16, Random(3, 0.5))
	allocs := testing.AllocsPerRun(100, func() {
		u.LiveNeighborCount(0, 15)
	})
	if allocs != 0 {
		t.Fatalf("expected no allocations, got %v", allocs)
	}
}

func TestBlinkerHasPeriodTwo(t *testing.T) {
	blinker, _ := Template("blinker")
	u := newTestUniverse(t, 5, 5, blinker.At(2, 1))
	initial := slices.Clone(u.Cells())

	u.Tick()
	want := []Point{{1, 2}, {2, 2}, {3, 2}}
	if got := livePoints(u); !slices.Equal(got, want) {
		t.Fatalf("after one tick: want %v got %v", want, got)
	}

	u.Tick()
	if !slices.Equal(initial, u.Cells()) {
		t.Fatalf("blinker did not return to its initial phase:\n%s", u)
	}
}

func TestBlinkerAcrossSeam(t *testing.T) {
	blinker, _ := Template("blinker")
	u := newTestUniverse(t, 6, 6, blinker.At(0, 5))

	u.Tick()
	want := []Point{{0, 0}, {1, 0}, {5, 0}}
	if got := livePoints(u); !slices.Equal(got, want) {
		t.Fatalf("want %v got %v", want, got)
	}
}

func TestGliderTravelsAroundTorus(t *testing.T) {
	glider, _ := Template("glider")
	u := newTestUniverse(t, 8, 8, glider.At(0, 0))
	initial := slices.Clone(u.Cells())

	for i := 0; i < 4; i++ {
		u.Tick()
	}
	shifted := newTestUniverse(t, 8, 8, glider.At(1, 1))
	if !slices.Equal(shifted.Cells(), u.Cells()) {
		t.Fatalf("glider did not move one cell diagonally:\n%s", u)
	}

	// 8 diagonal steps bring it back to where it started
	for i := 0; i < 28; i++ {
		u.Tick()
	}
	if !slices.Equal(initial, u.Cells()) {
		t.Fatalf("glider did not wrap back to its origin:\n%s", u)
	}
	if got := u.Generation(); got != 32 {
		t.Fatalf("expected generation 32, got %d", got)
	}
}

func TestParallelTickMatchesSequential(t *testing.T) {
	for _, workers := range []int{2, 3, 4, 7, 100} {
		seq := newTestUniverse(t, 37, 29, Random(99, 0.35))
		par := newTestUniverse(t, 37, 29, Random(99, 0.35), WithWorkers(workers))

		for gen := 1; gen <= 25; gen++ {
			seq.Tick()
			par.Tick()
			if !slices.Equal(seq.Cells(), par.Cells()) {
				t.Fatalf("workers=%d: generations diverged at %d", workers, gen)
			}
		}
	}
}

type recordingTracer struct {
	calls []Point
	born  int
}

func (r *recordingTracer) TraceCell(row, col int, cell Cell, neighbors uint8, next Cell) {
	r.calls = append(r.calls, Point{row, col})
	if cell == Dead && next == Alive {
		r.born++
	}
}

func TestTracerSeesEveryCellInOrder(t *testing.T) {
	blinker, _ := Template("blinker")
	tracer := &recordingTracer{}
	u := newTestUniverse(t, 5, 4, blinker.At(1, 1), WithTracer(tracer), WithWorkers(4))
	u.Tick()

	if got, want := len(tracer.calls), 5*4; got != want {
		t.Fatalf("expected %d traced cells, got %d", want, got)
	}
	for i, p := range tracer.calls {
		if want := (Point{i / 5, i % 5}); p != want {
			t.Fatalf("call %d: want %v got %v", i, want, p)
		}
	}
	if tracer.born != 2 {
		t.Fatalf("expected 2 births, got %d", tracer.born)
	}
}

func TestGetWraps(t *testing.T) {
	u := newTestUniverse(t, 4, 3, Shape(2, 3, Point{}))
	if u.Get(-1, -1) != Alive {
		t.Fatal("Get(-1, -1) should address the bottom-right cell")
	}
	if u.Get(5, 7) != Alive {
		t.Fatal("Get(5, 7) should wrap to (2, 3)")
	}
	if u.Get(0, 0) != Dead {
		t.Fatal("Get(0, 0) should be dead")
	}
}

func BenchmarkTick(b *testing.B) {
	for _, workers := range []int{1, 4, 8} {
		b.Run(workersName(workers), func(b *testing.B) {
			u := newTestUniverse(b, 200, 200, Random(1, 0.3), WithWorkers(workers))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func workersName(n int) string {
	if n == 1 {
		return "sequential"
	}
	return fmt.Sprintf("workers-%d", n)
}
