package model

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Seed populates a freshly allocated universe. Seeds must be deterministic:
// applying the same seed to universes of equal size yields identical cells.
type Seed func(u *Universe)

// Point is a (row, col) offset
type Point struct {
	Row int
	Col int
}

// Shape marks the given points Alive relative to (originRow, originCol).
// Points falling off the grid wrap around.
func Shape(originRow, originCol int, points ...Point) Seed {
	return func(u *Universe) {
		for _, p := range points {
			u.set(originRow+p.Row, originCol+p.Col, Alive)
		}
	}
}

// Stripes marks every cell whose flat index modulo period is one of residues
func Stripes(period int, residues ...int) Seed {
	return func(u *Universe) {
		if period <= 0 {
			return
		}
		for i := range u.cells {
			if slices.Contains(residues, i%period) {
				u.cells[i] = Alive
			}
		}
	}
}

// Random fills the universe with living cells at the given density using a
// pseudo-random source derived from seed, so the result is reproducible.
func Random(seed int64, density float64) Seed {
	return func(u *Universe) {
		rng := rand.New(rand.NewSource(seed))
		for i := range u.cells {
			if rng.Float64() < density {
				u.cells[i] = Alive
			}
		}
	}
}

// Combine applies seeds in order
func Combine(seeds ...Seed) Seed {
	return func(u *Universe) {
		for _, s := range seeds {
			if s != nil {
				s(u)
			}
		}
	}
}

// Reference reproduces the classic demo layout: a diagonal stripe pattern
// (flat index mod 196 equal to 55 or 119) overlaid with a small cluster near
// (11,11), a block at (31,11), an irregular cluster around (21..24, 21..25)
// and a second block at (22,61). It is laid out for a 64x64 universe; on
// other sizes the coordinates wrap.
func Reference() Seed {
	return Combine(
		Stripes(196, 55, 55+64),
		Shape(0, 0,
			Point{11, 11}, Point{11, 12}, Point{12, 12},

			Point{31, 11}, Point{31, 12}, Point{32, 11}, Point{32, 12},
			Point{21, 21}, Point{21, 24},
			Point{22, 25},
			Point{23, 21}, Point{23, 25},
			Point{24, 22}, Point{24, 23}, Point{24, 24}, Point{24, 25},
			Point{22, 61}, Point{22, 62}, Point{23, 61}, Point{23, 62},
		),
	)
}

// ParseSeed builds a seed from a selector string. Selectors are joined with
// '+' and applied left to right:
//
//	empty                       no living cells
//	reference                   see Reference
//	random[:seed[:density]]     see Random (defaults 1 and 0.15)
//	stripes:period:r1,r2,...    see Stripes
//	<template>[@row,col]        a named template placed at row,col
func ParseSeed(selector string) (Seed, error) {
	var seeds []Seed
	for _, part := range strings.Split(selector, "+") {
		s, err := parseSeedPart(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "[ParseSeed] invalid selector %q", part)
		}
		seeds = append(seeds, s)
	}
	return Combine(seeds...), nil
}

func parseSeedPart(part string) (Seed, error) {
	name, args, _ := strings.Cut(part, ":")
	switch name {
	case "", "empty":
		return nil, nil
	case "reference":
		return Reference(), nil
	case "random":
		return parseRandom(args)
	case "stripes":
		return parseStripes(args)
	}

	name, at, placed := strings.Cut(part, "@")
	tmpl, ok := Template(name)
	if !ok {
		return nil, errors.Errorf("unknown template %q", name)
	}
	var origin Point
	if placed {
		var err error
		if origin, err = parsePoint(at); err != nil {
			return nil, err
		}
	}
	return tmpl.At(origin.Row, origin.Col), nil
}

func parseRandom(args string) (Seed, error) {
	var (
		seed    int64 = 1
		density       = 0.15
		err     error
	)
	fields := strings.Split(args, ":")
	if len(fields) > 2 {
		return nil, errors.New("expected random[:seed[:density]]")
	}
	if fields[0] != "" {
		if seed, err = strconv.ParseInt(fields[0], 10, 64); err != nil {
			return nil, errors.Wrap(err, "random seed")
		}
	}
	if len(fields) == 2 {
		if density, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, errors.Wrap(err, "random density")
		}
		if density < 0 || density > 1 {
			return nil, errors.Errorf("density %v out of range [0,1]", density)
		}
	}
	return Random(seed, density), nil
}

func parseStripes(args string) (Seed, error) {
	periodStr, residueStr, ok := strings.Cut(args, ":")
	if !ok {
		return nil, errors.New("expected stripes:period:r1,r2,...")
	}
	period, err := strconv.Atoi(periodStr)
	if err != nil || period <= 0 {
		return nil, errors.Errorf("invalid stripe period %q", periodStr)
	}
	var residues []int
	for _, f := range strings.Split(residueStr, ",") {
		r, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "stripe residue %q", f)
		}
		residues = append(residues, r)
	}
	return Stripes(period, residues...), nil
}

func parsePoint(s string) (Point, error) {
	rowStr, colStr, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, errors.Errorf("expected row,col, got %q", s)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Point{}, errors.Wrapf(err, "row %q", rowStr)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Point{}, errors.Wrapf(err, "col %q", colStr)
	}
	return Point{Row: row, Col: col}, nil
}
