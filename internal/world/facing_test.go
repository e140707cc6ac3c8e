package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacingRotate(t *testing.T) {
	for _, tc := range []struct {
		base, applied, expected Facing
	}{
		{North, North, North}, {North, East, East}, {North, South, South}, {North, West, West},
		{East, North, East}, {East, East, South}, {East, South, West}, {East, West, North},
		{South, North, South}, {South, East, West}, {South, South, North}, {South, West, East},
		{West, North, West}, {West, East, North}, {West, South, East}, {West, West, South},
	} {
		assert.Equal(t, tc.expected, tc.base.Rotate(tc.applied), "%v rotate %v", tc.base, tc.applied)
	}
}

func TestFacingStep(t *testing.T) {
	type result struct {
		x, y int
		ok   bool
	}
	step := func(f Facing, x, y int) result {
		nx, ny, ok := f.Step(x, y, 5, 10)
		if !ok {
			return result{}
		}
		return result{nx, ny, true}
	}

	assert.Equal(t, result{}, step(North, 2, 0))
	assert.Equal(t, result{0, 0, true}, step(North, 0, 1))
	assert.Equal(t, result{4, 8, true}, step(North, 4, 9))

	assert.Equal(t, result{}, step(East, 4, 2))
	assert.Equal(t, result{4, 1, true}, step(East, 3, 1))
	assert.Equal(t, result{1, 9, true}, step(East, 0, 9))

	assert.Equal(t, result{}, step(South, 4, 9))
	assert.Equal(t, result{0, 9, true}, step(South, 0, 8))
	assert.Equal(t, result{2, 1, true}, step(South, 2, 0))

	assert.Equal(t, result{}, step(West, 0, 6))
	assert.Equal(t, result{0, 1, true}, step(West, 1, 1))
	assert.Equal(t, result{3, 9, true}, step(West, 4, 9))
}

func TestFacingRotateInt(t *testing.T) {
	for _, f := range []Facing{North, East, South, West} {
		x, y := f.RotateInt(0, 0)
		assert.Equal(t, [2]int{0, 0}, [2]int{x, y})
	}
	rot := func(f Facing) [2]int {
		x, y := f.RotateInt(2, 1)
		return [2]int{x, y}
	}
	assert.Equal(t, [2]int{2, 1}, rot(North))
	assert.Equal(t, [2]int{-1, 2}, rot(East))
	assert.Equal(t, [2]int{-2, -1}, rot(South))
	assert.Equal(t, [2]int{1, -2}, rot(West))
}

func TestFacingRotateFloat(t *testing.T) {
	for _, tc := range []struct {
		f            Facing
		x, y         float32
		wantX, wantY float32
	}{
		{North, 0.7, 0.6, 0.7, 0.6},
		{East, 0.7, 0.6, 0.4, 0.7},
		{South, 0.7, 0.6, 0.3, 0.4},
		{West, 0.7, 0.6, 0.6, 0.3},
		{North, 2.5, 1.5, 2.5, 1.5},
		{East, 2.5, 1.5, -0.5, 2.5},
		{South, 2.5, 1.5, -1.5, -0.5},
		{West, 2.5, 1.5, 1.5, -1.5},
	} {
		x, y := tc.f.RotateFloat(tc.x, tc.y)
		assert.InDelta(t, tc.wantX, x, 1e-6, "%v x", tc.f)
		assert.InDelta(t, tc.wantY, y, 1e-6, "%v y", tc.f)
	}
}

func TestParseFacing(t *testing.T) {
	f, err := ParseFacing("South")
	assert.NoError(t, err)
	assert.Equal(t, South, f)
	_, err = ParseFacing("up")
	assert.Error(t, err)
}
