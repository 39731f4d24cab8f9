package core

import (
	"math"
	"testing"
)

func TestPointClampTo(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		size     int
		expected Point
	}{
		{"inside", Point{X: 3, Y: 4}, 10, Point{X: 3, Y: 4}},
		{"left of grid", Point{X: -1, Y: 4}, 10, Point{X: 0, Y: 4}},
		{"right of grid", Point{X: 10, Y: 4}, 10, Point{X: 9, Y: 4}},
		{"below grid", Point{X: 3, Y: -1}, 10, Point{X: 3, Y: 0}},
		{"above grid", Point{X: 3, Y: 12}, 10, Point{X: 3, Y: 9}},
		{"both axes", Point{X: -4, Y: 40}, 10, Point{X: 0, Y: 9}},
		{"single cell grid", Point{X: 1, Y: -1}, 1, Point{X: 0, Y: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.p.ClampTo(tc.size)
			if result != tc.expected {
				t.Errorf("ClampTo(%d) = %v, expected %v", tc.size, result, tc.expected)
			}
			if !result.In(tc.size) {
				t.Errorf("clamped point %v not inside %dx%d grid", result, tc.size, tc.size)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	a := Point{X: 2, Y: 5}
	b := Point{X: -1, Y: 3}

	if got := a.Add(b); got != (Point{X: 1, Y: 8}) {
		t.Errorf("Add() = %v, expected (1, 8)", got)
	}
	if got := a.Sub(b); got != (Point{X: 3, Y: 2}) {
		t.Errorf("Sub() = %v, expected (3, 2)", got)
	}
	if got := a.Manhattan(b); got != 5 {
		t.Errorf("Manhattan() = %d, expected 5", got)
	}
	if got := (Point{X: 3, Y: 4}).Norm(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Norm() = %f, expected 5", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
