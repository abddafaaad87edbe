package utils

import (
	"math"
	"testing"
)

func TestClamp01(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"below", -0.5, 0},
		{"inside", 0.25, 0.25},
		{"above", 3, 1},
		{"nan", math.NaN(), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp01(c.in); got != c.want {
				t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestSmoothStepEndpoints(t *testing.T) {
	if SmoothStep(0) != 0 || SmoothStep(1) != 1 {
		t.Fatalf("smoothstep endpoints: got %v, %v", SmoothStep(0), SmoothStep(1))
	}
	if got := SmoothStep(0.5); got != 0.5 {
		t.Fatalf("smoothstep midpoint: got %v", got)
	}
	// derivative near the edges must vanish
	const h = 1e-6
	if d := (SmoothStep(h) - SmoothStep(0)) / h; d > 1e-4 {
		t.Fatalf("smoothstep slope at 0 too steep: %v", d)
	}
	if d := (SmoothStep(1) - SmoothStep(1-h)) / h; d > 1e-4 {
		t.Fatalf("smoothstep slope at 1 too steep: %v", d)
	}
}

func TestInverseLerpEmptyRange(t *testing.T) {
	if got := InverseLerp(2, 2, 5); got != 0 {
		t.Fatalf("expected 0 for empty range, got %v", got)
	}
	if got := InverseLerp(0, 4, 1); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

func TestLerpClamped(t *testing.T) {
	if got := LerpClamped(1, 3, 5); got != 3 {
		t.Fatalf("expected clamped result 3, got %v", got)
	}
	if got := Lerp(1, 3, 2); got != 5 {
		t.Fatalf("expected unclamped result 5, got %v", got)
	}
}
