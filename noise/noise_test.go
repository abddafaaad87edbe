package noise

import (
	"math"
	"testing"
)

func TestSimplexRangeAndDeterminism(t *testing.T) {
	a := NewSimplex(42)
	b := NewSimplex(42)
	for i := 0; i < 500; i++ {
		x := float64(i) * 0.137
		y := float64(i) * 0.071
		va, vb := a.Sample(x, y), b.Sample(x, y)
		if va != vb {
			t.Fatalf("same seed diverged at %d: %v != %v", i, va, vb)
		}
		if va < 0 || va > 1 || math.IsNaN(va) {
			t.Fatalf("sample %d out of [0,1]: %v", i, va)
		}
	}
}

func TestSimplexIsContinuous(t *testing.T) {
	field := NewSimplex(7)
	prev := field.Sample(0, 0)
	for i := 1; i <= 1000; i++ {
		x := float64(i) * 0.001
		v := field.Sample(x, 0)
		if math.Abs(v-prev) > 0.05 {
			t.Fatalf("jump of %v between consecutive samples at x=%v", math.Abs(v-prev), x)
		}
		prev = v
	}
}

func TestSigned(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, -1},
		{0.5, 0},
		{1, 1},
	}
	for _, c := range cases {
		if got := Signed(Constant(c.in), 3, 4); got != c.want {
			t.Fatalf("Signed(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFuncAdapter(t *testing.T) {
	field := Func(func(x, y float64) float64 { return x + y })
	if got := field.Sample(0.25, 0.5); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}
