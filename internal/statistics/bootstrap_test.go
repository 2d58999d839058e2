package statistics

import (
	"math"
	"testing"
)

func TestBootstrap_Degenerate(t *testing.T) {
	for _, values := range [][]float64{nil, {0.4}} {
		iv := Bootstrap(values, 0.95, 1)
		if iv.Lower != iv.Mean || iv.Upper != iv.Mean {
			t.Errorf("Bootstrap(%v) = %+v, want degenerate interval", values, iv)
		}
	}
}

func TestBootstrap_IdenticalValues(t *testing.T) {
	iv := Bootstrap([]float64{-1.5, -1.5, -1.5, -1.5}, 0.95, 42)
	if math.Abs(iv.Lower+1.5) > 1e-9 || math.Abs(iv.Upper+1.5) > 1e-9 {
		t.Errorf("expected [-1.5, -1.5], got [%f, %f]", iv.Lower, iv.Upper)
	}
}

func TestBootstrap_ContainsMean(t *testing.T) {
	values := []float64{-2.1, -1.9, -2.3, -2.0, -1.8, -2.2}
	iv := Bootstrap(values, 0.95, 7)
	if iv.Lower > iv.Mean || iv.Upper < iv.Mean {
		t.Errorf("interval [%f, %f] should contain mean %f", iv.Lower, iv.Upper, iv.Mean)
	}
	if iv.Lower >= iv.Upper {
		t.Errorf("interval [%f, %f] should have positive width", iv.Lower, iv.Upper)
	}
}

func TestBootstrap_Deterministic(t *testing.T) {
	values := []float64{0.1, 0.4, 0.2, 0.9, 0.5}
	a := Bootstrap(values, 0.95, 11)
	b := Bootstrap(values, 0.95, 11)
	if a != b {
		t.Errorf("same seed produced %+v and %+v", a, b)
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"multiple", []float64{1, 2, 3, 4, 5}, 3},
		{"negative", []float64{-2, 0, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.input); math.Abs(got-tt.expect) > 1e-12 {
				t.Errorf("Mean(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}
