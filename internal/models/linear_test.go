package models

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/bayesbench/bayesbench/internal/predict"
)

// line builds noiseless training data on y = 2x + 1.
func line(n int) (*mat.Dense, *mat.Dense) {
	x := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		v := float64(i) / float64(n)
		x.Set(i, 0, v)
		y.Set(i, 0, 2*v+1)
	}
	return x, y
}

func TestLinear_RecoversLine(t *testing.T) {
	x, y := line(50)
	m := NewLinear()
	if err := m.Fit(x, y); err != nil {
		t.Fatal(err)
	}

	xTest := mat.NewDense(3, 1, []float64{0.1, 0.5, 0.9})
	pred, err := m.Predict(xTest)
	if err != nil {
		t.Fatal(err)
	}
	point, ok := pred.(*predict.Point)
	if !ok {
		t.Fatalf("Predict returned %T, want *predict.Point", pred)
	}
	if err := pred.Validate(); err != nil {
		t.Fatal(err)
	}

	for i, xv := range []float64{0.1, 0.5, 0.9} {
		want := 2*xv + 1
		if got := point.Mean.At(i, 0); math.Abs(got-want) > 0.05 {
			t.Errorf("mean at x=%g: got %g, want %g", xv, got, want)
		}
		if v := point.Variance.At(i, 0); v <= 0 {
			t.Errorf("variance at x=%g: got %g, want > 0", xv, v)
		}
	}
}

func TestLinear_VarianceGrowsAwayFromData(t *testing.T) {
	x, y := line(30)
	m := NewLinear()
	if err := m.Fit(x, y); err != nil {
		t.Fatal(err)
	}

	pred, err := m.Predict(mat.NewDense(2, 1, []float64{0.5, 10}))
	if err != nil {
		t.Fatal(err)
	}
	point := pred.(*predict.Point)
	if inside, outside := point.Variance.At(0, 0), point.Variance.At(1, 0); outside <= inside {
		t.Errorf("variance at x=10 (%g) should exceed variance at x=0.5 (%g)", outside, inside)
	}
}

func TestLinear_PredictBeforeFit(t *testing.T) {
	if _, err := NewLinear().Predict(mat.NewDense(1, 1, []float64{0})); err == nil {
		t.Error("expected error for predict before fit")
	}
}

func TestLinear_RowMismatch(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(2, 1, []float64{1, 2})
	if err := NewLinear().Fit(x, y); err == nil {
		t.Error("expected error for mismatched rows")
	}
}

func TestBaggedLinear_ProducesEnsemble(t *testing.T) {
	x, y := line(40)
	m := NewBaggedLinear(7, 42)
	if err := m.Fit(x, y); err != nil {
		t.Fatal(err)
	}

	pred, err := m.Predict(mat.NewDense(2, 1, []float64{0.2, 0.8}))
	if err != nil {
		t.Fatal(err)
	}
	ens, ok := pred.(*predict.Ensemble)
	if !ok {
		t.Fatalf("Predict returned %T, want *predict.Ensemble", pred)
	}
	if err := ens.Validate(); err != nil {
		t.Fatal(err)
	}
	if ens.NumComponents() != 7 {
		t.Errorf("NumComponents() = %d, want 7", ens.NumComponents())
	}

	est := ens.PointEstimate()
	if got, want := est.At(0, 0), 2*0.2+1; math.Abs(got-want) > 0.1 {
		t.Errorf("ensemble point estimate at x=0.2: got %g, want ~%g", got, want)
	}
}

func TestBaggedLinear_SeedDeterminism(t *testing.T) {
	x, y := line(40)
	xTest := mat.NewDense(1, 1, []float64{0.5})

	run := func(seed int64) float64 {
		m := NewBaggedLinear(5, seed)
		if err := m.Fit(x, y); err != nil {
			t.Fatal(err)
		}
		pred, err := m.Predict(xTest)
		if err != nil {
			t.Fatal(err)
		}
		return pred.PointEstimate().At(0, 0)
	}

	if run(1) != run(1) {
		t.Error("same seed produced different predictions")
	}
}

func TestGet(t *testing.T) {
	for _, name := range Names() {
		m, err := Get(name, 0)
		if err != nil {
			t.Errorf("Get(%q) error: %v", name, err)
			continue
		}
		if m.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, m.Name())
		}
	}
	if _, err := Get("deep_gp", 0); err == nil {
		t.Error("expected error for unknown model")
	}
}
