package models

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/bayesbench/bayesbench/internal/predict"
)

// defaultBagSize is the ensemble size used by the registry.
const defaultBagSize = 10

// BaggedLinear is a bootstrap ensemble of linear models. Each member is fit
// on a resample (with replacement) of the training rows; prediction returns
// the members as an equal-weight Gaussian mixture, exercising the
// sample-based metric path.
type BaggedLinear struct {
	size    int
	seed    int64
	members []*Linear
}

// NewBaggedLinear returns an unfitted ensemble of the given size. The seed
// determines the bootstrap resamples.
func NewBaggedLinear(size int, seed int64) *BaggedLinear {
	return &BaggedLinear{size: size, seed: seed}
}

func (b *BaggedLinear) Name() string { return "bagged_linear" }

func (b *BaggedLinear) Fit(x, y *mat.Dense) error {
	if b.size < 1 {
		return fmt.Errorf("models: ensemble size must be at least 1, got %d", b.size)
	}
	n, d := x.Dims()
	_, q := y.Dims()

	rng := rand.New(rand.NewSource(b.seed))
	b.members = make([]*Linear, b.size)

	xs := mat.NewDense(n, d, nil)
	ys := mat.NewDense(n, q, nil)
	for s := 0; s < b.size; s++ {
		for i := 0; i < n; i++ {
			idx := rng.Intn(n)
			xs.SetRow(i, x.RawRowView(idx))
			ys.SetRow(i, y.RawRowView(idx))
		}
		m := NewLinear()
		if err := m.Fit(xs, ys); err != nil {
			return fmt.Errorf("models: fitting ensemble member %d: %w", s, err)
		}
		b.members[s] = m
	}
	return nil
}

func (b *BaggedLinear) Predict(x *mat.Dense) (predict.Prediction, error) {
	if len(b.members) == 0 {
		return nil, fmt.Errorf("models: predict called before fit")
	}

	ens := &predict.Ensemble{
		Means:     make([]*mat.Dense, len(b.members)),
		Variances: make([]*mat.Dense, len(b.members)),
	}
	for s, m := range b.members {
		p, err := m.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("models: ensemble member %d: %w", s, err)
		}
		point := p.(*predict.Point)
		ens.Means[s] = point.Mean
		ens.Variances[s] = point.Variance
	}
	return ens, nil
}
