// Package predict defines the predictive-distribution types produced by
// regression models: a single Gaussian per test element, or an equal-weight
// mixture of S Gaussians approximated by samples.
package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Prediction is a per-element Gaussian (or Gaussian-mixture) predictive
// distribution over an [N, D] grid of test targets. Components are
// equal-weight; a point prediction is the single-component case.
type Prediction interface {
	// Dims returns the test grid size (rows N, output dims D).
	Dims() (n, d int)

	// NumComponents returns the number of mixture components S (1 for a
	// point prediction).
	NumComponents() int

	// Component returns the mean and variance matrices of component s.
	// Both are [N, D]. The returned matrices are not copies.
	Component(s int) (mean, variance *mat.Dense)

	// PointEstimate returns the average of the component means, the
	// mixture's point prediction. [N, D].
	PointEstimate() *mat.Dense

	// Validate checks the shape and variance invariants. Callers must not
	// compute metrics from a prediction that fails validation.
	Validate() error
}

// Point is a single Gaussian per test element.
type Point struct {
	Mean     *mat.Dense
	Variance *mat.Dense
}

func (p *Point) Dims() (int, int) {
	return p.Mean.Dims()
}

func (p *Point) NumComponents() int { return 1 }

func (p *Point) Component(s int) (*mat.Dense, *mat.Dense) {
	if s != 0 {
		panic(fmt.Sprintf("predict: component %d out of range for point prediction", s))
	}
	return p.Mean, p.Variance
}

func (p *Point) PointEstimate() *mat.Dense {
	return p.Mean
}

func (p *Point) Validate() error {
	if p.Mean == nil || p.Variance == nil {
		return fmt.Errorf("predict: point prediction has nil mean or variance")
	}
	return checkPair(p.Mean, p.Variance, 0)
}

// Ensemble is S independent Gaussians per test element, an equal-weight
// S-component mixture approximating the predictive distribution.
type Ensemble struct {
	Means     []*mat.Dense
	Variances []*mat.Dense
}

func (e *Ensemble) Dims() (int, int) {
	return e.Means[0].Dims()
}

func (e *Ensemble) NumComponents() int { return len(e.Means) }

func (e *Ensemble) Component(s int) (*mat.Dense, *mat.Dense) {
	return e.Means[s], e.Variances[s]
}

func (e *Ensemble) PointEstimate() *mat.Dense {
	n, d := e.Dims()
	avg := mat.NewDense(n, d, nil)
	for _, m := range e.Means {
		avg.Add(avg, m)
	}
	avg.Scale(1/float64(len(e.Means)), avg)
	return avg
}

func (e *Ensemble) Validate() error {
	if len(e.Means) == 0 {
		return fmt.Errorf("predict: ensemble has no components")
	}
	if len(e.Means) != len(e.Variances) {
		return fmt.Errorf("predict: ensemble has %d mean components but %d variance components",
			len(e.Means), len(e.Variances))
	}
	n0, d0 := e.Means[0].Dims()
	for s := range e.Means {
		if err := checkPair(e.Means[s], e.Variances[s], s); err != nil {
			return err
		}
		if n, d := e.Means[s].Dims(); n != n0 || d != d0 {
			return fmt.Errorf("predict: component %d is %dx%d, component 0 is %dx%d",
				s, n, d, n0, d0)
		}
	}
	return nil
}

func checkPair(mean, variance *mat.Dense, s int) error {
	mn, md := mean.Dims()
	vn, vd := variance.Dims()
	if mn != vn || md != vd {
		return fmt.Errorf("predict: component %d mean is %dx%d, variance is %dx%d",
			s, mn, md, vn, vd)
	}
	for i := 0; i < vn; i++ {
		for j := 0; j < vd; j++ {
			if v := variance.At(i, j); v < 0 {
				return fmt.Errorf("predict: component %d has negative variance %g at (%d, %d)",
					s, v, i, j)
			}
		}
	}
	return nil
}
