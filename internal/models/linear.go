package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bayesbench/bayesbench/internal/predict"
)

const (
	// priorPrecision is the Gaussian weight prior's precision (ridge term),
	// keeping the normal equations well conditioned.
	priorPrecision = 1e-2

	// noiseFloor keeps the predictive variance positive even on a perfect
	// in-sample fit.
	noiseFloor = 1e-6
)

// Linear is Bayesian linear regression with a conjugate Gaussian prior on
// the weights. Its predictive variance is the estimated observation noise
// plus the parameter-uncertainty term, so confidence degrades away from the
// training inputs.
type Linear struct {
	weights *mat.Dense // (d+1) x q, first row is the intercept
	chol    mat.Cholesky
	noise   []float64 // per-output residual variance
}

// NewLinear returns an unfitted linear model.
func NewLinear() *Linear { return &Linear{} }

func (l *Linear) Name() string { return "linear" }

// Fit solves the ridge-regularized normal equations for the weight
// posterior mean and estimates per-output observation noise from the
// training residuals.
func (l *Linear) Fit(x, y *mat.Dense) error {
	n, d := x.Dims()
	yn, q := y.Dims()
	if yn != n {
		return fmt.Errorf("models: x has %d rows, y has %d", n, yn)
	}
	if n == 0 {
		return fmt.Errorf("models: cannot fit on empty data")
	}

	phi := designMatrix(x)
	p := d + 1

	// A = alpha*I + phi^T phi
	var gram mat.Dense
	gram.Mul(phi.T(), phi)
	a := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := gram.At(i, j)
			if i == j {
				v += priorPrecision
			}
			a.SetSym(i, j, v)
		}
	}
	if ok := l.chol.Factorize(a); !ok {
		return fmt.Errorf("models: normal equations are not positive definite")
	}

	var b mat.Dense
	b.Mul(phi.T(), y)
	l.weights = mat.NewDense(p, q, nil)
	if err := l.chol.SolveTo(l.weights, &b); err != nil {
		return fmt.Errorf("models: solving normal equations: %w", err)
	}

	// Residual variance per output dimension.
	var fitted mat.Dense
	fitted.Mul(phi, l.weights)
	l.noise = make([]float64, q)
	for j := 0; j < q; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			r := y.At(i, j) - fitted.At(i, j)
			sum += r * r
		}
		l.noise[j] = sum/float64(n) + noiseFloor
	}

	return nil
}

// Predict returns a point prediction: the posterior predictive mean and
// variance of each test element.
func (l *Linear) Predict(x *mat.Dense) (predict.Prediction, error) {
	if l.weights == nil {
		return nil, fmt.Errorf("models: predict called before fit")
	}
	n, _ := x.Dims()
	_, q := l.weights.Dims()

	phi := designMatrix(x)

	var mean mat.Dense
	mean.Mul(phi, l.weights)

	// Parameter uncertainty: u_i = phi_i^T A^{-1} phi_i, shared across
	// output dimensions.
	_, p := phi.Dims()
	var z mat.Dense
	if err := l.chol.SolveTo(&z, phi.T()); err != nil {
		return nil, fmt.Errorf("models: predictive variance solve: %w", err)
	}

	variance := mat.NewDense(n, q, nil)
	for i := 0; i < n; i++ {
		u := 0.0
		for k := 0; k < p; k++ {
			u += phi.At(i, k) * z.At(k, i)
		}
		for j := 0; j < q; j++ {
			variance.Set(i, j, l.noise[j]*(1+u))
		}
	}

	var meanCopy mat.Dense
	meanCopy.CloneFrom(&mean)
	return &predict.Point{Mean: &meanCopy, Variance: variance}, nil
}

// designMatrix prepends an intercept column of ones to x.
func designMatrix(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	phi := mat.NewDense(n, d+1, nil)
	for i := 0; i < n; i++ {
		phi.Set(i, 0, 1)
		for j := 0; j < d; j++ {
			phi.Set(i, j+1, x.At(i, j))
		}
	}
	return phi
}
