// Package metrics computes predictive-accuracy metrics for probabilistic
// regression models: Gaussian (or Gaussian-mixture) test log-likelihood,
// MAE, and RMSE, each on the normalized scale seen by the model and on the
// original data scale.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bayesbench/bayesbench/internal/predict"
)

// Fixed metric keys. Every call to Evaluate produces exactly these six.
const (
	TestLogLik             = "test_loglik"
	TestLogLikUnnormalized = "test_loglik_unnormalized"
	TestMAE                = "test_mae"
	TestMAEUnnormalized    = "test_mae_unnormalized"
	TestRMSE               = "test_rmse"
	TestRMSEUnnormalized   = "test_rmse_unnormalized"
)

// Keys lists the six metric names in reporting order.
var Keys = []string{
	TestLogLik,
	TestLogLikUnnormalized,
	TestMAE,
	TestMAEUnnormalized,
	TestRMSE,
	TestRMSEUnnormalized,
}

// Per-element log-densities are clamped into [logEps, logOneMinusEps] before
// averaging, so a single near-zero-density outlier (or a near-certain exact
// hit) cannot drag the mean to ±Inf.
var (
	logEps         = math.Log(1e-12)
	logOneMinusEps = math.Log1p(-1e-12)
)

// Result maps metric names to scalar values.
type Result map[string]float64

// Evaluate computes the six test metrics for a prediction against the
// normalized test targets yTest [N, D]. yStd is the per-dimension standard
// deviation divided out of the targets during preprocessing (a single
// element is broadcast across all D dimensions); it is used to recompute
// the metrics on the original data scale.
//
// Precondition violations (invalid prediction shapes, negative variances,
// mismatched target dims, non-positive yStd) are returned as errors before
// any metric is computed.
func Evaluate(p predict.Prediction, yTest *mat.Dense, yStd []float64) (Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n, d := p.Dims()
	if yn, yd := yTest.Dims(); yn != n || yd != d {
		return nil, fmt.Errorf("metrics: prediction is %dx%d but targets are %dx%d", n, d, yn, yd)
	}
	if len(yStd) != 1 && len(yStd) != d {
		return nil, fmt.Errorf("metrics: yStd has %d elements, want 1 or %d", len(yStd), d)
	}
	for _, s := range yStd {
		if s <= 0 {
			return nil, fmt.Errorf("metrics: yStd must be positive, got %g", s)
		}
	}

	std := func(j int) float64 {
		if len(yStd) == 1 {
			return yStd[0]
		}
		return yStd[j]
	}

	res := Result{
		TestLogLik:             meanLogDensity(p, yTest, nil),
		TestLogLikUnnormalized: meanLogDensity(p, yTest, std),
	}

	// Residuals use the mixture's point estimate (the plain average of the
	// component means, not a log-space average).
	est := p.PointEstimate()
	var sumAbs, sumAbsU, sumSq, sumSqU float64
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			r := yTest.At(i, j) - est.At(i, j)
			ru := r * std(j)
			sumAbs += math.Abs(r)
			sumAbsU += math.Abs(ru)
			sumSq += r * r
			sumSqU += ru * ru
		}
	}
	count := float64(n * d)
	res[TestMAE] = sumAbs / count
	res[TestMAEUnnormalized] = sumAbsU / count
	res[TestRMSE] = math.Sqrt(sumSq / count)
	res[TestRMSEUnnormalized] = math.Sqrt(sumSqU / count)

	return res, nil
}

// meanLogDensity averages the clipped per-element predictive log-density of
// yTest over the [N, D] grid. scale, when non-nil, gives the per-dimension
// factor applied to targets, means, and standard deviations (the original
// data scale); nil evaluates on the normalized scale.
//
// For an ensemble, each component's log-density is clipped first and the
// components are then combined with a log-sum-exp over the component axis
// minus ln(S): the mixture density log((1/S)·Σ pₛ(y)) computed in log space.
func meanLogDensity(p predict.Prediction, yTest *mat.Dense, scale func(j int) float64) float64 {
	n, d := p.Dims()
	s := p.NumComponents()
	logS := math.Log(float64(s))

	comp := make([]float64, s)
	total := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			f := 1.0
			if scale != nil {
				f = scale(j)
			}
			y := yTest.At(i, j) * f
			for k := 0; k < s; k++ {
				mean, variance := p.Component(k)
				comp[k] = clip(logDensity(y, mean.At(i, j)*f, variance.At(i, j)*f*f))
			}
			total += floats.LogSumExp(comp) - logS
		}
	}
	return total / float64(n*d)
}

func logDensity(y, mean, variance float64) float64 {
	if variance == 0 {
		// Point mass: infinite density on an exact hit, zero otherwise.
		// Either way the clip bound applies.
		if y == mean {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance)}.LogProb(y)
}

func clip(l float64) float64 {
	if l < logEps {
		return logEps
	}
	if l > logOneMinusEps {
		return logOneMinusEps
	}
	return l
}
