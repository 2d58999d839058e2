// Package models provides the regression model interface and the built-in
// baseline models benchmarks can run against.
package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bayesbench/bayesbench/internal/predict"
)

// Model is a probabilistic regression model: fit on training data, then
// predict a Gaussian (or Gaussian-mixture) distribution per test element.
type Model interface {
	Name() string
	Fit(x, y *mat.Dense) error
	Predict(x *mat.Dense) (predict.Prediction, error)
}

// Get returns the model registered under name, seeded for reproducibility
// where the model is stochastic.
func Get(name string, seed int64) (Model, error) {
	switch name {
	case "linear":
		return NewLinear(), nil
	case "bagged_linear":
		return NewBaggedLinear(defaultBagSize, seed), nil
	}
	return nil, fmt.Errorf("models: unknown model %q (available: %v)", name, Names())
}

// Names lists the registered model names.
func Names() []string {
	return []string{"linear", "bagged_linear"}
}
