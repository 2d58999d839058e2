// Package dataset loads regression datasets from CSV files and produces
// normalized train/test splits. The last CSV column is the regression
// target; all other columns are features.
package dataset

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// testFraction is the share of rows held out for testing.
const testFraction = 0.1

// Split is one normalized train/test partition of a dataset. Features and
// targets are zero-mean unit-variance under the training statistics; YStd
// holds the per-dimension target standard deviations that were divided out,
// so metrics can be reported on the original scale.
type Split struct {
	Name   string
	XTrain *mat.Dense
	YTrain *mat.Dense
	XTest  *mat.Dense
	YTest  *mat.Dense
	YStd   []float64
}

// Load reads the CSV at path and returns the normalized split identified by
// (split, seed). The same (path, split, seed) triple always yields the same
// partition.
func Load(name, path string, split, seed int) (*Split, error) {
	table, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return fromTable(name, table, split, seed)
}

func fromTable(name string, table *Table, split, seed int) (*Split, error) {
	n := len(table.Rows)
	d := 0
	if n > 0 {
		d = len(table.Rows[0]) - 1
	}
	if n < 2 || d < 1 {
		return nil, fmt.Errorf("dataset: %s needs at least 2 rows and 2 columns, got %dx%d", name, n, d+1)
	}

	nTest := int(float64(n) * testFraction)
	if nTest < 1 {
		nTest = 1
	}
	nTrain := n - nTest
	if nTrain < 2 {
		return nil, fmt.Errorf("dataset: %s has too few rows (%d) for a %g test fraction", name, n, testFraction)
	}

	// The split index and seed jointly pick the permutation, so split k of
	// seed s is reproducible across runs.
	rng := rand.New(rand.NewSource(int64(seed)*1_000_003 + int64(split)))
	perm := rng.Perm(n)

	xTrain := mat.NewDense(nTrain, d, nil)
	yTrain := mat.NewDense(nTrain, 1, nil)
	xTest := mat.NewDense(nTest, d, nil)
	yTest := mat.NewDense(nTest, 1, nil)

	for i, idx := range perm {
		row := table.Rows[idx]
		if i < nTrain {
			xTrain.SetRow(i, row[:d])
			yTrain.Set(i, 0, row[d])
		} else {
			xTest.SetRow(i-nTrain, row[:d])
			yTest.Set(i-nTrain, 0, row[d])
		}
	}

	s := &Split{
		Name:   name,
		XTrain: xTrain,
		YTrain: yTrain,
		XTest:  xTest,
		YTest:  yTest,
	}
	s.normalize()
	return s, nil
}

// normalize shifts and scales each column to zero mean and unit variance
// under the training statistics, applying the same transform to the test
// portion. Columns with zero spread are left unscaled.
func (s *Split) normalize() {
	normalizeColumns(s.XTrain, s.XTest)
	s.YStd = normalizeColumns(s.YTrain, s.YTest)
}

func normalizeColumns(train, test *mat.Dense) []float64 {
	nTrain, d := train.Dims()
	nTest, _ := test.Dims()

	stds := make([]float64, d)
	col := make([]float64, nTrain)
	for j := 0; j < d; j++ {
		mat.Col(col, j, train)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		stds[j] = std
		for i := 0; i < nTrain; i++ {
			train.Set(i, j, (train.At(i, j)-mean)/std)
		}
		for i := 0; i < nTest; i++ {
			test.Set(i, j, (test.At(i, j)-mean)/std)
		}
	}
	return stds
}
