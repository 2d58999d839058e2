// Package benchmark orchestrates a regression benchmark run: fit a model on
// a dataset split, predict on the held-out portion, compute the test
// metrics, and optionally persist the result.
package benchmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bayesbench/bayesbench/internal/dataset"
	"github.com/bayesbench/bayesbench/internal/metrics"
	"github.com/bayesbench/bayesbench/internal/models"
	"github.com/bayesbench/bayesbench/internal/store"
)

// RunConfig identifies one benchmark run. Its fields are merged into the
// persisted record as provenance.
type RunConfig struct {
	Model   string
	Dataset string
	Split   int
	Seed    int
	Table   string
}

// Run fits the model on the split's training data, evaluates its
// predictions on the test data, and returns the six metrics. When st is
// non-nil the metrics are persisted, merged with the run's configuration;
// the evaluation itself never touches the store.
func Run(ctx context.Context, cfg RunConfig, data *dataset.Split, model models.Model, st *store.Store) (metrics.Result, error) {
	slog.Debug("fitting model", "model", model.Name(), "dataset", cfg.Dataset, "split", cfg.Split)
	if err := model.Fit(data.XTrain, data.YTrain); err != nil {
		return nil, fmt.Errorf("benchmark: fitting %s on %s: %w", model.Name(), cfg.Dataset, err)
	}

	pred, err := model.Predict(data.XTest)
	if err != nil {
		return nil, fmt.Errorf("benchmark: predicting with %s on %s: %w", model.Name(), cfg.Dataset, err)
	}

	res, err := metrics.Evaluate(pred, data.YTest, data.YStd)
	if err != nil {
		return nil, fmt.Errorf("benchmark: evaluating %s on %s: %w", model.Name(), cfg.Dataset, err)
	}
	slog.Debug("evaluated", "model", model.Name(), "dataset", cfg.Dataset,
		"test_loglik", res[metrics.TestLogLik], "test_rmse", res[metrics.TestRMSE])

	if st != nil {
		table := cfg.Table
		if table == "" {
			table = store.DefaultTable
		}
		rec := store.Record{
			Model:   cfg.Model,
			Dataset: cfg.Dataset,
			Split:   cfg.Split,
			Seed:    cfg.Seed,
			Metrics: res,
		}
		if err := st.Write(ctx, table, rec); err != nil {
			return nil, err
		}
	}

	return res, nil
}
