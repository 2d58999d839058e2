package benchmark

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bayesbench/bayesbench/internal/dataset"
	"github.com/bayesbench/bayesbench/internal/metrics"
	"github.com/bayesbench/bayesbench/internal/models"
	"github.com/bayesbench/bayesbench/internal/store"
)

// DatasetSpec names a CSV dataset in a suite file.
type DatasetSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Suite is a YAML-defined benchmark grid: every model is evaluated on every
// dataset over the given number of splits.
type Suite struct {
	Name     string        `yaml:"name"`
	Datasets []DatasetSpec `yaml:"datasets"`
	Models   []string      `yaml:"models"`
	Splits   int           `yaml:"splits"`
	Seed     int           `yaml:"seed"`
	Database string        `yaml:"database,omitempty"`
	Table    string        `yaml:"table,omitempty"`
}

// LoadSuite loads and validates a suite spec from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("suite: read %s: %w", path, err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("suite: parse %s: %w", path, err)
	}
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	return &suite, nil
}

// Validate checks that the suite is runnable.
func (s *Suite) Validate() error {
	if len(s.Datasets) == 0 {
		return fmt.Errorf("suite: no datasets defined")
	}
	for i, d := range s.Datasets {
		if d.Name == "" || d.Path == "" {
			return fmt.Errorf("suite: dataset %d needs both name and path", i)
		}
	}
	if len(s.Models) == 0 {
		return fmt.Errorf("suite: no models defined")
	}
	if s.Splits < 1 {
		return fmt.Errorf("suite: splits must be at least 1, got %d", s.Splits)
	}
	return nil
}

// Runs expands the suite into the run grid: datasets x models x splits.
func (s *Suite) Runs() []RunConfig {
	var cfgs []RunConfig
	for _, d := range s.Datasets {
		for _, m := range s.Models {
			for split := 0; split < s.Splits; split++ {
				cfgs = append(cfgs, RunConfig{
					Model:   m,
					Dataset: d.Name,
					Split:   split,
					Seed:    s.Seed,
					Table:   s.Table,
				})
			}
		}
	}
	return cfgs
}

// SuiteRun pairs a run's configuration with its metrics.
type SuiteRun struct {
	Config  RunConfig
	Metrics metrics.Result
}

// RunAll executes the full grid sequentially and returns the per-run
// results. st may be nil to skip persistence.
func (s *Suite) RunAll(ctx context.Context, st *store.Store) ([]SuiteRun, error) {
	paths := make(map[string]string, len(s.Datasets))
	for _, d := range s.Datasets {
		paths[d.Name] = d.Path
	}

	var runs []SuiteRun
	for _, cfg := range s.Runs() {
		data, err := dataset.Load(cfg.Dataset, paths[cfg.Dataset], cfg.Split, cfg.Seed)
		if err != nil {
			return runs, err
		}
		model, err := models.Get(cfg.Model, int64(cfg.Seed))
		if err != nil {
			return runs, err
		}
		res, err := Run(ctx, cfg, data, model, st)
		if err != nil {
			return runs, err
		}
		runs = append(runs, SuiteRun{Config: cfg, Metrics: res})
	}
	return runs, nil
}
