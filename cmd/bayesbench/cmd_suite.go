package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bayesbench/bayesbench/internal/benchmark"
	"github.com/bayesbench/bayesbench/internal/metrics"
	"github.com/bayesbench/bayesbench/internal/store"
)

func newSuiteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suite <suite.yaml>",
		Short: "Run a benchmark suite",
		Long: `Run a YAML-defined benchmark grid: every model in the suite is
evaluated on every dataset over the configured number of splits, and the
per-metric means are reported with bootstrap confidence intervals.`,
		Args: cobra.ExactArgs(1),
		RunE: suiteCommandE,
	}
}

func suiteCommandE(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	suite, err := benchmark.LoadSuite(args[0])
	if err != nil {
		return err
	}

	var st *store.Store
	if suite.Database != "" {
		st, err = store.Open(suite.Database)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
	}

	fmt.Printf("Running suite: %s\n", suite.Name)
	fmt.Printf("Datasets: %d  Models: %d  Splits: %d\n\n",
		len(suite.Datasets), len(suite.Models), suite.Splits)

	runs, err := suite.RunAll(ctx, st)
	if err != nil {
		return err
	}

	printSuiteSummary(benchmark.Summarize(runs))
	return nil
}

func printSuiteSummary(summaries []benchmark.Summary) {
	fmt.Println("=" + strings.Repeat("=", 70))
	fmt.Println(" SUITE RESULTS")
	fmt.Println("=" + strings.Repeat("=", 70))

	for _, s := range summaries {
		fmt.Printf("\n%s / %s (%d splits)\n", s.Dataset, s.Model, s.Splits)
		for _, key := range metrics.Keys {
			iv := s.Metrics[key]
			fmt.Printf("  %-26s %12.6f  CI95=[%.6f, %.6f]\n", key, iv.Mean, iv.Lower, iv.Upper)
		}
	}
	fmt.Println()
}
