package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bayesbench/bayesbench/internal/benchmark"
	"github.com/bayesbench/bayesbench/internal/dataset"
	"github.com/bayesbench/bayesbench/internal/metrics"
	"github.com/bayesbench/bayesbench/internal/models"
	"github.com/bayesbench/bayesbench/internal/store"
)

var (
	runModel    string
	runDataset  string
	runSplit    int
	runSeed     int
	runDatabase string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one regression benchmark",
		Long: `Run one regression benchmark: fit the model on the dataset's train
split, evaluate its predictions on the held-out split, and print the metrics.
With --database, the metrics are also persisted together with the run's
configuration.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runModel, "model", "linear", "Model to evaluate (one of: "+strings.Join(models.Names(), ", ")+")")
	cmd.Flags().StringVar(&runDataset, "dataset", "", "Path to the dataset CSV (last column is the target)")
	cmd.Flags().IntVar(&runSplit, "split", 0, "Train/test split index")
	cmd.Flags().IntVar(&runSeed, "seed", 0, "Random seed")
	cmd.Flags().StringVar(&runDatabase, "database", "", "SQLite results database (omit to skip persistence)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	data, err := dataset.Load(datasetName(runDataset), runDataset, runSplit, runSeed)
	if err != nil {
		return err
	}

	model, err := models.Get(runModel, int64(runSeed))
	if err != nil {
		return err
	}

	var st *store.Store
	if runDatabase != "" {
		st, err = store.Open(runDatabase)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
	}

	cfg := benchmark.RunConfig{
		Model:   runModel,
		Dataset: data.Name,
		Split:   runSplit,
		Seed:    runSeed,
	}

	fmt.Printf("Model:   %s\n", runModel)
	fmt.Printf("Dataset: %s (split %d, seed %d)\n\n", data.Name, runSplit, runSeed)

	res, err := benchmark.Run(ctx, cfg, data, model, st)
	if err != nil {
		return err
	}

	printMetrics(res)

	if st != nil {
		fmt.Printf("\nResults saved to: %s\n", runDatabase)
	}
	return nil
}

func printMetrics(res metrics.Result) {
	for _, key := range metrics.Keys {
		fmt.Printf("%-26s %12.6f\n", key, res[key])
	}
}

// datasetName derives a dataset identifier from its CSV path.
func datasetName(path string) string {
	name := path
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".csv")
}
