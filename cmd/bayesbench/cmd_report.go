package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bayesbench/bayesbench/internal/metrics"
	"github.com/bayesbench/bayesbench/internal/store"
)

var (
	reportDatabase string
	reportTable    string
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print stored benchmark results",
		Args:  cobra.NoArgs,
		RunE:  reportCommandE,
	}

	cmd.Flags().StringVar(&reportDatabase, "database", "", "SQLite results database")
	cmd.Flags().StringVar(&reportTable, "table", store.DefaultTable, "Results table to read")
	_ = cmd.MarkFlagRequired("database")

	return cmd
}

func reportCommandE(cmd *cobra.Command, args []string) error {
	st, err := store.Open(reportDatabase)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	recs, err := st.Runs(context.Background(), reportTable)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-20s %-16s %5s %5s  %12s %12s %12s\n",
		"Dataset", "Model", "Split", "Seed", "loglik", "mae", "rmse")
	for _, rec := range recs {
		fmt.Printf("%-20s %-16s %5d %5d  %12.6f %12.6f %12.6f\n",
			rec.Dataset, rec.Model, rec.Split, rec.Seed,
			rec.Metrics[metrics.TestLogLik],
			rec.Metrics[metrics.TestMAE],
			rec.Metrics[metrics.TestRMSE])
	}
	return nil
}
