package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bayesbench",
		Short: "bayesbench - benchmarks for probabilistic regression models",
		Long: `bayesbench evaluates probabilistic regression models on held-out data.

It fits a model on a train split, predicts a Gaussian (or Gaussian-mixture)
distribution per test point, and reports test log-likelihood, MAE, and RMSE
in both normalized and original data scales.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newSuiteCommand())
	cmd.AddCommand(newReportCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
