/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cubeof2/jenness-battle-simulator/internal/report"
	"github.com/cubeof2/jenness-battle-simulator/internal/rules"
	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
	"github.com/cubeof2/jenness-battle-simulator/internal/trace"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario_id>",
	Short: "Run a batch of battles for one scenario",
	Long: `Plays --runs seeded battles of the named scenario and prints run length
statistics, histograms and the run length regression for both sides.

The first battle is traced turn by turn at debug level (--log-level DEBUG)
and can be written as JSON lines with --trace.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		out, _ := cmd.Flags().GetString("out")
		tracePath, _ := cmd.Flags().GetString("trace")
		if file == "" {
			file = settings.ScenarioFile
		}
		if out == "" {
			out = settings.ResultsFile
		}

		scenarios, err := scenario.NewLoader(settings.DataDirs).Load(file)
		if err != nil {
			return err
		}
		s, err := scenarios.Find(args[0])
		if err != nil {
			return err
		}

		seed, err := batchSeed()
		if err != nil {
			return err
		}
		runner := &sim.Runner{
			Workers:  settings.Workers,
			Seed:     seed,
			MaxTurns: settings.MaxTurns,
			Logger:   logger,
		}

		if tracePath != "" {
			rec, err := trace.Create(tracePath)
			if err != nil {
				return err
			}
			runner.Trace = rec.Record
			defer func() {
				if err := rec.Close(); err != nil {
					logger.Error().Err(err).Msg("failed to write trace")
				}
			}()
		}

		runs := intFlagOr(cmd, "runs", settings.Runs)
		logger.Info().Str("scenario", s.ID).Int("runs", runs).Uint64("seed", seed).Msg("starting simulations")
		batch, err := runner.Run(cmd.Context(), s, runs)
		if err != nil {
			return err
		}

		lines := report.ScenarioLines(batch)
		if s.Expect != "" {
			registry, err := rules.NewRegistry()
			if err != nil {
				return err
			}
			status, err := registry.Expect(s.Expect, rules.MetricsFromBatch(batch))
			if err != nil {
				logger.Warn().Err(err).Str("expect", s.Expect).Msg("expectation could not be evaluated")
			}
			lines = append(lines, "", fmt.Sprintf("Expectation: %s [%s]", s.Expect, status))
		}

		if err := report.Write(cmd.OutOrStdout(), lines, true); err != nil {
			return err
		}

		if out != "-" {
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return err
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			defer f.Close()
			if err := report.Write(f, lines, false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringP("file", "f", "", "scenario file (default from scenario_file)")
	simulateCmd.Flags().IntP("runs", "n", 1000, "number of battles (default from runs)")
	simulateCmd.Flags().StringP("out", "o", "", "results file, '-' to skip (default from results_file)")
	simulateCmd.Flags().String("trace", "", "write every turn of the first battle to this JSONL file")
}
