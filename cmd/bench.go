/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubeof2/jenness-battle-simulator/internal/report"
	"github.com/cubeof2/jenness-battle-simulator/internal/results"
	"github.com/cubeof2/jenness-battle-simulator/internal/rules"
	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run every scenario of a file and write a markdown balance report",
	Long: `Runs --runs battles for each scenario in the file and writes
<report_dir>/balance_report_<file>.md containing a win rate heatmap by
NPC:PC ratio and threshold offset, a group size comparison and the raw
per-scenario results.

Scenarios with an 'expect' expression are checked against their batch
metrics. When db_path is configured the aggregates are also stored so later
runs can be compared with 'bench history'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		runs := intFlagOr(cmd, "runs", 500)

		scenarios, err := scenario.NewLoader(settings.DataDirs).Load(file)
		if err != nil {
			return err
		}
		if err := scenarios.Validate(); err != nil {
			return err
		}
		if len(scenarios.Scenarios) == 0 {
			return fmt.Errorf("%s contains no scenarios", file)
		}

		registry, err := rules.NewRegistry()
		if err != nil {
			return err
		}
		seed, err := batchSeed()
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(runs*len(scenarios.Scenarios)), "Simulating")
		runner := &sim.Runner{
			Workers:  settings.Workers,
			Seed:     seed,
			MaxTurns: settings.MaxTurns,
			Logger:   logger,
			OnBattle: func() { bar.Add(1) },
		}

		rows := make([]report.Row, 0, len(scenarios.Scenarios))
		failed := 0
		for _, s := range scenarios.Scenarios {
			batch, err := runner.Run(cmd.Context(), s, runs)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", s.ID, err)
			}

			metrics := rules.MetricsFromBatch(batch)
			status, err := registry.Expect(s.Expect, metrics)
			if err != nil {
				logger.Warn().Err(err).Str("scenario", s.ID).Msg("expectation could not be evaluated")
			}
			if status == rules.StatusFail || status == rules.StatusError {
				failed++
			}
			rows = append(rows, report.NewRow(batch, status))
		}
		bar.Finish()

		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		reportPath := filepath.Join(settings.ReportDir, fmt.Sprintf("balance_report_%s.md", stem))
		if err := os.MkdirAll(settings.ReportDir, 0755); err != nil {
			return err
		}
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		defer f.Close()
		if err := report.WriteMarkdown(f, filepath.Base(file), rows); err != nil {
			return err
		}

		if settings.DBPath != "" {
			store, err := results.Open(settings.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			label, _ := cmd.Flags().GetString("label")
			if label == "" {
				label = time.Now().UTC().Format(time.RFC3339)
			}
			if err := store.Save(label, seed, rows); err != nil {
				return err
			}
			logger.Info().Str("db", settings.DBPath).Str("label", label).Int("rows", len(rows)).Msg("benchmarks stored")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nBenchmark Complete! View the results in: %s\n", reportPath)
		if failed > 0 {
			return fmt.Errorf("%d scenario expectation(s) not met", failed)
		}
		return nil
	},
}

// benchHistoryCmd represents the bench history command
var benchHistoryCmd = &cobra.Command{
	Use:   "history <scenario_id>",
	Short: "List stored benchmark results for a scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.DBPath == "" {
			return fmt.Errorf("db_path is not configured")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := results.Open(settings.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		history, err := store.Recent(args[0], limit)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No stored results for %s\n", args[0])
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-25s %8s %9s %9s  %s\n", "RUN", "BATTLES", "WIN RATE", "R", "STATUS")
		for _, b := range history {
			r := "N/A"
			if b.R != nil {
				r = fmt.Sprintf("%+.4f", *b.R)
			}
			status := b.Status
			if status == "" {
				status = "-"
			}
			fmt.Fprintf(out, "%-25s %8d %8.1f%% %9s  %s (%s)\n", b.RunLabel, b.Battles, b.WinRate, r, status, b.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.AddCommand(benchHistoryCmd)

	benchCmd.PersistentFlags().String("db", "", "results database (overrides db_path)")
	benchCmd.Flags().StringP("file", "f", "benchmarks.json", "scenario file")
	benchCmd.Flags().IntP("runs", "n", 500, "battles per scenario")
	benchCmd.Flags().String("label", "", "label stored with this run (default: current time)")
	benchHistoryCmd.Flags().Int("limit", 10, "number of runs to list")

	viper.BindPFlag("db_path", benchCmd.PersistentFlags().Lookup("db"))
}
