/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cubeof2/jenness-battle-simulator/internal/parser"
	"github.com/cubeof2/jenness-battle-simulator/internal/report"
	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
)

// duelCmd represents the duel command
var duelCmd = &cobra.Command{
	Use:   "duel <matchup>",
	Short: "Simulate an ad-hoc matchup without a scenario file",
	Long: `Describes both sides in one line and runs a batch of battles:

  jenness duel "5 pcs apt 5 vs 3 npcs hp 1 dt 14"
  jenness duel "1 pc hp 6 atk def vs 1 npc hp 10 dt 17 atk start npcs"

Grammar: ` + parser.Usage,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parser.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}
		s, err := m.Scenario("duel")
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
		batch, err := runner.Run(cmd.Context(), s, intFlagOr(cmd, "runs", settings.Runs))
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), report.ScenarioLines(batch), true)
	},
}

func init() {
	rootCmd.AddCommand(duelCmd)
	duelCmd.Flags().IntP("runs", "n", 1000, "number of battles (default from runs)")
}
