/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
)

// scenarioCmd represents the scenario command
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Inspect and validate scenario files",
	Long: `The scenario command reads a scenario file without running any battle.

Use subcommands 'list' to validate a file and list its scenarios and 'show'
to print the rosters of one of them.`,
}

// scenarioListCmd represents the scenario list command
var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "Validate a scenario file and list its scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := loadScenarioFile(cmd)
		if err != nil {
			return err
		}
		if err := file.Validate(); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPCS\tNPCS\tOFFSET\tSTART\tDESCRIPTION")
		for _, s := range file.Scenarios {
			start := s.StartingMomentum
			if start == "" {
				start = "pcs"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%+g\t%s\t%s\n", s.ID, len(s.PCs), len(s.NPCs), s.Offset(), start, s.Description)
		}
		return w.Flush()
	},
}

// scenarioShowCmd represents the scenario show command
var scenarioShowCmd = &cobra.Command{
	Use:   "show <scenario_id>",
	Short: "Print the rosters of one scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := loadScenarioFile(cmd)
		if err != nil {
			return err
		}
		s, err := file.Find(args[0])
		if err != nil {
			return err
		}
		rosters, err := s.Build()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scenario %s: %s\n", s.ID, s.Description)
		fmt.Fprintf(out, "Starting momentum: %s\n", rosters.Start)
		if s.Expect != "" {
			fmt.Fprintf(out, "Expectation: %s\n", s.Expect)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nSIDE\tNAME\tHP\tAPT/DT\tEXPERTISE\tTARGETING")
		for _, pc := range rosters.Rolling {
			fmt.Fprintf(w, "pcs\t%s\t%d/%d\tapt %d\t%s\t%s\n", pc.Name(), pc.HP(), pc.MaxHP(), pc.Aptitude(),
				expertise(pc.ExpertiseAttack(), pc.ExpertiseDefense()), pc.Strategy())
		}
		for _, npc := range rosters.Passive {
			fmt.Fprintf(w, "npcs\t%s\t%d/%d\tdt %d\t%s\t%s\n", npc.Name(), npc.HP(), npc.MaxHP(), npc.DT(),
				expertise(npc.ExpertiseAttack(), npc.ExpertiseDefense()), npc.Strategy())
		}
		return w.Flush()
	},
}

func expertise(attack, defense bool) string {
	var parts []string
	if attack {
		parts = append(parts, "attack")
	}
	if defense {
		parts = append(parts, "defense")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

func loadScenarioFile(cmd *cobra.Command) (*scenario.File, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = settings.ScenarioFile
	}
	return scenario.NewLoader(settings.DataDirs).Load(path)
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)

	scenarioCmd.PersistentFlags().StringP("file", "f", "", "scenario file (default from scenario_file)")
}
