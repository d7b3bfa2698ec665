/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
)

// gridCmd represents the grid command
var gridCmd = &cobra.Command{
	Use:   "grid [output_file]",
	Short: "Generate the benchmark scenario grid",
	Long: `Writes one scenario per combination of PC group size, NPC group size and
threshold offset. Aptitude is fixed and each NPC's DT is aptitude + offset.
Lone NPCs get more hp than NPCs fighting in groups.

The output format follows the file extension (.json, otherwise YAML).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := "benchmarks.json"
		if len(args) == 1 {
			out = args[0]
		}

		g := scenario.DefaultGrid()
		if cmd.Flags().Changed("pcs") {
			g.PCCounts, _ = cmd.Flags().GetIntSlice("pcs")
		}
		if cmd.Flags().Changed("npcs") {
			g.NPCCounts, _ = cmd.Flags().GetIntSlice("npcs")
		}
		if cmd.Flags().Changed("offsets") {
			g.Offsets, _ = cmd.Flags().GetIntSlice("offsets")
		}
		g.Aptitude, _ = cmd.Flags().GetInt("aptitude")

		file := &scenario.File{Scenarios: g.Scenarios()}
		if err := file.Validate(); err != nil {
			return err
		}
		if err := scenario.Save(out, file); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d scenarios in %s\n", len(file.Scenarios), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)

	def := scenario.DefaultGrid()
	gridCmd.Flags().IntSlice("pcs", def.PCCounts, "PC group sizes")
	gridCmd.Flags().IntSlice("npcs", def.NPCCounts, "NPC group sizes")
	gridCmd.Flags().IntSlice("offsets", def.Offsets, "threshold offsets over aptitude")
	gridCmd.Flags().Int("aptitude", def.Aptitude, "PC aptitude")
}
