/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubeof2/jenness-battle-simulator/internal/trace"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <trace_file>",
	Short: "Print a battle recorded with 'simulate --trace'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := trace.Read(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(out, "Turn %d [%s] %s -> %s", e.Turn, e.Side, e.Actor, e.Target)
			if e.Friction > 0 {
				fmt.Fprintf(out, " (friction %d)", e.Friction)
			}
			fmt.Fprintf(out, ": d20 %d +%d -%d = %d vs DT %d, %s",
				e.Roll.Natural, e.Roll.Boon, e.Roll.Bane, e.Roll.Total, e.Roll.DT, e.Roll.Outcome)
			if e.Damage > 0 {
				fmt.Fprintf(out, ", %d damage to %s", e.Damage, e.Target)
			}
			if e.Shifted {
				fmt.Fprint(out, ", momentum shifts")
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d turns\n", len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
