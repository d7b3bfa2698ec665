/*
Copyright © 2026 Jenness Battle Simulator authors
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubeof2/jenness-battle-simulator/internal/config"
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
	"github.com/cubeof2/jenness-battle-simulator/internal/logging"
)

var (
	cfgFile  string
	settings config.Settings
	logger   = zerolog.Nop()
	logFile  *os.File
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jenness",
	Short: "Monte-Carlo simulator for momentum and friction skirmishes",
	Long: `jenness plays thousands of seeded battles between a rolling player side
and a passive enemy side and reports how momentum runs, win rates and
threshold offsets relate to each other.

Scenarios are read from JSON or YAML files. Use 'grid' to generate the
standard benchmark sweep and 'bench' to turn it into a balance report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(viper.GetViper(), cfgFile); err != nil {
			return err
		}
		s, err := config.Resolve(viper.GetViper())
		if err != nil {
			return err
		}
		settings = s

		if settings.LogFile != "" {
			logFile, err = os.OpenFile(settings.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			logger = logging.New(settings.LogLevel, os.Stderr, logFile)
		} else {
			logger = logging.New(settings.LogLevel, os.Stderr, nil)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// closeLogFile runs after every command, including failed ones.
func closeLogFile() {
	if logFile == nil {
		return
	}
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	logFile = nil
	logger = zerolog.Nop()
}

func init() {
	cobra.OnFinalize(closeLogFile)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./jenness.yaml or $HOME/.jenness/jenness.yaml)")
	flags.String("log-level", "INFO", "log level: TRACE, DEBUG, INFO, WARN or ERROR")
	flags.String("log-file", "", "also write logs to this file")
	flags.Uint64("seed", 0, "base random seed, 0 draws one from the system")
	flags.Int("workers", 0, "parallel battles, 0 uses every CPU")
	flags.Int("max-turns", 10000, "stop a battle after this many turns, 0 disables the cap")
	flags.StringSlice("data-dir", []string{"."}, "directories searched for scenario files")

	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_file", flags.Lookup("log-file"))
	viper.BindPFlag("seed", flags.Lookup("seed"))
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.BindPFlag("max_turns", flags.Lookup("max-turns"))
	viper.BindPFlag("data_dirs", flags.Lookup("data-dir"))
}

// batchSeed returns the configured seed, drawing a fresh one when unset.
func batchSeed() (uint64, error) {
	if settings.Seed != 0 {
		return settings.Seed, nil
	}
	seed, err := dice.NewSeed()
	if err != nil {
		return 0, err
	}
	logger.Info().Uint64("seed", seed).Msg("using random seed")
	return seed, nil
}

// intFlagOr prefers an explicitly set flag over the configured value.
func intFlagOr(cmd *cobra.Command, name string, configured int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return configured
}
