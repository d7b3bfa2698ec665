package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the resolved configuration.
type Settings struct {
	LogLevel     string   `mapstructure:"log_level"`
	LogFile      string   `mapstructure:"log_file"`
	Runs         int      `mapstructure:"runs"`
	Workers      int      `mapstructure:"workers"`
	Seed         uint64   `mapstructure:"seed"`
	MaxTurns     int      `mapstructure:"max_turns"`
	ScenarioFile string   `mapstructure:"scenario_file"`
	ResultsFile  string   `mapstructure:"results_file"`
	ReportDir    string   `mapstructure:"report_dir"`
	DBPath       string   `mapstructure:"db_path"`
	DataDirs     []string `mapstructure:"data_dirs"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_file", "")
	v.SetDefault("runs", 1000)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("seed", 0)
	v.SetDefault("max_turns", 10000)
	v.SetDefault("scenario_file", "scenarios.json")
	v.SetDefault("results_file", "simulation_results.txt")
	v.SetDefault("report_dir", "reports")
	v.SetDefault("db_path", "")
	v.SetDefault("data_dirs", []string{"."})
}

// Load reads defaults, the config file and JENNESS_ environment variables
// into v. An explicit cfgFile must exist; the default jenness.yaml is optional.
func Load(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("jenness")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("jenness")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jenness"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Resolve unmarshals the current values of v.
func Resolve(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("failed to decode config: %w", err)
	}
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	return s, nil
}
