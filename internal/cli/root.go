// Package cli implements the greenbench command line.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by greenbench, e.g. GREENBENCH_TASKS.
const EnvPrefix = "GREENBENCH"

// Execute runs greenbench with the process arguments.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

// NewRootCommand builds the greenbench command writing its log to out.
// Each command owns its viper instance so that commands built in tests do not share state.
func NewRootCommand(out io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "greenbench",
		Short: "Spawn a batch of green threads and compare them with a sequential run",
		Long: `greenbench spawns --tasks tasks on a green-thread scheduler, each computing --terms terms
of the doubling sequence, waits for all of them and reports the elapsed time. It then runs the
same work sequentially for comparison.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settingsFrom(v)
			if err != nil {
				return err
			}
			_, err = Run(cmd.Context(), s, out)
			return err
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	setDefaults(v)
	flags := cmd.Flags()
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./greenbench.yaml when present)")
	flags.IntP("tasks", "n", defaultTasks, "number of tasks to spawn")
	flags.Int("terms", defaultTerms, "terms of the doubling sequence computed by each task")
	flags.UintP("workers", "w", 0, "worker count (0 uses GOMAXPROCS)")
	flags.String("wait", "adaptive", "wait strategy: adaptive, spin or park")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error or off")
	flags.Bool("metrics", false, "print prometheus samples after the run")

	_ = v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	for _, name := range []string{"tasks", "terms", "workers", "wait", "log-level", "metrics"} {
		_ = v.BindPFlag(configKey(name), flags.Lookup(name))
	}
	return cmd
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tasks", defaultTasks)
	v.SetDefault("terms", defaultTerms)
	v.SetDefault("workers", 0)
	v.SetDefault("wait", "adaptive")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics", false)
}

// configKey maps a flag name onto its config key: log-level is log.level in YAML and GREENBENCH_LOG_LEVEL in the env.
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", ".")
}

func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}

	v.SetConfigName("greenbench")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// a missing default config file is fine
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
