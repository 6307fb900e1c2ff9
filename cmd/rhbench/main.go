package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func makeRHBenchCommand() *cobra.Command {
	cfg := defaultConfig()
	var configPath string
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			fileCfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &fileCfg, cfg)
			cfg = fileCfg
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		logger, err := cfg.newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		rep, err := run(cfg, logger)
		if err != nil {
			return err
		}
		logger.Info("done",
			zap.Int("inserted", rep.Inserted),
			zap.Int("erased", rep.Erased),
			zap.Int("len", rep.Len),
			zap.Int("cap", rep.Cap),
			zap.Int("rebuilds", rep.Rebuilds),
			zap.Int("max_probe", rep.MaxProbe),
			zap.Float64("load_factor", rep.LoadFactor),
			zap.Duration("elapsed", rep.Elapsed))
		return nil
	}
	cmd := &cobra.Command{
		Use:   "rhbench [flags]",
		Short: "rhbench runs an insert, erase and verify workload against an rhmap.Map",
		Long: `rhbench runs an insert, erase and verify workload against an rhmap.Map and
reports probe table statistics. Settings are read from an optional TOML file
(--config) and any flag given explicitly overrides the file.`,
		Args:          cobra.NoArgs,
		RunE:          runCmdFunc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML workload file")
	cmd.Flags().IntVar(&cfg.Keys, "keys", cfg.Keys, "number of distinct keys to insert")
	cmd.Flags().IntVar(&cfg.EraseEvery, "erase-every", cfg.EraseEvery, "erase every n'th inserted key, 0 disables erasing")
	cmd.Flags().StringVar(&cfg.Hasher, "hasher", cfg.Hasher, "hash function: default or constant")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the key shuffle")
	cmd.Flags().IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "number of entries to pre-size the table for")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	cmd.Flags().BoolVar(&cfg.Dev, "dev", cfg.Dev, "use the development logger")
	return cmd
}

// applyFlags copies every explicitly set flag value from flagCfg into cfg
func applyFlags(cmd *cobra.Command, cfg *config, flagCfg config) {
	flags := cmd.Flags()
	if flags.Changed("keys") {
		cfg.Keys = flagCfg.Keys
	}
	if flags.Changed("erase-every") {
		cfg.EraseEvery = flagCfg.EraseEvery
	}
	if flags.Changed("hasher") {
		cfg.Hasher = flagCfg.Hasher
	}
	if flags.Changed("seed") {
		cfg.Seed = flagCfg.Seed
	}
	if flags.Changed("capacity") {
		cfg.Capacity = flagCfg.Capacity
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
	if flags.Changed("dev") {
		cfg.Dev = flagCfg.Dev
	}
}

func main() {
	if err := makeRHBenchCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rhbench:", err)
		os.Exit(1)
	}
}
