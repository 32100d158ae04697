package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aerissecure/calbin/internal/batch"
	"github.com/aerissecure/calbin/internal/cli"
	"github.com/aerissecure/calbin/internal/config"
	"github.com/aerissecure/calbin/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(ctx, viper.New()).Execute(); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newCommand(ctx context.Context, v *viper.Viper) *cobra.Command {
	cfg := config.NewConfig()
	var configPath string

	prog := &cli.Program{
		Name:  "calbin",
		Short: "Convert calibration workbooks into binary images and C headers",
		Opts: []cli.Opt{
			cli.NewOpt(&cfg.InputDir, "input-dir", cfg.InputDir, "directory holding the .xlsx workbooks"),
			cli.NewOpt(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory receiving the .bin files and the header"),
			cli.NewOpt(&cfg.HeaderFile, "header-file", cfg.HeaderFile, "name of the generated header inside the output directory"),
			cli.NewOpt(&cfg.Concurrency, "concurrency", cfg.Concurrency, "number of workbooks converted in parallel"),
			cli.NewOpt(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "log format: auto, console or json"),
			cli.NewOpt(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level: debug, info, warn or error"),
		},
		Load: func() error {
			if configPath == "" {
				return nil
			}
			if err := cfg.FromTomlFile(configPath); err != nil {
				return fmt.Errorf("failed to load config %s: %w", configPath, err)
			}
			return nil
		},
	}
	prog.Run = func() error {
		log, err := logger.New(os.Stderr, cfg.Logging)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		sum, err := batch.NewRunner(cfg, log).Run(ctx)
		log.Info("Finished",
			zap.Int("converted", sum.Converted),
			zap.Int("failed", sum.Failed),
			zap.Int("skipped", sum.Skipped),
		)
		return err
	}

	cmd := cli.NewCommand(v, prog)
	cmd.Flags().StringVar(&configPath, "config", os.Getenv("CALBIN_CONFIG"), "path to a TOML config file")
	return cmd
}
