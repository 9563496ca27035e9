package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockPulse/internal/config"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "bot",
		Short:         "Daily US stock technical report for Discord",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), opts)
		},
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultPath, "path to config file")
	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "render the report to stdout instead of posting it")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Analyze every symbol once and post the report",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runReport(cmd.Context(), opts)
			},
		},
		newScheduleCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Post the report on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sched, err := buildScheduler(ctx, cfg)
			if err != nil {
				return err
			}
			if err := sched.Register(cfg.Schedule.Cron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
			log.Printf("[INFO] reporting on %q (%s)", cfg.Schedule.Cron, cfg.Schedule.Timezone)

			if runNow {
				go sched.RunAndLog(ctx)
			}

			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "also run once immediately")
	return cmd
}

// loadConfig reads and validates configuration. Any error here ends the
// process before a single fetch is attempted.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.dryRun {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// runReport performs a single run. Only configuration problems are returned;
// run-level failures are logged and the command still succeeds.
func runReport(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	ctx = contextOrBackground(ctx)
	sched, err := buildScheduler(ctx, cfg)
	if err != nil {
		return err
	}
	sched.RunAndLog(ctx)
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
