// Package cmd wires the components together behind the classwork command.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrisonrobin/classwork/pkg/auth"
	"github.com/harrisonrobin/classwork/pkg/browser"
	"github.com/harrisonrobin/classwork/pkg/catalog"
	"github.com/harrisonrobin/classwork/pkg/config"
	"github.com/harrisonrobin/classwork/pkg/google"
	"github.com/harrisonrobin/classwork/pkg/ignore"
	"github.com/harrisonrobin/classwork/pkg/logging"
	"github.com/harrisonrobin/classwork/pkg/model"
	"github.com/harrisonrobin/classwork/pkg/refresh"
	"github.com/harrisonrobin/classwork/pkg/repl"
	"github.com/harrisonrobin/classwork/pkg/store"
	"github.com/spf13/cobra"
)

type options struct {
	interval    time.Duration
	setInterval time.Duration
	reauth      bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "classwork",
		Short: "Keep an eye on pending Google Classroom work.",
		Long: `classwork polls Google Classroom in the background for work you have not
turned in yet and gives you a prompt to list, inspect and open it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	flags := cmd.Flags()
	flags.DurationVar(&opts.interval, "interval", 0, "time between background refreshes (overrides config)")
	flags.DurationVar(&opts.setInterval, "set-interval", 0, "save the default refresh interval and exit")
	flags.BoolVar(&opts.reauth, "auth", false, "discard the cached Google token and sign in again")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	return cmd
}

// Execute runs the root command. It is called once by main.main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig applies flag overrides on top of the loaded config.
func resolveConfig(cfg *config.Config, opts *options) {
	if opts.interval > 0 {
		cfg.PollInterval.Duration = opts.interval
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	cfg.Normalize()
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if opts.setInterval > 0 {
		cfg.PollInterval.Duration = opts.setInterval
		cfg.Normalize()
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Default refresh interval set to %s\n", cfg.PollInterval)
		return nil
	}
	resolveConfig(cfg, opts)

	logger, closer, err := logging.New(cfg.Path(config.LogFile), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	if opts.reauth {
		if err := auth.RemoveToken(cfg.DataDir); err != nil {
			return err
		}
	}

	client, err := google.NewClient(ctx, cfg.DataDir, cfg.RequestTimeout.Duration)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	ignored, err := ignore.Load(cfg.Path(config.IgnoreFile))
	if err != nil {
		return err
	}

	courses := catalog.New(cfg.Path(config.CoursesFile), client, ignored, logger)
	if _, err := courses.Load(ctx); err != nil {
		return err
	}

	assignments := store.New(cfg.Path(config.AssignmentsFile), logger)
	if err := assignments.Load(); err != nil {
		logger.Error("could not load saved assignments, starting empty", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not load saved assignments: %v\n", err)
	}

	loop := repl.New(os.Stdin, os.Stdout, repl.Deps{
		Assignments: assignments,
		Catalog:     courses,
		Ignore:      ignored,
		Opener:      browser.NewOpener(),
	}, logger)

	engine := refresh.New(client, courses, assignments, logger, refresh.Options{
		Interval: cfg.PollInterval.Duration,
		OnUpdate: func(s model.Snapshot) {
			loop.Notify(fmt.Sprintf("Assignments updated (%d pending)", len(s)))
		},
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	engine.Start(ctx)

	logger.Info("started", "interval", cfg.PollInterval, "data_dir", cfg.DataDir)
	return loop.Run(ctx)
}
