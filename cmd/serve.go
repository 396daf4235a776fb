package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shift-scheduler/config"
	apperrors "shift-scheduler/errors"
	"shift-scheduler/logger"
	"shift-scheduler/scheduler"
	"shift-scheduler/server"
	"shift-scheduler/store"
)

func newServeCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the schedule generation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *cfgPath)
		},
	}
}

func runServe(cmd *cobra.Command, cfgPath string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("server", cfg.Log)

	engine, err := scheduler.New(scheduler.WithConfig(cfg.Engine))
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Errorf("store close: %v", err)
		}
	}()

	opts := server.Options{
		Addr:          cfg.Server.Addr,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		MaxConcurrent: cfg.Server.MaxConcurrent,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	log.Infof("store backend=%s engine budget=%dms candidates=%d", cfg.Store.Backend, cfg.Engine.BudgetMs, cfg.Engine.MaxCandidates)
	return server.New(opts, engine, st, log).Run(ctx)
}

func isInternalFault(err error) bool {
	return errors.Is(err, apperrors.ErrInternalFault)
}
