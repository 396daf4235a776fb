package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/cobra"

	"shift-scheduler/config"
	"shift-scheduler/formatter"
	"shift-scheduler/logger"
	"shift-scheduler/metrics"
	"shift-scheduler/parser"
	"shift-scheduler/scheduler"
)

type generateOptions struct {
	input       string
	roster      string
	format      string
	budgetMs    int
	metricsAddr string
	pushGateway string
	wait        bool
}

func newGenerateCommand(cfgPath *string) *cobra.Command {
	opts := &generateOptions{}
	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate the schedule of one team week from a request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, *cfgPath, opts)
		},
	}
	f := c.Flags()
	f.StringVar(&opts.input, "input", "", "Input request file, JSON or YAML (required)")
	f.StringVar(&opts.roster, "roster", "", "Roster CSV replacing the request's employees")
	f.StringVar(&opts.format, "format", "text", "Output format: text|json|csv")
	f.IntVar(&opts.budgetMs, "budget-ms", 0, "Optimizer time budget in milliseconds (0 = configured value)")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	f.StringVar(&opts.pushGateway, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	f.BoolVar(&opts.wait, "wait", false, "Keep process running after completion to allow for metric scraping")
	_ = c.MarkFlagRequired("input")
	return c
}

func runGenerate(cmd *cobra.Command, cfgPath string, opts *generateOptions) error {
	out := cmd.OutOrStdout()

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[opts.format] {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", opts.format)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewZerologLogger(cmd.ErrOrStderr(), "generate", cfg.Log)

	// Start metrics server if address provided
	if opts.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		go func() {
			log.Infof("metrics server listening on %s/metrics", opts.metricsAddr)
			if err := http.ListenAndServe(opts.metricsAddr, mux); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}

	file, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	req, err := parser.ParseRequest(file, parser.FormatFromPath(opts.input))
	if err != nil {
		return err
	}

	if opts.roster != "" {
		rf, err := os.Open(opts.roster)
		if err != nil {
			return fmt.Errorf("open roster: %w", err)
		}
		defer rf.Close()
		employees, err := parser.ParseRoster(rf)
		if err != nil {
			return fmt.Errorf("parse roster: %w", err)
		}
		req.Employees = employees
	}

	engineCfg := cfg.Engine
	if opts.budgetMs > 0 {
		engineCfg.BudgetMs = opts.budgetMs
	}
	engine, err := scheduler.New(scheduler.WithConfig(engineCfg))
	if err != nil {
		return err
	}

	res, err := engine.Generate(req)
	if err != nil {
		if isInternalFault(err) {
			metrics.InternalFaultsTotal.Inc()
			log.Errorf("internal fault: %v", err)
		}
		return err
	}
	metrics.ObserveResult(res)
	log.Debugw("schedule generated", map[string]any{
		"team":       res.TeamID,
		"feasible":   res.Feasible,
		"violations": len(res.Violations),
		"candidates": res.Diagnostics.CandidatesEvaluated,
		"variant":    res.Diagnostics.Variant,
		"elapsed_ms": res.ExecutionTimeMs,
	})

	// Output based on format
	switch opts.format {
	case "json":
		fmt.Fprintln(out, formatter.FormatJSON(res))
	case "csv":
		fmt.Fprint(out, formatter.FormatCSV(res))
	default: // "text"
		fmt.Fprint(out, formatter.FormatText(res))
	}

	// Handle metrics pushing or waiting
	if opts.pushGateway != "" {
		jobName := "shift_scheduler"
		if err := push.New(opts.pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			log.Errorf("pushing to Pushgateway: %v", err)
		} else {
			log.Infof("metrics pushed to Pushgateway")
		}
	}

	if opts.wait && opts.metricsAddr != "" {
		log.Infof("process kept alive for metric scraping, press Ctrl+C to exit")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
	} else if opts.metricsAddr != "" && opts.pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
