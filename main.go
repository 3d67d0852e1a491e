package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/giygas/interactions-api/config"
	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/handlers"
	"github.com/giygas/interactions-api/health"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/mcpserver"
	"github.com/giygas/interactions-api/resolver"
	"github.com/giygas/interactions-api/scheduler"
	"github.com/giygas/interactions-api/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds the graceful shutdown
const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "interactions-api",
		Short:        "Drug interaction checker: HTTP API, MCP tools and CLI",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnvFile()
		},
		// Serving is the default
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(suggestCmd())

	return rootCmd
}

// loadEnvFile reads .env from the working directory, then from the
// executable's directory. A missing file is fine.
func loadEnvFile() {
	if err := godotenv.Load(); err == nil {
		return
	}

	ex, err := os.Executable()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(filepath.Dir(ex), ".env"))
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and MCP endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <medication> <medication> [medication...]",
		Short: "Check medications for interactions",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			asJSON, _ := cmd.Flags().GetBool("json")
			return runCheck(cmd.Context(), cmd.OutOrStdout(), args, offline, asJSON)
		},
	}
	cmd.Flags().Bool("offline", false, "Skip the remote terminology and label services")
	cmd.Flags().Bool("json", false, "Print the full report as JSON")
	return cmd
}

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <partial name>",
		Short: "Autocomplete a medication name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runSuggest(cmd.OutOrStdout(), args[0], limit)
		},
	}
	cmd.Flags().Int("limit", 8, "Maximum number of suggestions")
	return cmd
}

// runServer wires every component and blocks until SIGINT or SIGTERM
func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.InitLoggerWithConfig(logging.Config{
		Dir:            cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer logging.Close()

	a := newApp(cfg, false)
	a.container.SetServerStartTime(time.Now())

	opts := scheduler.Options{ProbeInterval: cfg.ProbeInterval}
	if cfg.DatasetPath != "" {
		// Embedded tables never change; only an operator file is worth reloading
		opts.ReloadInterval = cfg.DatasetReloadInterval
	}
	sched := scheduler.NewScheduler(a.container, a.loader, a.remote, opts)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	healthChecker := health.NewHealthChecker(a.container, cfg.ProbeInterval)
	httpHandler := handlers.NewHTTPHandler(a.engine, a.validator, healthChecker, cfg.MaxMedications)
	tools := mcpserver.New(a.engine, a.validator, cfg.MaxMedications, version)
	srv := server.NewServer(cfg, httpHandler, tools.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logging.Error("Server failed to start", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// cliLogging keeps one-shot commands quiet on stdout
func cliLogging(cfg *config.Config) {
	logging.InitLoggerWithConfig(logging.Config{Env: cfg.Env, Level: "error"})
}

func runCheck(ctx context.Context, out io.Writer, names []string, offline, asJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cliLogging(cfg)

	a := newApp(cfg, offline)
	if err := a.validator.ValidateMedicationList(names, cfg.MaxMedications); err != nil {
		return err
	}
	if err := a.loadNow(); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	result, err := a.engine.Resolve(ctx, names)
	if err != nil {
		return fmt.Errorf("interaction check failed: %w", err)
	}

	report := resolver.NewReport(result)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(out, report)
	return nil
}

func printReport(out io.Writer, report resolver.Report) {
	switch report.Outcome {
	case resolver.OutcomeInvalidInput:
		diag := report.Interactions[0]
		fmt.Fprintln(out, diag.Description)
		for _, hint := range diag.SideEffects {
			if strings.HasPrefix(hint, "Did you mean") {
				fmt.Fprintln(out, "  "+hint)
			}
		}

	case resolver.OutcomeNoInteractions:
		fmt.Fprintln(out, "No known interactions found.")

	default:
		fmt.Fprintf(out, "%d interaction(s) found:\n", report.Count)
		for i, in := range report.Interactions {
			printInteraction(out, i+1, in)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, report.Disclaimer)
}

func printInteraction(out io.Writer, n int, in entities.Interaction) {
	fmt.Fprintf(out, "\n%d. %s + %s [%s, %s]\n", n, in.Drug1, in.Drug2, strings.ToUpper(string(in.Severity)), in.Source)
	if in.SimpleSummary != "" {
		fmt.Fprintf(out, "   %s\n", in.SimpleSummary)
	}
	fmt.Fprintf(out, "   %s\n", in.Description)
	if in.Recommendation != "" {
		fmt.Fprintf(out, "   Recommendation: %s\n", in.Recommendation)
	}
	if len(in.SideEffects) > 0 {
		fmt.Fprintf(out, "   Side effects: %s\n", strings.Join(in.SideEffects, "; "))
	}
	if len(in.WhatToAvoid) > 0 {
		fmt.Fprintf(out, "   Avoid: %s\n", strings.Join(in.WhatToAvoid, "; "))
	}
}

func runSuggest(out io.Writer, partial string, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cliLogging(cfg)

	if limit < 1 {
		return errors.New("limit must be positive")
	}

	a := newApp(cfg, true)
	if err := a.validator.ValidateInput(partial); err != nil {
		return err
	}

	for _, s := range a.engine.Suggestions(partial, limit) {
		fmt.Fprintln(out, s)
	}
	return nil
}
