package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jonathan/quiz-solver/internal/config"
	"github.com/jonathan/quiz-solver/internal/types"
	"github.com/spf13/cobra"
)

var (
	solveURL        string
	solveEmail      string
	solveDeadline   time.Duration
	solveVerbose    bool
	solveConfigPath string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a quiz chain once from the command line",
	Long: `Runs a single session starting at --url without the HTTP server, using the configured secret.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveURL, "url", "", "Starting quiz URL (required)")
	solveCmd.Flags().StringVar(&solveEmail, "email", "", "Email to submit with (defaults to MY_EMAIL)")
	solveCmd.Flags().DurationVar(&solveDeadline, "deadline", 0, "Session time budget (defaults to SESSION_DEADLINE or 180s)")
	solveCmd.Flags().BoolVarP(&solveVerbose, "verbose", "v", false, "Print each page, answer and response")
	solveCmd.Flags().StringVar(&solveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	if solveURL == "" {
		return fmt.Errorf("--url is required")
	}

	cfg, err := loadConfig(solveConfigPath)
	if err != nil {
		return err
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("email") {
		cfg.Email = solveEmail
	}
	if cmd.Flags().Changed("deadline") {
		cfg.SessionDeadline = config.Duration(solveDeadline)
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = solveVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	orchestrator := newOrchestrator(cfg, cmd.OutOrStdout())
	id := types.Identity{Email: cfg.Email, Secret: cfg.Secret}

	summary, err := orchestrator.Run(ctx, id, solveURL, time.Now().Add(cfg.SessionDeadline.Std()))
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Session %s: %d quizzes solved, ended by %s\n",
		summary.ID, summary.Iterations, summary.EndReason)
	return nil
}
