package main

import (
	"fmt"
	"io"

	"github.com/jonathan/quiz-solver/internal/config"
	"github.com/jonathan/quiz-solver/internal/fetch"
	"github.com/jonathan/quiz-solver/internal/observability"
	"github.com/jonathan/quiz-solver/internal/session"
	"github.com/jonathan/quiz-solver/internal/solver"
	"github.com/jonathan/quiz-solver/internal/submission"
)

// loadConfig reads the environment and, when configPath is set, overlays a JSON config file.
func loadConfig(configPath string) (*config.Config, error) {
	cfg := config.Load()
	if configPath == "" {
		return cfg, nil
	}

	fileCfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	merged := fileCfg.MergeWithDefaults(*cfg)
	if fileCfg.Verbose {
		merged.Verbose = true
	}
	return &merged, nil
}

// newOrchestrator wires the browser, resolver and submission client for a session.
// verboseOut receives formatted progress boxes when cfg.Verbose is set.
func newOrchestrator(cfg *config.Config, verboseOut io.Writer) *session.Orchestrator {
	renderer := fetch.NewBrowserRenderer(cfg.RenderTimeout.Std(), cfg.RenderSettle.Std(), cfg.Verbose)

	downloader := fetch.NewDownloader(fetch.CSVOptions(cfg.DownloadTimeout.Std()))

	resolver := solver.NewResolver(renderer, downloader, solver.Options{
		CommandTargetURL:  cfg.CommandTargetURL,
		PlaceholderAnswer: cfg.PlaceholderAnswer,
		Verbose:           cfg.Verbose,
	})
	submitter := submission.NewClient(cfg.SubmitTimeout.Std(), cfg.Verbose)

	var printer *observability.Printer
	if cfg.Verbose && verboseOut != nil {
		printer = observability.NewPrinter(verboseOut)
	}

	return session.NewOrchestrator(renderer, resolver, submitter, printer)
}
