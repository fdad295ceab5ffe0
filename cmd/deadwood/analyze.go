package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"deadwood/internal/config"
	"deadwood/internal/driver"
	"deadwood/internal/paths"
	"deadwood/internal/slogutil"
)

var (
	analyzeIndexPath  string
	analyzeFormat     string
	analyzeScope      []string
	analyzeExclude    []string
	analyzeUnexported bool
	analyzeBaseline   string
	analyzeLogFormat  string
	analyzeVerbosity  int
	analyzeQuiet      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Find unreferenced declarations using a SCIP index",
	Long: `analyze constructs a declaration/reference graph from a SCIP index and the
module's source tree, then reports declarations that are never used.

Examples:
  deadwood analyze --index index.scip
  deadwood analyze --index index.scip.gz --scope internal/legacy
  deadwood analyze --index index.scip --unexported
  deadwood analyze --index index.scip --exclude "*_generated.go"
  deadwood analyze --index index.scip --format human`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeIndexPath, "index", "index.scip", "Path to the SCIP index (.scip or .scip.gz)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, human)")
	analyzeCmd.Flags().StringSliceVar(&analyzeScope, "scope", nil, "Limit results to specific package paths")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "Glob patterns to exclude (can be repeated)")
	analyzeCmd.Flags().BoolVar(&analyzeUnexported, "unexported", false, "Include unexported declarations")
	analyzeCmd.Flags().StringVar(&analyzeBaseline, "baseline", "", "Prior JSON result to diff against")
	analyzeCmd.Flags().StringVar(&analyzeLogFormat, "log-format", "human", "Log format (human, json)")
	analyzeCmd.Flags().IntVarP(&analyzeVerbosity, "verbose", "v", 0, "Increase log verbosity (-v, -vv)")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "Suppress log output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()
	logger := newAnalyzeLogger()

	repoRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving repo root: %w", err)
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err.Error())
		cfg = config.DefaultConfig()
	}
	if len(analyzeScope) > 0 {
		cfg.DeadCode.Scope = analyzeScope
	}
	if len(analyzeExclude) > 0 {
		cfg.DeadCode.Exclude = append(cfg.DeadCode.Exclude, analyzeExclude...)
	}

	indexPath, err := resolveIndexPath(analyzeIndexPath, repoRoot, logger)
	if err != nil {
		return err
	}

	result, err := driver.Run(context.Background(), driver.Options{
		IndexPath:         indexPath,
		RepoRoot:          repoRoot,
		Config:            cfg,
		IncludeUnexported: analyzeUnexported,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	response := &Response{
		Result: result,
		Provenance: &ProvenanceCLI{
			RunID:           uuid.New().String(),
			QueryDurationMs: time.Since(start).Milliseconds(),
		},
	}

	if analyzeBaseline != "" {
		if err := applyBaseline(response, analyzeBaseline); err != nil {
			logger.Warn("failed to load baseline", "error", err.Error())
		}
	}

	output, err := FormatResponse(response, OutputFormat(analyzeFormat))
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	fmt.Println(output)

	logger.Debug("analysis completed",
		"items", result.Summary.Total,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return nil
}

// resolveIndexPath makes indexPath absolute against repoRoot and canonicalizes
// it for logging. An index outside the repository is unusual (a shared index
// generated elsewhere) but not rejected outright; it's logged so an
// accidental --index pointing at the wrong tree is visible.
func resolveIndexPath(indexPath, repoRoot string, logger *slog.Logger) (string, error) {
	abs := indexPath
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(repoRoot, abs)
	}

	if !paths.IsWithinRepo(abs, repoRoot) {
		logger.Warn("index path resolves outside the repository root", "path", abs, "repoRoot", repoRoot)
		return abs, nil
	}

	canonical, err := paths.CanonicalizePath(abs, repoRoot)
	if err != nil {
		return "", fmt.Errorf("canonicalizing index path: %w", err)
	}
	logger.Debug("resolved index path", "path", canonical)
	return abs, nil
}

func newAnalyzeLogger() *slog.Logger {
	level := slogutil.LevelFromVerbosity(analyzeVerbosity, analyzeQuiet)
	if analyzeLogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return slogutil.NewLogger(os.Stderr, level)
}
