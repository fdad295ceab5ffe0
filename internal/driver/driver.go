// Package driver wires the analysis phases together: it loads a SCIP
// index, fans ingestion out across a bounded worker pool (grounded on the
// pack's errgroup.WithContext fan-out pattern, see onedusk-pd's
// internal/orchestrator/fanout.go), commits the results into one shared
// graph, applies syntax enrichment file by file, reconciles references,
// runs the mutation-pass pipeline, and collects the reported findings.
package driver

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	deadwooderrors "deadwood/internal/errors"
	"deadwood/internal/config"
	"deadwood/internal/deadcode"
	"deadwood/internal/enrich"
	"deadwood/internal/graph"
	"deadwood/internal/index"
	"deadwood/internal/passes"
	"deadwood/internal/paths"
	"deadwood/internal/reconcile"
	"deadwood/internal/scip"
	"deadwood/internal/slogutil"
	"deadwood/internal/syntax"
)

// Options configures one analysis run, layering CLI-provided scope on top
// of the loaded configuration.
type Options struct {
	IndexPath string
	RepoRoot  string
	Config    *config.Config

	// IncludeUnexported reports unexported declarations too, a
	// collector-only knob layered on top of the pass pipeline's own
	// retention policy (the "--unexported" CLI flag).
	IncludeUnexported bool

	// Logger receives non-fatal diagnostics raised during the run (per-file
	// syntax failures). Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// Run executes the full pipeline against a single loaded SCIP index and
// returns the collected result.
func Run(ctx context.Context, opts Options) (*deadcode.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	idx, err := scip.Load(opts.IndexPath)
	if err != nil {
		return nil, err
	}

	g := graph.New()

	if err := ingestAndCommit(ctx, g, idx); err != nil {
		return nil, err
	}

	g.EstablishHierarchy()

	enrichSyntax(ctx, g, idx, opts.Config, opts.RepoRoot, slogutil.WithPhase(logger, "enrich"))

	if err := reconcile.Latent(ctx, g); err != nil {
		return nil, deadwooderrors.New(deadwooderrors.InternalError, "reference reconciliation failed", err)
	}
	if err := reconcile.Dangling(ctx, g); err != nil {
		return nil, deadwooderrors.New(deadwooderrors.InternalError, "reference reconciliation failed", err)
	}

	passes.Run(g, passOptionsFrom(opts.Config))

	collectLogger := slogutil.WithPhase(logger, "collect")
	collectOpts := deadcode.Options{
		IncludeUnexported: opts.IncludeUnexported,
		Exclude:           opts.Config.DeadCode.Exclude,
		Scope:             opts.Config.DeadCode.Scope,
	}
	result := deadcode.Collect(g, collectOpts)
	collectLogger.Debug("collection complete", "items", result.Summary.Total)
	return result, nil
}

// ingestAndCommit runs one indexing worker per relative path, ingesting
// every document recorded for that path so build-tag variants of the same
// file merge before commit.
func ingestAndCommit(ctx context.Context, g *graph.Graph, idx *scip.Index) error {
	byPath := make(map[string][]*scip.Document)
	for _, doc := range idx.Documents {
		byPath[doc.RelativePath] = append(byPath[doc.RelativePath], doc)
	}

	relPaths := make([]string, 0, len(byPath))
	for path := range byPath {
		relPaths = append(relPaths, path)
	}

	results := make([]*index.FileState, len(relPaths))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range relPaths {
		docs := byPath[path]
		group.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			states := make([]*index.FileState, len(docs))
			for j, doc := range docs {
				states[j] = index.IngestDocument(doc)
			}
			results[i] = index.MergeFileStates(states)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return deadwooderrors.New(deadwooderrors.InternalError, "index ingestion failed", err)
	}

	for _, st := range results {
		if st != nil {
			index.CommitFileState(g, st)
		}
	}
	return nil
}

// enrichSyntax visits every indexed source file with the tree-sitter walker
// and applies the results onto the graph. A file's SCIP-relative path is
// joined against repoRoot before opening it, so enrichment does not depend
// on the process's working directory matching the repository.
//
// A parser failure on one file never aborts the run: it is logged as a
// SyntaxFailure and every declaration already committed for that file is
// retained, so a file the visitor can't read is treated as "unknown, assume
// live" rather than risking a false-positive dead report.
func enrichSyntax(ctx context.Context, g *graph.Graph, idx *scip.Index, cfg *config.Config, repoRoot string, logger *slog.Logger) {
	visitor := syntax.NewVisitor()
	enrichOpts := enrich.Options{IgnoreCommentCommands: cfg.DeadCode.IgnoreCommentCommands}

	for _, doc := range idx.Documents {
		absPath := paths.JoinRepoPath(repoRoot, doc.RelativePath)
		fe, err := visitor.VisitFile(ctx, absPath)
		if err != nil {
			syntaxErr := deadwooderrors.New(deadwooderrors.SyntaxFailure, "parsing "+doc.RelativePath, err)
			logger.Warn("syntax enrichment failed, retaining file's declarations", "error", syntaxErr.Error())
			retainFileDeclarations(g, doc.RelativePath)
			continue
		}
		enrich.ApplyFile(g, fe, enrichOpts)
	}
}

// retainFileDeclarations marks every declaration whose location is in
// relativePath as retained, the conservative fallback applied when that
// file's syntax enrichment fails.
func retainFileDeclarations(g *graph.Graph, relativePath string) {
	for _, d := range g.All() {
		if d.Location.File == relativePath {
			d.Retain("syntax-failure-fallback")
		}
	}
}

func passOptionsFrom(cfg *config.Config) passes.Options {
	return passes.Options{
		RetainPublic:                cfg.DeadCode.RetainPublic,
		RetainCgoAccessible:         cfg.DeadCode.RetainCgoExported,
		RetainAssignOnlyProperties:  cfg.DeadCode.RetainAssignOnlyProperties,
		RetainUnusedInterfaceParams: cfg.DeadCode.RetainUnusedInterfaceParams,
		ExternalMarshalerInterfaces: cfg.DeadCode.ExternalMarshalerInterfaces,
	}
}
