package driver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"deadwood/internal/config"
	"deadwood/internal/graph"
	"deadwood/internal/scip"
)

func TestIngestAndCommitBuildsGraph(t *testing.T) {
	idx := &scip.Index{
		Documents: []*scip.Document{
			{
				RelativePath: "widget.go",
				Symbols: []*scip.SymbolInformation{
					{Symbol: "scip-go gomod m v1 `m/pkg`/Widget#Do().", DisplayName: "Do"},
				},
				Occurrences: []*scip.Occurrence{
					{
						Symbol:      "scip-go gomod m v1 `m/pkg`/Widget#Do().",
						Range:       scip.Location{StartLine: 10, StartColumn: 1, EndLine: 10, EndColumn: 5},
						SymbolRoles: scip.RoleDefinition,
					},
				},
			},
		},
	}

	g := graph.New()
	if err := ingestAndCommit(context.Background(), g, idx); err != nil {
		t.Fatalf("ingestAndCommit returned error: %v", err)
	}

	found := false
	for _, d := range g.All() {
		if d.Name == "Do" {
			found = true
		}
	}
	if !found {
		t.Error("expected the Do declaration to be committed to the graph")
	}
}

func TestIngestAndCommitMergesMultipleDocumentsForSamePath(t *testing.T) {
	idx := &scip.Index{
		Documents: []*scip.Document{
			{
				RelativePath: "widget.go",
				Symbols: []*scip.SymbolInformation{
					{Symbol: "scip-go gomod m v1 `m/pkg`/Widget#Do().", DisplayName: "Do"},
				},
				Occurrences: []*scip.Occurrence{
					{
						Symbol:      "scip-go gomod m v1 `m/pkg`/Widget#Do().",
						Range:       scip.Location{StartLine: 10, StartColumn: 1, EndLine: 10, EndColumn: 5},
						SymbolRoles: scip.RoleDefinition,
					},
				},
			},
			{
				RelativePath: "widget.go",
				Symbols: []*scip.SymbolInformation{
					{Symbol: "scip-go gomod m v1 `m/pkg`/Widget#Do().", DisplayName: "Do"},
				},
				Occurrences: []*scip.Occurrence{
					{
						Symbol:      "scip-go gomod m v1 `m/pkg`/Widget#Do().",
						Range:       scip.Location{StartLine: 10, StartColumn: 1, EndLine: 10, EndColumn: 5},
						SymbolRoles: scip.RoleDefinition,
					},
				},
			},
		},
	}

	g := graph.New()
	if err := ingestAndCommit(context.Background(), g, idx); err != nil {
		t.Fatalf("ingestAndCommit returned error: %v", err)
	}

	count := 0
	for _, d := range g.All() {
		if d.Name == "Do" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected build-tag-variant documents for the same path to merge into one declaration, got %d", count)
	}
}

func TestEnrichSyntaxRetainsDeclarationsOnParseFailure(t *testing.T) {
	idx := &scip.Index{
		Documents: []*scip.Document{
			{
				RelativePath: "missing.go",
				Symbols: []*scip.SymbolInformation{
					{Symbol: "scip-go gomod m v1 `m/pkg`/Widget#Do().", DisplayName: "Do"},
				},
				Occurrences: []*scip.Occurrence{
					{
						Symbol:      "scip-go gomod m v1 `m/pkg`/Widget#Do().",
						Range:       scip.Location{StartLine: 10, StartColumn: 1, EndLine: 10, EndColumn: 5},
						SymbolRoles: scip.RoleDefinition,
					},
				},
			},
		},
	}

	g := graph.New()
	if err := ingestAndCommit(context.Background(), g, idx); err != nil {
		t.Fatalf("ingestAndCommit returned error: %v", err)
	}
	g.EstablishHierarchy()

	cfg := config.DefaultConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// "missing.go" does not exist on disk under a nonexistent repo root, so
	// the tree-sitter visitor fails to open it; enrichSyntax must fall back
	// to retaining every declaration it already committed for that file.
	enrichSyntax(context.Background(), g, idx, cfg, "/nonexistent-repo-root", logger)

	for _, d := range g.All() {
		if d.Name == "Do" && !d.Retained {
			t.Error("expected Do's declaration to be retained after its file failed to parse")
		}
	}
}

func TestPassOptionsFromMapsConfigFields(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DeadCode.RetainPublic = true
	cfg.DeadCode.RetainCgoExported = true

	opts := passOptionsFrom(cfg)

	if !opts.RetainPublic {
		t.Error("expected RetainPublic to carry over from config")
	}
	if !opts.RetainCgoAccessible {
		t.Error("expected RetainCgoExported to map onto RetainCgoAccessible")
	}
}
