package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"deadwood/internal/deadcode"
)

// OutputFormat is the output rendering mode.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// ProvenanceCLI is the run-metadata envelope wrapping every response, kept
// deliberately small: a stamped run id plus how long the run took.
type ProvenanceCLI struct {
	RunID           string `json:"runId"`
	QueryDurationMs int64  `json:"queryDurationMs"`
}

// Response is the top-level CLI output shape.
type Response struct {
	Result     *deadcode.Result `json:"result"`
	Provenance *ProvenanceCLI   `json:"provenance,omitempty"`

	// baseline holds the set of item keys (see baselineKey) also present
	// in a prior run loaded via --baseline. Unexported, so it is never
	// serialized; it exists only to drive formatHuman's change markers.
	baseline map[string]bool
}

// FormatResponse renders resp in the requested format.
func FormatResponse(resp *Response, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp *Response) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp *Response) (string, error) {
	var b strings.Builder

	b.WriteString("Dead Code Analysis\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	items := resp.Result.Items
	if len(items) == 0 {
		b.WriteString("No unused declarations found.\n")
		return b.String(), nil
	}

	byCategory := make(map[deadcode.Category][]deadcode.Item)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	for _, category := range []deadcode.Category{
		deadcode.CategoryUnusedDeclaration,
		deadcode.CategoryUnusedParameter,
		deadcode.CategoryRedundantConformance,
		deadcode.CategoryRedundantPublicAccessibility,
		deadcode.CategoryAssignOnlyProperty,
		deadcode.CategoryUnusedImport,
	} {
		group := byCategory[category]
		if len(group) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s (%d):\n\n", categoryTitle(category), len(group)))
		for _, item := range group {
			marker := changeMarker(resp.baseline, item)
			b.WriteString(fmt.Sprintf("  %s %s %s\n", marker, item.Kind, item.Name))
			b.WriteString(fmt.Sprintf("    %s:%d:%d\n", item.File, item.Line, item.Column))
			if item.Detail != "" {
				b.WriteString(fmt.Sprintf("    %s\n", item.Detail))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("Summary:\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(fmt.Sprintf("  Total: %d\n", resp.Result.Summary.Total))
	for kind, count := range resp.Result.Summary.ByKind {
		b.WriteString(fmt.Sprintf("  %s: %d\n", kind, count))
	}

	if resp.Provenance != nil {
		b.WriteString(fmt.Sprintf("\nRun %s (%dms)\n", resp.Provenance.RunID, resp.Provenance.QueryDurationMs))
	}

	return b.String(), nil
}

func categoryTitle(c deadcode.Category) string {
	switch c {
	case deadcode.CategoryUnusedDeclaration:
		return "Unused declarations"
	case deadcode.CategoryUnusedParameter:
		return "Unused parameters"
	case deadcode.CategoryRedundantConformance:
		return "Redundant interface conformances"
	case deadcode.CategoryRedundantPublicAccessibility:
		return "Exported but package-local only"
	case deadcode.CategoryAssignOnlyProperty:
		return "Assigned but never read"
	case deadcode.CategoryUnusedImport:
		return "Unused imports"
	default:
		return string(c)
	}
}

// changeMarker returns "+" for an item absent from the baseline, "=" for
// one present in both. When no baseline was loaded every item is new.
func changeMarker(baseline map[string]bool, item deadcode.Item) string {
	if baseline != nil && baseline[baselineKey(item)] {
		return "="
	}
	return "+"
}

// applyBaseline loads a prior JSON result set and records which items also
// appear in it, so formatHuman can distinguish newly-introduced findings
// from ones already known about. This is a CLI-only concern: it never
// touches the graph or the pass pipeline.
func applyBaseline(resp *Response, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var prior Response
	if err := json.Unmarshal(data, &prior); err != nil {
		return err
	}
	if prior.Result == nil {
		return nil
	}

	seen := make(map[string]bool, len(prior.Result.Items))
	for _, item := range prior.Result.Items {
		seen[baselineKey(item)] = true
	}
	resp.baseline = seen
	return nil
}

func baselineKey(item deadcode.Item) string {
	return string(item.Category) + "|" + item.File + "|" + item.Name + "|" + item.Detail
}
