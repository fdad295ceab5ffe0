// Package passes implements the fixed, ordered mutation-pass pipeline:
// each pass reads the graph and either extends it with references
// modeling a language semantic the index omits, or marks declarations
// retained. Order is authoritative; later passes depend on the graph
// shape established earlier.
package passes

import "deadwood/internal/graph"

// Options carries the recognized configuration options, one field per
// option. Each is consumed by one pass, except RetainCgoAccessible, which
// both EntryPointRetainer and UnusedParameterPass read.
type Options struct {
	RetainPublic                bool
	RetainCgoAccessible         bool
	RetainAssignOnlyProperties  bool
	RetainUnusedInterfaceParams bool
	ExternalMarshalerInterfaces []string
}

// Run executes the nine-pass pipeline against g in a fixed order: the
// first eight passes mutate the graph in place; the ninth computes
// liveness. Result emission is the responsibility of internal/deadcode,
// which runs after Run returns.
func Run(g *graph.Graph, opts Options) {
	AccessibilityCascade(g, opts)
	InterfaceConformanceExtender(g)
	EmbeddedMethodShadowingExtender(g)
	SynthesizedMemberRetainer(g, opts)
	EntryPointRetainer(g, opts)
	UnusedImportAndRedundantConformanceAnalyzer(g)
	UnusedParameterPass(g, opts)
	LetShorthandLinker(g)
	TransitiveReachability(g)
}
