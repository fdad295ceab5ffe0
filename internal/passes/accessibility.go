package passes

import "deadwood/internal/graph"

// AccessibilityCascade computes each declaration's effective accessibility
// as the minimum of its own explicit accessibility and every enclosing
// declaration's, then retains public/open declarations when
// `retain-public` is set. It also flags struct fields that are only ever
// written to and never read, retaining them when
// `retain-assign-only-properties` is set.
func AccessibilityCascade(g *graph.Graph, opts Options) {
	sawRead, sawWrite := classifyFieldAccess(g)

	for _, d := range g.All() {
		d.Accessibility = effectiveAccessibility(g, d)
		if opts.RetainPublic && (d.Accessibility == graph.AccessPublic || d.Accessibility == graph.AccessOpen) {
			d.Retain("retain-public")
		}
		if d.Kind == graph.KindVariableInstance && sawWrite[d] && !sawRead[d] {
			d.WriteOnly = true
			if opts.RetainAssignOnlyProperties {
				d.Retain("retain-assign-only-properties")
			}
		}
	}
}

// classifyFieldAccess resolves every reference in the graph against its
// target declaration, recording whether that declaration was ever read
// from or only ever written to.
func classifyFieldAccess(g *graph.Graph) (sawRead, sawWrite map[*graph.Declaration]bool) {
	sawRead = make(map[*graph.Declaration]bool)
	sawWrite = make(map[*graph.Declaration]bool)
	for _, d := range g.All() {
		for _, ref := range append(append([]*graph.Reference{}, d.References...), d.RelatedReferences...) {
			target := g.BySymbol(ref.SymbolID)
			if target == nil {
				continue
			}
			if ref.IsWrite {
				sawWrite[target] = true
			} else {
				sawRead[target] = true
			}
		}
	}
	return sawRead, sawWrite
}

func effectiveAccessibility(g *graph.Graph, d *graph.Declaration) graph.Accessibility {
	min := d.Accessibility
	cur := d.Parent
	for cur != 0 {
		parent := g.ByID(cur)
		if parent == nil {
			break
		}
		if parent.Accessibility < min {
			min = parent.Accessibility
		}
		cur = parent.Parent
	}
	return min
}
