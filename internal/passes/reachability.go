package passes

import "deadwood/internal/graph"

// TransitiveReachability computes the live set: starting from every
// retained declaration, it closes over outgoing references (both plain
// and related), marking every declaration reached along the way live.
func TransitiveReachability(g *graph.Graph) {
	all := g.All()

	var queue []*graph.Declaration
	for _, d := range all {
		if d.Retained {
			d.Live = true
			queue = append(queue, d)
		}
	}

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		for _, ref := range append(append([]*graph.Reference{}, d.References...), d.RelatedReferences...) {
			target := g.BySymbol(ref.SymbolID)
			if target == nil || target.Live {
				continue
			}
			target.Live = true
			queue = append(queue, target)
		}
	}
}
