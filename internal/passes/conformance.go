package passes

import "deadwood/internal/graph"

// InterfaceConformanceExtender exploits the `IsImplementation` relationship
// scip-go already emits per implementing method, pointing at the interface
// method it satisfies; the ingestor (internal/index) turns that into a
// related reference from the concrete method to the interface method. This
// pass adds the reciprocal edge, from the interface method to the concrete
// method, so that a use of the interface member propagates liveness to
// every concrete implementation: if a type conforms to an interface and a
// method of that interface is used, the type's implementation of that
// method is live.
func InterfaceConformanceExtender(g *graph.Graph) {
	for _, d := range g.All() {
		for _, ref := range d.RelatedReferences {
			if ref.Kind != graph.KindInterface {
				continue
			}
			iface := g.BySymbol(ref.SymbolID)
			if iface == nil || iface == d {
				continue
			}
			addReciprocal(g, iface, d)
		}
	}
}

func addReciprocal(g *graph.Graph, from, to *graph.Declaration) {
	toSymbol := to.PrimarySymbolID()
	if toSymbol == "" {
		return
	}
	for _, existing := range from.RelatedReferences {
		if existing.SymbolID == toSymbol {
			return
		}
	}
	ref := &graph.Reference{
		Kind:      to.Kind,
		SymbolID:  toSymbol,
		Location:  to.Location,
		Name:      to.Name,
		Role:      graph.RolePlainUse,
		IsRelated: true,
	}
	g.AttachReference(from, ref)
}
