package graph

import "sync"

// Graph is the process-wide source graph. It owns every Declaration in
// contiguous storage and indexes them by symbol-id and by location.
// Ingestion workers accumulate mutations in their own per-file buffers and
// commit them here under Graph.mu, so ingestion locks on commit rather than
// on every edge insertion; AttachReference, which the reconcile worker
// pools call concurrently, takes Graph.mu for each reference it attaches.
type Graph struct {
	mu sync.Mutex

	decls []*Declaration

	bySymbol   map[string]DeclID
	byLocation map[Location]DeclID

	// referencesBySymbol buckets references whose referencer symbol was not
	// yet resolvable to a declaration at ingest time, keyed by the
	// referencer's symbol id. The reference reconciler drains this.
	referencesBySymbol map[string][]*Reference

	// dangling holds references discarded from referencesBySymbol because
	// no relation attributed them to a referencer at all; the location
	// heuristic in internal/reconcile resolves these.
	dangling []*Reference

	// parameterSymbolIDs records symbol ids the ingestor identified as
	// function parameters, so orphaned children of a discarded parameter
	// declaration can themselves be discarded (see EstablishHierarchy).
	parameterSymbolIDs map[string]struct{}

	// pendingChildren maps a parent symbol id to raw declarations naming it
	// as their enclosing symbol, drained by EstablishHierarchy after every
	// file has committed.
	pendingChildren map[string][]*Declaration

	imports       []Import
	unusedImports []Import
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		bySymbol:           make(map[string]DeclID),
		byLocation:         make(map[Location]DeclID),
		referencesBySymbol: make(map[string][]*Reference),
		parameterSymbolIDs: make(map[string]struct{}),
	}
}

// AddDeclaration commits a raw declaration to the graph, assigning it a
// stable DeclID. Callers hold no lock; AddDeclaration takes Graph.mu.
func (g *Graph) AddDeclaration(d *Declaration) DeclID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := DeclID(len(g.decls) + 1)
	d.ID = id
	g.decls = append(g.decls, d)

	for _, sym := range d.SymbolIDs {
		g.bySymbol[sym] = id
	}
	g.byLocation[d.Location] = id
	return id
}

// MarkParameterSymbol records that sym names a function parameter.
func (g *Graph) MarkParameterSymbol(sym string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.parameterSymbolIDs[sym] = struct{}{}
}

// IsParameterSymbol reports whether sym was recorded as a parameter.
func (g *Graph) IsParameterSymbol(sym string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.parameterSymbolIDs[sym]
	return ok
}

// EnqueueReference buckets a reference under its referencer symbol id, to
// be attached to a declaration by the latent-reconciliation subpass.
func (g *Graph) EnqueueReference(referencerSymbol string, ref *Reference) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.referencesBySymbol[referencerSymbol] = append(g.referencesBySymbol[referencerSymbol], ref)
}

// EnqueueDangling adds ref to the dangling list for location-based
// reconciliation.
func (g *Graph) EnqueueDangling(ref *Reference) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dangling = append(g.dangling, ref)
}

// ByID returns the declaration for id, or nil.
func (g *Graph) ByID(id DeclID) *Declaration {
	if id <= 0 || int(id) > len(g.decls) {
		return nil
	}
	return g.decls[id-1]
}

// BySymbol returns the declaration owning sym, or nil.
func (g *Graph) BySymbol(sym string) *Declaration {
	g.mu.Lock()
	id, ok := g.bySymbol[sym]
	g.mu.Unlock()
	if !ok {
		return nil
	}
	return g.ByID(id)
}

// ByLocation returns the declaration at loc, or nil.
func (g *Graph) ByLocation(loc Location) *Declaration {
	g.mu.Lock()
	id, ok := g.byLocation[loc]
	g.mu.Unlock()
	if !ok {
		return nil
	}
	return g.ByID(id)
}

// All returns every declaration in the graph, in commit order. The result
// must not be mutated; the graph continues to own the slice's backing
// array's elements (though not the slice header itself).
func (g *Graph) All() []*Declaration {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Declaration, 0, len(g.decls))
	for _, d := range g.decls {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// PendingReferenceBuckets drains and returns the referencer-symbol-keyed
// reference buckets, for the latent reconciliation subpass.
func (g *Graph) PendingReferenceBuckets() map[string][]*Reference {
	g.mu.Lock()
	defer g.mu.Unlock()
	buckets := g.referencesBySymbol
	g.referencesBySymbol = make(map[string][]*Reference)
	return buckets
}

// PendingDangling drains and returns the dangling reference list.
func (g *Graph) PendingDangling() []*Reference {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.dangling
	g.dangling = nil
	return out
}

// AttachReference appends ref to decl, as related or plain per ref.IsRelated,
// and sets ref's parent to decl's id. This is the sole mutation point that
// establishes the "reference's parent equals the owning declaration"
// invariant the analyzer must preserve end to end.
func (g *Graph) AttachReference(decl *Declaration, ref *Reference) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ref.ParentDecl = decl.ID
	if ref.IsRelated {
		decl.RelatedReferences = append(decl.RelatedReferences, ref)
	} else {
		decl.References = append(decl.References, ref)
	}
}

// AttachChild sets parent as child's parent and appends child to parent's
// children.
func (g *Graph) AttachChild(parent, child *Declaration) {
	child.Parent = parent.ID
	parent.Children = append(parent.Children, child.ID)
}

// ExplicitDeclarations returns every non-implicit declaration, the universe
// the result emitter and several passes iterate.
func (g *Graph) ExplicitDeclarations() []*Declaration {
	all := g.All()
	out := all[:0:0]
	for _, d := range all {
		if !d.IsImplicit {
			out = append(out, d)
		}
	}
	return out
}
