package graph

// AddPendingChildren records that the raw declarations in children named
// parentSymbol as their enclosing symbol at ingest time. Resolution is
// deferred until every file has committed, since the parent declaration
// may live in a different file.
func (g *Graph) AddPendingChildren(parentSymbol string, children []*Declaration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pendingChildren == nil {
		g.pendingChildren = make(map[string][]*Declaration)
	}
	g.pendingChildren[parentSymbol] = append(g.pendingChildren[parentSymbol], children...)
}

// EstablishHierarchy resolves every pending parent-symbol -> children
// mapping recorded during ingest: a declaration bearing that symbol id
// becomes the parent of each child; if no such declaration exists and the
// symbol was recorded as a function parameter, the children are discarded
// (synthesized accessors of a parameter are uninteresting); otherwise they
// remain top-level.
func (g *Graph) EstablishHierarchy() {
	g.mu.Lock()
	pending := g.pendingChildren
	g.pendingChildren = nil
	g.mu.Unlock()

	for parentSymbol, children := range pending {
		parent := g.BySymbol(parentSymbol)
		if parent != nil {
			for _, child := range children {
				g.AttachChild(parent, child)
			}
			continue
		}
		if g.IsParameterSymbol(parentSymbol) {
			g.discardDeclarations(children)
			continue
		}
		// Orphan: remains top-level, i.e. no parent is ever set.
	}
}

// discardDeclarations removes decls from the graph's indexes entirely, so
// neither the result emitter nor any pass ever observes them.
func (g *Graph) discardDeclarations(decls []*Declaration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, d := range decls {
		if len(d.SymbolIDs) > 0 {
			if existing, ok := g.bySymbol[d.SymbolIDs[0]]; ok && existing == d.ID {
				for _, sym := range d.SymbolIDs {
					delete(g.bySymbol, sym)
				}
				delete(g.byLocation, d.Location)
			}
		}
		if int(d.ID) >= 1 && int(d.ID) <= len(g.decls) {
			g.decls[d.ID-1] = nil
		}
	}
}
