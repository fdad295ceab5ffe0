package index

import "deadwood/internal/graph"

// MergeFileStates merges the per-document FileStates ingested for the same
// file path into one — this happens when the same file is compiled into
// multiple build targets. Declarations sharing a dedup key across
// documents union their symbol-id sets; dangling references, parameter
// symbols, and pending-children entries are concatenated.
func MergeFileStates(states []*FileState) *FileState {
	if len(states) == 0 {
		return nil
	}
	if len(states) == 1 {
		return states[0]
	}

	merged := NewFileState(states[0].Path)
	for _, st := range states {
		for key, decl := range st.Declarations {
			if existing, ok := merged.Declarations[key]; ok {
				for _, sym := range decl.SymbolIDs {
					existing.AddSymbolID(sym)
				}
				existing.References = append(existing.References, decl.References...)
				existing.RelatedReferences = append(existing.RelatedReferences, decl.RelatedReferences...)
				if decl.Retained {
					existing.Retain(decl.RetainReason)
				}
				continue
			}
			merged.Declarations[key] = decl
		}
		for parent, children := range st.PendingChildren {
			merged.PendingChildren[parent] = append(merged.PendingChildren[parent], children...)
		}
		merged.Dangling = append(merged.Dangling, st.Dangling...)
		for sym := range st.ParameterSymbols {
			merged.ParameterSymbols[sym] = struct{}{}
		}
		merged.Imports = append(merged.Imports, st.Imports...)
	}
	return merged
}

// CommitFileState commits a fully-merged FileState into the shared graph.
// It is the sole boundary at which per-file ingestion buffers, owned
// exclusively by one worker, become visible to the rest of the pipeline.
// Each graph method called here takes the graph's lock for that one call;
// ingestion itself never takes it.
func CommitFileState(g *graph.Graph, st *FileState) {
	for _, decl := range st.Declarations {
		id := g.AddDeclaration(decl)
		for _, ref := range decl.References {
			ref.ParentDecl = id
		}
		for _, ref := range decl.RelatedReferences {
			ref.ParentDecl = id
		}
	}
	for parent, children := range st.PendingChildren {
		g.AddPendingChildren(parent, children)
	}
	for _, ref := range st.Dangling {
		g.EnqueueDangling(ref)
	}
	for sym := range st.ParameterSymbols {
		g.MarkParameterSymbol(sym)
	}
	for _, imp := range st.Imports {
		g.AddImport(graph.Import{File: st.Path, Package: imp.Package, Location: imp.Location})
	}
}
