// Package index is phase one of the analysis pipeline: for each source
// file it reads the SCIP occurrence and symbol-information records and
// produces a per-file indexing state, ready for the graph builder to
// merge into the shared source graph.
package index

import "deadwood/internal/graph"

// FileState is one file's ingestion output: raw declarations plus the
// references and parameter ids gathered from it. Workers own a FileState
// exclusively until commit; nothing here is shared until CommitFileState
// runs.
type FileState struct {
	Path string

	// Declarations are raw, not-yet-deduped declarations discovered in
	// this file, keyed by their dedup key so multiple index records for
	// the same logical entity (extensions, accessors, cgo-bridged
	// members) can be merged before the graph ever sees them.
	Declarations map[dedupKey]*graph.Declaration

	// PendingChildren maps a parent symbol id to the raw declarations that
	// name it as their enclosing symbol; resolved once all files commit
	// (internal/graph builder phase).
	PendingChildren map[string][]*graph.Declaration

	// Dangling holds references whose referencer could not be determined
	// at ingest time.
	Dangling []*graph.Reference

	// ParameterSymbols records symbol ids identified as function
	// parameters, so their own declarations are dropped.
	ParameterSymbols map[string]struct{}

	// Imports records this file's import statements, gathered from
	// occurrences carrying SCIP's RoleImport flag, for the unused-import
	// analyzer.
	Imports []ImportRecord
}

// ImportRecord is one import statement, as recorded from a SCIP occurrence
// with SymbolRoles carrying RoleImport.
type ImportRecord struct {
	Package  string
	Location graph.Location
}

// dedupKey is the (kind, name, is-implicit, is-cgo-accessible, location)
// tuple two index records must share to collapse into one declaration.
type dedupKey struct {
	kind       graph.DeclKind
	name       string
	isImplicit bool
	isCgo      bool
	loc        graph.Location
}

// NewFileState allocates an empty state for path.
func NewFileState(path string) *FileState {
	return &FileState{
		Path:             path,
		Declarations:     make(map[dedupKey]*graph.Declaration),
		PendingChildren:  make(map[string][]*graph.Declaration),
		ParameterSymbols: make(map[string]struct{}),
	}
}
