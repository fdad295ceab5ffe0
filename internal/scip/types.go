// Package scip loads SCIP protobuf indexes and exposes the subset of the
// format the ingestor needs: documents, occurrences, and relationships.
package scip

// SymbolRole mirrors the SCIP occurrence role bitset.
type SymbolRole int32

const (
	RoleDefinition        SymbolRole = 1
	RoleImport            SymbolRole = 2
	RoleWriteAccess       SymbolRole = 4
	RoleReadAccess        SymbolRole = 8
	RoleGenerated         SymbolRole = 16
	RoleTest              SymbolRole = 32
	RoleForwardDefinition SymbolRole = 64
)

func (r SymbolRole) Has(flag SymbolRole) bool { return r&flag != 0 }

// Location is a half-open source range, 0-indexed as SCIP emits it.
type Location struct {
	StartLine   int32
	StartColumn int32
	EndLine     int32
	EndColumn   int32
}

// Relationship is an edge from one symbol to another carried in a
// SymbolInformation record. SCIP's four boolean flags are the only
// structural signal the compiler emits; the ingestor (internal/index)
// turns a relationship flagged as an implementation or a type definition
// into a related reference and one flagged as a reference into a plain
// reference. No other relation is derived from these flags.
type Relationship struct {
	Symbol           string
	IsReference      bool
	IsImplementation bool
	IsTypeDefinition bool
	IsDefinition     bool
}

// SymbolInformation carries the declaration-level facts SCIP records once
// per symbol, independent of how many times it's occurred in a document.
type SymbolInformation struct {
	Symbol          string
	DisplayName     string
	Documentation   []string
	EnclosingSymbol string
	Relationships   []*Relationship
}

// Occurrence is a single mention of a symbol at a location within a document.
type Occurrence struct {
	Symbol         string
	Range          Location
	SymbolRoles    SymbolRole
	EnclosingRange *Location
}

// Document is one source file's worth of SCIP records.
type Document struct {
	RelativePath string
	Language     string
	Occurrences  []*Occurrence
	Symbols      []*SymbolInformation
}

// ToolInfo identifies the indexer that produced an Index.
type ToolInfo struct {
	Name      string
	Version   string
	Arguments []string
}

// Metadata is the SCIP index header.
type Metadata struct {
	ProjectRoot string
	ToolInfo    *ToolInfo
}
