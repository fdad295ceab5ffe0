// Package graph holds the declaration/reference source graph: the
// process-wide, in-memory model the mutation passes read and mutate.
//
// The graph is cyclic (parent<->child, conformance<->conformer), so nodes
// are addressed by stable integer handles into contiguous storage rather
// than by pointer; edges between declarations are handles, never owning
// references. This sidesteps cycle-aware reference counting entirely.
package graph

// Location is a source position: file plus a 0-indexed line/column pair,
// matching the SCIP convention the ingestor reads from.
type Location struct {
	File        string
	StartLine   int32
	StartColumn int32
	EndLine     int32
	EndColumn   int32
}

// SameLine reports whether two locations start on the same file and line,
// the granularity the dangling-reference reconciler falls back to.
func (l Location) SameLine(o Location) bool {
	return l.File == o.File && l.StartLine == o.StartLine
}

// DeclID is a stable handle into Graph.decls. Zero is never a valid id;
// the zero value of DeclID means "no declaration".
type DeclID int32

// Reference is a directed use edge from a declaration to a symbol.
type Reference struct {
	Kind       RefKind
	SymbolID   string
	Location   Location
	Name       string
	Role       RefRole
	IsRelated  bool
	ParentDecl DeclID

	// IsWrite is true when the occurrence this reference was built from
	// carried SCIP's write-access role without also carrying read-access
	// (a plain assignment, not a compound one like `x += 1`).
	IsWrite bool
}

// Declaration is a named program entity, aggregating one or more SCIP
// symbol ids emitted for it (extensions, accessors, and cgo-bridged
// members are recorded under distinct ids for the same logical entity).
type Declaration struct {
	ID   DeclID
	Kind DeclKind

	SymbolIDs []string
	Location  Location
	Name      string

	Accessibility         Accessibility
	AccessibilityExplicit bool

	Attributes      map[string]struct{}
	Modifiers       map[string]struct{}
	CommentCommands []CommentCommand

	DeclaredType string
	Footprints   map[FootprintKind][]Location

	IsImplicit                            bool
	IsCgoAccessible                       bool
	HasCapitalSelfFunctionCall            bool
	HasGenericFunctionReturnedMetatype    bool

	LetShorthandIdentifiers []string

	Parent   DeclID
	Children []DeclID

	References        []*Reference
	RelatedReferences []*Reference

	UnusedParameters []string

	// WriteOnly is true for a KindVariableInstance field every reference to
	// which is a write, never a read, computed by
	// internal/passes.AccessibilityCascade.
	WriteOnly bool

	// RedundantConformanceInterfaces names interfaces this declaration
	// structurally satisfies but that are never used as a type anywhere,
	// filled by internal/passes' unused-import/redundant-conformance
	// analyzer.
	RedundantConformanceInterfaces []string

	Retained     bool
	RetainReason string

	// Live is set by internal/passes' transitive-reachability pass: true
	// for every declaration in the retained set or reachable from one by
	// following outgoing references. Distinct from Retained, which is
	// policy-driven and monotonic; Live also grows to cover ordinary
	// traversal-discovered usage.
	Live bool
}

// FootprintKind enumerates the positions where a declaration's own type
// appears syntactically, used by the syntax enrichment pass to assign
// reference roles.
type FootprintKind int

const (
	FootprintInherited FootprintKind = iota
	FootprintVarType
	FootprintReturnType
	FootprintParameterType
	FootprintGenericParameter
	FootprintGenericConformance
	FootprintVariableInitCall
	FootprintFunctionCallMetatypeArgument
)

// CommentCommand is a parsed in-source directive, e.g.
// "// deadwood:ignore-parameters(b)".
type CommentCommand struct {
	Name string
	Args []string
}

// NewDeclaration allocates a zero-value declaration ready to be committed
// to a Graph; callers set fields before calling Graph.AddDeclaration.
func NewDeclaration(kind DeclKind, loc Location) *Declaration {
	return &Declaration{
		Kind:       kind,
		Location:   loc,
		Attributes: make(map[string]struct{}),
		Modifiers:  make(map[string]struct{}),
		Footprints: make(map[FootprintKind][]Location),
	}
}

// AddSymbolID merges an additional symbol id into the declaration's set,
// implementing the "logical declaration aggregates several ids" rule.
func (d *Declaration) AddSymbolID(id string) {
	for _, existing := range d.SymbolIDs {
		if existing == id {
			return
		}
	}
	d.SymbolIDs = append(d.SymbolIDs, id)
}

// PrimarySymbolID returns the first symbol id aggregated onto this
// declaration, or "" if it has none (never true for a committed
// declaration; callers that hold an uncommitted Declaration may still see
// this before AddSymbolID runs).
func (d *Declaration) PrimarySymbolID() string {
	if len(d.SymbolIDs) == 0 {
		return ""
	}
	return d.SymbolIDs[0]
}

// Retain marks the declaration live by policy, recording why. Retention is
// monotonic: once set it is never cleared by a later pass.
func (d *Declaration) Retain(reason string) {
	d.Retained = true
	if d.RetainReason == "" {
		d.RetainReason = reason
	}
}
