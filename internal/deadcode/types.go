// Package deadcode is the result collector of the mutation-pass pipeline
// (internal/passes): it enumerates declarations left neither retained nor
// live once every pass has run, classifies why each is reported, and hands
// the list to cmd/deadwood for formatting.
package deadcode

// Category classifies why a declaration was reported.
type Category string

const (
	// CategoryUnusedDeclaration means the declaration is unreachable from
	// any retained declaration.
	CategoryUnusedDeclaration Category = "unused_declaration"

	// CategoryRedundantPublicAccessibility means the declaration is
	// exported but every use of it stays within its own package, so its
	// accessibility could be lowered without changing behavior.
	CategoryRedundantPublicAccessibility Category = "redundant_public_accessibility"

	// CategoryUnusedParameter means a function parameter is never read in
	// its function's body.
	CategoryUnusedParameter Category = "unused_parameter"

	// CategoryRedundantConformance means a declaration structurally
	// satisfies an interface that is never itself used as a type.
	CategoryRedundantConformance Category = "redundant_conformance"

	// CategoryUnusedImport means an import's package is never referenced
	// from its file.
	CategoryUnusedImport Category = "unused_import"

	// CategoryAssignOnlyProperty means a struct field is only ever
	// assigned to and never read, so the assignment has no observable
	// effect.
	CategoryAssignOnlyProperty Category = "assign_only_property"
)

// Item is one reported finding.
type Item struct {
	SymbolID string   `json:"symbolId,omitempty"`
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Category Category `json:"category"`
	Detail   string   `json:"detail,omitempty"`
}

// Summary aggregates a Result's items.
type Summary struct {
	Total      int            `json:"total"`
	ByKind     map[string]int `json:"byKind"`
	ByCategory map[string]int `json:"byCategory"`
}

// Result is the full output of one analysis run.
type Result struct {
	Items   []Item  `json:"items"`
	Summary Summary `json:"summary"`
}

// Options configures collection, layered on top of the pass pipeline's own
// retention policy: these knobs decide what gets reported, not what gets
// retained.
type Options struct {
	// IncludeUnexported reports unexported declarations. Exported
	// declarations are always eligible; unexported ones are opt-in
	// because most callers scope an initial pass to their public surface.
	IncludeUnexported bool

	// Exclude holds glob patterns matched against a declaration's file
	// path or name, applied after classification.
	Exclude []string

	// Scope, when non-empty, restricts reporting to declarations whose
	// file path has one of these prefixes.
	Scope []string
}
