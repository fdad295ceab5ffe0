package deadcode

import (
	"path/filepath"
	"strings"

	"deadwood/internal/graph"
)

// ExclusionRules determines which declarations are skipped before
// classification, the pre-filter the "--exclude" flag layers on top of the
// pass pipeline's own retention policy.
type ExclusionRules struct {
	patterns []string
}

// NewExclusionRules creates exclusion rules with the given patterns.
func NewExclusionRules(patterns []string) *ExclusionRules {
	return &ExclusionRules{
		patterns: patterns,
	}
}

// SymbolInfo is the subset of a declaration's shape exclusion checking
// needs, decoupled from graph.Declaration so rules stay testable without a
// graph.
type SymbolInfo struct {
	Name          string
	Kind          string
	FilePath      string
	Documentation string
	Tags          string // struct field tags
	Exported      bool
}

// symbolInfoFor projects a declaration into a SymbolInfo.
func symbolInfoFor(d *graph.Declaration) SymbolInfo {
	return SymbolInfo{
		Name:     d.Name,
		Kind:     d.Kind.String(),
		FilePath: d.Location.File,
		Tags:     d.DeclaredType,
		Exported: d.Accessibility >= graph.AccessPublic,
	}
}

// ShouldExclude returns a reason if the symbol should be excluded, or empty string if not.
func (r *ExclusionRules) ShouldExclude(sym SymbolInfo) string {
	// 0. Declarations defined in a test file are exercised by the test
	// suite itself, not by production callers; report only production
	// dead code.
	if IsTestFile(sym.FilePath) {
		return "test file"
	}

	// 1. Main and init functions are entry points
	if sym.Name == "main" || sym.Name == "init" {
		return "entry point function"
	}

	// 2. Test functions and benchmarks
	if strings.HasPrefix(sym.Name, "Test") || strings.HasPrefix(sym.Name, "Benchmark") {
		return "test or benchmark function"
	}

	// 3. Example functions (for godoc)
	if strings.HasPrefix(sym.Name, "Example") {
		return "example function for documentation"
	}

	// 4. Interface implementation markers (common pattern: var _ Interface = (*Type)(nil))
	if strings.HasPrefix(sym.Name, "_") && sym.Kind == "variable-global" {
		return "interface implementation check"
	}

	// 5. Serialization fields (JSON, XML, YAML, etc.)
	if sym.Kind == "variable-instance" && hasSerializationTag(sym.Tags) {
		return "has serialization tag"
	}

	// 6. CGo exports
	if strings.Contains(sym.Documentation, "//export ") {
		return "CGo export directive"
	}

	// 7. Common interface implementations
	if isCommonInterfaceMethod(sym.Name, sym.Kind) {
		return "common interface implementation"
	}

	// 8. Generated file patterns
	if isGeneratedFile(sym.FilePath) {
		return "generated file"
	}

	// 9. User-defined exclusion patterns
	for _, pattern := range r.patterns {
		// Try matching against file path
		if matched, _ := filepath.Match(pattern, sym.FilePath); matched {
			return "matches exclusion pattern: " + pattern
		}
		// Try matching against symbol name
		if matched, _ := filepath.Match(pattern, sym.Name); matched {
			return "matches exclusion pattern: " + pattern
		}
		// Try matching against each enclosing directory, so "vendor/*"
		// also covers files nested deeper than one level under vendor/
		for dir := filepath.Dir(sym.FilePath); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
			if matched, _ := filepath.Match(pattern, dir); matched {
				return "matches exclusion pattern: " + pattern
			}
		}
		// Handle ** patterns with simple contains check
		if strings.Contains(pattern, "**") {
			simplified := strings.ReplaceAll(pattern, "**", "")
			simplified = strings.ReplaceAll(simplified, "*", "")
			if simplified != "" && strings.Contains(sym.FilePath, simplified) {
				return "matches exclusion pattern: " + pattern
			}
		}
	}

	return ""
}

// hasSerializationTag checks if a struct field has serialization tags.
func hasSerializationTag(tags string) bool {
	if tags == "" {
		return false
	}

	serializationTags := []string{
		`json:"`,
		`xml:"`,
		`yaml:"`,
		`toml:"`,
		`mapstructure:"`,
		`bson:"`,
		`protobuf:"`,
		`msgpack:"`,
		`db:"`,
		`sql:"`,
		`gorm:"`,
		`validate:"`,
		`binding:"`,
		`form:"`,
		`query:"`,
		`param:"`,
		`header:"`,
	}

	for _, tag := range serializationTags {
		if strings.Contains(tags, tag) {
			return true
		}
	}
	return false
}

// isCommonInterfaceMethod checks if a method is a common interface implementation.
func isCommonInterfaceMethod(name, kind string) bool {
	if kind != "method-instance" && kind != "method-pointer-receiver" {
		return false
	}

	// Common Go interfaces that are often implemented
	commonMethods := map[string]bool{
		// fmt.Stringer
		"String": true,
		// error interface
		"Error": true,
		// io.Reader/Writer/Closer
		"Read":  true,
		"Write": true,
		"Close": true,
		// io.Seeker
		"Seek": true,
		// sort.Interface
		"Len":  true,
		"Less": true,
		"Swap": true,
		// encoding.TextMarshaler/Unmarshaler
		"MarshalText":   true,
		"UnmarshalText": true,
		// encoding.BinaryMarshaler/Unmarshaler
		"MarshalBinary":   true,
		"UnmarshalBinary": true,
		// json.Marshaler/Unmarshaler
		"MarshalJSON":   true,
		"UnmarshalJSON": true,
		// sql.Scanner/driver.Valuer
		"Scan":  true,
		"Value": true,
		// context.Context methods
		"Deadline": true,
		"Done":     true,
		"Err":      true,
		// http.Handler
		"ServeHTTP": true,
		// flag.Value
		"Set": true,
		// driver interfaces
		"Open":    true,
		"Prepare": true,
		"Begin":   true,
		"Commit":  true,
		// gRPC interfaces
		"Invoke":    true,
		"NewStream": true,
	}

	return commonMethods[name]
}

// isGeneratedFile checks if a file is likely generated.
func isGeneratedFile(path string) bool {
	// Common generated file patterns
	generatedPatterns := []string{
		"_generated.go",
		"_gen.go",
		".pb.go",
		".pb.gw.go",
		"_string.go",
		"_enumer.go",
		"mock_",
		"mocks/",
		"generated/",
		"zz_generated",
		"_easyjson.go",
		"_ffjson.go",
		"bindata.go",
		"wire_gen.go",
		"ent/",
		"sqlc/",
	}

	pathLower := strings.ToLower(path)
	for _, pattern := range generatedPatterns {
		if strings.Contains(pathLower, pattern) {
			return true
		}
	}

	return false
}

// IsTestFile checks if a file path is a test file.
func IsTestFile(path string) bool {
	if strings.HasSuffix(path, "_test.go") {
		return true
	}

	if strings.HasPrefix(path, "testdata/") || strings.Contains(path, "/testdata/") {
		return true
	}

	return false
}
