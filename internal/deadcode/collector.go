package deadcode

import (
	"path/filepath"
	"sort"
	"strings"

	"deadwood/internal/graph"
)

// Collect walks the graph after the mutation-pass pipeline has run and
// produces the reported result set. A declaration can appear under more
// than one category (e.g. an unused parameter on a live function), but
// CategoryUnusedDeclaration is mutually exclusive with liveness: an item is
// never reported as unused while also marked Retained or Live, matching the
// invariant that no declaration is both retained and reported dead.
// Redundant conformances are reported whether or not the declaration is
// live.
func Collect(g *graph.Graph, opts Options) *Result {
	rules := NewExclusionRules(opts.Exclude)

	var items []Item
	seenUnused := make(map[string]bool)

	for _, d := range g.ExplicitDeclarations() {
		if d.Retained || d.Live {
			continue
		}
		if !opts.IncludeUnexported && d.Accessibility < graph.AccessPublic {
			continue
		}
		if reason := rules.ShouldExclude(symbolInfoFor(d)); reason != "" {
			continue
		}

		id := d.PrimarySymbolID()
		if id != "" {
			if seenUnused[id] {
				continue
			}
			seenUnused[id] = true
		}

		items = append(items, itemFor(d, CategoryUnusedDeclaration, ""))
	}

	for _, d := range g.All() {
		if len(d.UnusedParameters) == 0 {
			continue
		}
		if !opts.IncludeUnexported && d.Accessibility < graph.AccessPublic {
			continue
		}
		if rules.ShouldExclude(symbolInfoFor(d)) != "" {
			continue
		}
		for _, p := range d.UnusedParameters {
			items = append(items, itemFor(d, CategoryUnusedParameter, p))
		}
	}

	for _, d := range g.All() {
		if len(d.RedundantConformanceInterfaces) == 0 {
			continue
		}
		if rules.ShouldExclude(symbolInfoFor(d)) != "" {
			continue
		}
		for _, iface := range d.RedundantConformanceInterfaces {
			items = append(items, itemFor(d, CategoryRedundantConformance, iface))
		}
	}

	for _, d := range g.All() {
		if !d.Live || d.Retained {
			continue
		}
		if d.Accessibility < graph.AccessPublic {
			continue
		}
		if !usedOnlyWithinOwnPackage(g, d) {
			continue
		}
		if rules.ShouldExclude(symbolInfoFor(d)) != "" {
			continue
		}
		items = append(items, itemFor(d, CategoryRedundantPublicAccessibility, ""))
	}

	for _, d := range g.All() {
		if !d.WriteOnly || d.Retained {
			continue
		}
		if !opts.IncludeUnexported && d.Accessibility < graph.AccessPublic {
			continue
		}
		if rules.ShouldExclude(symbolInfoFor(d)) != "" {
			continue
		}
		items = append(items, itemFor(d, CategoryAssignOnlyProperty, ""))
	}

	for _, imp := range g.UnusedImports() {
		if rules.ShouldExclude(SymbolInfo{Name: imp.Package, FilePath: imp.File}) != "" {
			continue
		}
		items = append(items, Item{
			Kind:     "import",
			Name:     imp.Package,
			File:     imp.File,
			Line:     int(imp.Location.StartLine),
			Column:   int(imp.Location.StartColumn),
			Category: CategoryUnusedImport,
		})
	}

	items = filterByScope(items, opts.Scope)

	sortItems(items)

	return &Result{
		Items:   items,
		Summary: summarize(items),
	}
}

// filterByScope keeps only items whose file falls under one of the given
// path prefixes. An empty scope keeps everything.
func filterByScope(items []Item, scope []string) []Item {
	if len(scope) == 0 {
		return items
	}
	out := items[:0:0]
	for _, item := range items {
		for _, prefix := range scope {
			if item.File == prefix || strings.HasPrefix(item.File, prefix+"/") {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func itemFor(d *graph.Declaration, category Category, detail string) Item {
	return Item{
		SymbolID: d.PrimarySymbolID(),
		Kind:     d.Kind.String(),
		Name:     d.Name,
		File:     d.Location.File,
		Line:     int(d.Location.StartLine),
		Column:   int(d.Location.StartColumn),
		Category: category,
		Detail:   detail,
	}
}

// usedOnlyWithinOwnPackage reports whether every reference to d originates
// from a declaration in the same directory as d itself, i.e. nothing
// outside the package ever crosses the export boundary to reach it.
func usedOnlyWithinOwnPackage(g *graph.Graph, d *graph.Declaration) bool {
	ownDir := filepath.Dir(d.Location.File)
	sawUse := false
	for _, other := range g.All() {
		for _, ref := range append(other.References, other.RelatedReferences...) {
			if ref.SymbolID == "" {
				continue
			}
			target := g.BySymbol(ref.SymbolID)
			if target != d {
				continue
			}
			sawUse = true
			if filepath.Dir(other.Location.File) != ownDir {
				return false
			}
		}
	}
	return sawUse
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Category < b.Category
	})
}

func summarize(items []Item) Summary {
	s := Summary{
		Total:      len(items),
		ByKind:     make(map[string]int),
		ByCategory: make(map[string]int),
	}
	for _, item := range items {
		s.ByKind[item.Kind]++
		s.ByCategory[string(item.Category)]++
	}
	return s
}
