package passes

import (
	"deadwood/internal/graph"
	"deadwood/internal/scip"
)

// UnusedImportAndRedundantConformanceAnalyzer flags imports whose package
// is never referenced by any declaration in the same file, and interface
// conformances that contribute no member the program actually uses
// through the interface type.
func UnusedImportAndRedundantConformanceAnalyzer(g *graph.Graph) {
	flagUnusedImports(g)
	flagRedundantConformances(g)
}

func flagUnusedImports(g *graph.Graph) {
	usedPackages := make(map[string]map[string]struct{}) // file -> package set
	for _, d := range g.All() {
		for _, ref := range append(d.References, d.RelatedReferences...) {
			pkg := packageOf(ref.SymbolID)
			if pkg == "" {
				continue
			}
			file := d.Location.File
			if usedPackages[file] == nil {
				usedPackages[file] = make(map[string]struct{})
			}
			usedPackages[file][pkg] = struct{}{}
		}
	}

	for _, imp := range g.Imports() {
		if _, used := usedPackages[imp.File][imp.Package]; !used {
			g.MarkImportUnused(imp)
		}
	}
}

func packageOf(symbolID string) string {
	ident, err := scip.ParseIdentifier(symbolID)
	if err != nil {
		return ""
	}
	return ident.Package
}

// flagRedundantConformances marks a conforming declaration's structural
// interface satisfaction as redundant when the interface it satisfies is
// itself never used anywhere as a type (no plain reference at all to the
// interface declaration) - i.e. nothing in the program ever holds the
// abstraction, so satisfying it contributes nothing beyond the concrete
// type's own method set.
func flagRedundantConformances(g *graph.Graph) {
	ifaceUseCount := make(map[graph.DeclID]int)
	for _, d := range g.All() {
		for _, ref := range d.References {
			if target := g.BySymbol(ref.SymbolID); target != nil && target.Kind == graph.KindInterface {
				ifaceUseCount[target.ID]++
			}
		}
	}

	for _, d := range g.All() {
		for _, ref := range d.RelatedReferences {
			if ref.Kind != graph.KindInterface {
				continue
			}
			iface := g.BySymbol(ref.SymbolID)
			if iface == nil {
				continue
			}
			if ifaceUseCount[iface.ID] == 0 {
				d.RedundantConformanceInterfaces = append(d.RedundantConformanceInterfaces, iface.Name)
			}
		}
	}
}
