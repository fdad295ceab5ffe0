package passes

import "deadwood/internal/graph"

// LetShorthandLinker handles Go's comma-ok idiom (`v, ok := m[k]`,
// `v, ok := x.(T)`), which introduces a block-scoped shadow of an outer
// declaration's name. Where internal/syntax records a declaration's
// LetShorthandIdentifiers (the shadow names it introduces), this pass
// finds any local declaration in the graph carrying one of those names
// within the same file and adds a related reference from the container to
// that shadow, so that a live container keeps the shadow declarations it
// introduces live.
func LetShorthandLinker(g *graph.Graph) {
	byFileAndName := make(map[string]map[string][]*graph.Declaration)
	for _, d := range g.All() {
		if d.Kind != graph.KindVariableLocal || d.Name == "" {
			continue
		}
		if byFileAndName[d.Location.File] == nil {
			byFileAndName[d.Location.File] = make(map[string][]*graph.Declaration)
		}
		byFileAndName[d.Location.File][d.Name] = append(byFileAndName[d.Location.File][d.Name], d)
	}

	for _, container := range g.All() {
		if len(container.LetShorthandIdentifiers) == 0 {
			continue
		}
		byName := byFileAndName[container.Location.File]
		for _, shadowName := range container.LetShorthandIdentifiers {
			for _, shadow := range byName[shadowName] {
				if shadow == container {
					continue
				}
				addReciprocal(g, container, shadow)
			}
		}
	}
}
