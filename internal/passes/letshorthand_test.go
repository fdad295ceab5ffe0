package passes

import (
	"testing"

	"deadwood/internal/graph"
)

func TestLetShorthandLinkerLinksShadow(t *testing.T) {
	g := graph.New()

	container := graph.NewDeclaration(graph.KindVariableGlobal, graph.Location{File: "a.go", StartLine: 1})
	container.Name = "v"
	container.AddSymbolID("sym:container")
	container.LetShorthandIdentifiers = []string{"v"}
	g.AddDeclaration(container)

	shadow := graph.NewDeclaration(graph.KindVariableLocal, graph.Location{File: "a.go", StartLine: 2})
	shadow.Name = "v"
	shadow.AddSymbolID("sym:shadow")
	g.AddDeclaration(shadow)

	LetShorthandLinker(g)

	if !hasRelatedTo(container, "sym:shadow") {
		t.Error("expected container to link to its shadow")
	}
}

func TestLetShorthandLinkerIgnoresDeclarationsWithoutShorthand(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindVariableGlobal, graph.Location{File: "a.go", StartLine: 1})
	d.AddSymbolID("sym:d")
	g.AddDeclaration(d)

	LetShorthandLinker(g)

	if len(d.RelatedReferences) != 0 {
		t.Errorf("expected no related references, got %v", d.RelatedReferences)
	}
}
