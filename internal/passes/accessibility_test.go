package passes

import (
	"testing"

	"deadwood/internal/graph"
)

func TestAccessibilityCascadeUsesMinimumOfChain(t *testing.T) {
	g := graph.New()
	parent := graph.NewDeclaration(graph.KindStruct, graph.Location{File: "a.go", StartLine: 1})
	parent.Accessibility = graph.AccessPrivate
	parent.AddSymbolID("sym:parent")
	g.AddDeclaration(parent)

	child := graph.NewDeclaration(graph.KindVariableInstance, graph.Location{File: "a.go", StartLine: 2})
	child.Accessibility = graph.AccessPublic
	child.AddSymbolID("sym:child")
	g.AddDeclaration(child)
	g.AttachChild(parent, child)

	AccessibilityCascade(g, Options{})

	if child.Accessibility != graph.AccessPrivate {
		t.Errorf("child.Accessibility = %v, want AccessPrivate (inherited from parent)", child.Accessibility)
	}
}

func TestAccessibilityCascadeRetainsPublicWhenConfigured(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 1})
	d.Accessibility = graph.AccessPublic
	d.AddSymbolID("sym:d")
	g.AddDeclaration(d)

	AccessibilityCascade(g, Options{RetainPublic: true})

	if !d.Retained {
		t.Error("expected public declaration to be retained when RetainPublic is set")
	}
}

func TestAccessibilityCascadeDoesNotRetainWhenNotConfigured(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 1})
	d.Accessibility = graph.AccessPublic
	d.AddSymbolID("sym:d")
	g.AddDeclaration(d)

	AccessibilityCascade(g, Options{})

	if d.Retained {
		t.Error("expected public declaration to stay unretained without RetainPublic")
	}
}
