package passes

import (
	"testing"

	"deadwood/internal/graph"
)

func TestSynthesizedMemberRetainerRetainsWellKnownNames(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindMethodInstance, graph.Location{File: "a.go", StartLine: 1})
	d.Name = "String"
	d.AddSymbolID("sym:string")
	g.AddDeclaration(d)

	SynthesizedMemberRetainer(g, Options{})

	if !d.Retained {
		t.Error("expected String() method to be retained as a synthesized member")
	}
}

func TestSynthesizedMemberRetainerIgnoresUnrelatedMethods(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindMethodInstance, graph.Location{File: "a.go", StartLine: 1})
	d.Name = "DoWork"
	d.AddSymbolID("sym:dowork")
	g.AddDeclaration(d)

	SynthesizedMemberRetainer(g, Options{})

	if d.Retained {
		t.Error("expected unrelated method to remain unretained")
	}
}

func TestSynthesizedMemberRetainerHonorsExternalMarshalers(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindMethodInstance, graph.Location{File: "a.go", StartLine: 1})
	d.Name = "CustomMarshal"
	d.AddSymbolID("sym:custom")
	g.AddDeclaration(d)

	SynthesizedMemberRetainer(g, Options{ExternalMarshalerInterfaces: []string{"CustomMarshal"}})

	if !d.Retained {
		t.Error("expected method matching an external marshaler interface name to be retained")
	}
}

func TestSynthesizedMemberRetainerSkipsNonMethodKinds(t *testing.T) {
	g := graph.New()
	d := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 1})
	d.Name = "String"
	d.AddSymbolID("sym:string")
	g.AddDeclaration(d)

	SynthesizedMemberRetainer(g, Options{})

	if d.Retained {
		t.Error("expected a free function named String to not be treated as a synthesized member")
	}
}
