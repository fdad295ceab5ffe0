package passes

import (
	"testing"

	"deadwood/internal/graph"
)

// TestRunEndToEnd exercises the full nine-pass sequence against a small
// graph: an interface, its implementation, an entry point calling through
// the interface, and a genuinely unused free function.
func TestRunEndToEnd(t *testing.T) {
	g := graph.New()

	iface := graph.NewDeclaration(graph.KindInterface, graph.Location{File: "a.go", StartLine: 1})
	iface.Name = "Doer"
	iface.Accessibility = graph.AccessPublic
	iface.AddSymbolID("sym:iface")
	g.AddDeclaration(iface)

	impl := graph.NewDeclaration(graph.KindMethodInstance, graph.Location{File: "a.go", StartLine: 10})
	impl.Name = "Do"
	impl.Accessibility = graph.AccessPublic
	impl.AddSymbolID("sym:impl")
	g.AddDeclaration(impl)
	g.AttachReference(impl, &graph.Reference{Kind: graph.KindInterface, SymbolID: "sym:iface", IsRelated: true})

	main := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "main.go", StartLine: 1})
	main.Name = "main"
	main.AddSymbolID("sym:main")
	g.AddDeclaration(main)
	g.AttachReference(main, &graph.Reference{SymbolID: "sym:iface"})

	dead := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 20})
	dead.Name = "unused"
	dead.AddSymbolID("sym:dead")
	g.AddDeclaration(dead)

	Run(g, Options{})

	if !main.Live {
		t.Error("expected main to be live")
	}
	if !iface.Live {
		t.Error("expected the interface used by main to be live")
	}
	if !impl.Live {
		t.Error("expected the interface implementation to be live via conformance extension")
	}
	if dead.Live {
		t.Error("expected the unused function to remain not live")
	}
}
