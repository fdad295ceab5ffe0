package passes

import (
	"testing"

	"deadwood/internal/graph"
)

func TestTransitiveReachabilityMarksRetainedAndReachable(t *testing.T) {
	g := graph.New()

	root := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 1})
	root.AddSymbolID("sym:root")
	root.Retain("entry-point")
	g.AddDeclaration(root)

	callee := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 5})
	callee.AddSymbolID("sym:callee")
	g.AddDeclaration(callee)
	g.AttachReference(root, &graph.Reference{SymbolID: "sym:callee"})

	unreachable := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 10})
	unreachable.AddSymbolID("sym:unreachable")
	g.AddDeclaration(unreachable)

	TransitiveReachability(g)

	if !root.Live {
		t.Error("expected retained root to be live")
	}
	if !callee.Live {
		t.Error("expected callee reachable from root to be live")
	}
	if unreachable.Live {
		t.Error("expected unreachable declaration to remain not live")
	}
}

func TestTransitiveReachabilityFollowsRelatedReferences(t *testing.T) {
	g := graph.New()

	root := graph.NewDeclaration(graph.KindInterface, graph.Location{File: "a.go", StartLine: 1})
	root.AddSymbolID("sym:root")
	root.Retain("entry-point")
	g.AddDeclaration(root)

	impl := graph.NewDeclaration(graph.KindMethodInstance, graph.Location{File: "a.go", StartLine: 5})
	impl.AddSymbolID("sym:impl")
	g.AddDeclaration(impl)
	g.AttachReference(root, &graph.Reference{SymbolID: "sym:impl", IsRelated: true})

	TransitiveReachability(g)

	if !impl.Live {
		t.Error("expected related reference target to be live")
	}
}

func TestTransitiveReachabilityHandlesCycles(t *testing.T) {
	g := graph.New()

	a := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 1})
	a.AddSymbolID("sym:a")
	a.Retain("entry-point")
	g.AddDeclaration(a)

	b := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 5})
	b.AddSymbolID("sym:b")
	g.AddDeclaration(b)

	g.AttachReference(a, &graph.Reference{SymbolID: "sym:b"})
	g.AttachReference(b, &graph.Reference{SymbolID: "sym:a"})

	TransitiveReachability(g)

	if !a.Live || !b.Live {
		t.Error("expected both declarations in a reference cycle to be live")
	}
}
