package reconcile

import (
	"context"
	"testing"

	"deadwood/internal/graph"
)

func TestLatentAttachesResolvableReferences(t *testing.T) {
	g := graph.New()
	target := graph.NewDeclaration(graph.KindFreeFunction, graph.Location{File: "a.go", StartLine: 1})
	target.AddSymbolID("sym:target")
	g.AddDeclaration(target)

	g.EnqueueReference("sym:target", &graph.Reference{SymbolID: "sym:callee"})

	if err := Latent(context.Background(), g); err != nil {
		t.Fatalf("Latent returned error: %v", err)
	}

	if len(target.References) != 1 {
		t.Fatalf("expected reference to attach to target, got %d", len(target.References))
	}
}

func TestLatentFallsBackToDanglingWhenUnresolved(t *testing.T) {
	g := graph.New()
	g.EnqueueReference("sym:missing", &graph.Reference{SymbolID: "sym:callee"})

	if err := Latent(context.Background(), g); err != nil {
		t.Fatalf("Latent returned error: %v", err)
	}

	if len(g.PendingDangling()) != 1 {
		t.Error("expected unresolved reference to fall through to dangling")
	}
}

func TestDanglingResolvesByExactLocation(t *testing.T) {
	g := graph.New()
	loc := graph.Location{File: "a.go", StartLine: 10, StartColumn: 2}
	decl := graph.NewDeclaration(graph.KindStruct, loc)
	decl.Name = "Widget"
	decl.AddSymbolID("sym:widget")
	g.AddDeclaration(decl)

	g.EnqueueDangling(&graph.Reference{SymbolID: "sym:x", Location: loc})

	if err := Dangling(context.Background(), g); err != nil {
		t.Fatalf("Dangling returned error: %v", err)
	}

	if len(decl.References) != 1 {
		t.Errorf("expected dangling reference to resolve to the exact-location declaration, got %d", len(decl.References))
	}
}

func TestDanglingPrefersUnparentedCandidate(t *testing.T) {
	g := graph.New()
	loc := graph.Location{File: "a.go", StartLine: 10}

	parent := graph.NewDeclaration(graph.KindStruct, graph.Location{File: "a.go", StartLine: 9})
	parent.AddSymbolID("sym:parent")
	g.AddDeclaration(parent)

	child := graph.NewDeclaration(graph.KindVariableInstance, loc)
	child.AddSymbolID("sym:child")
	g.AddDeclaration(child)
	g.AttachChild(parent, child)

	unparented := graph.NewDeclaration(graph.KindMethodInstance, loc)
	unparented.AddSymbolID("sym:unparented")
	g.AddDeclaration(unparented)

	g.EnqueueDangling(&graph.Reference{SymbolID: "sym:ref", Location: loc})

	if err := Dangling(context.Background(), g); err != nil {
		t.Fatalf("Dangling returned error: %v", err)
	}

	if len(unparented.References) != 1 {
		t.Error("expected the unparented candidate to be preferred")
	}
	if len(child.References) != 0 {
		t.Error("expected the parented candidate to be skipped in favor of the unparented one")
	}
}

func TestDanglingFallsBackToLine(t *testing.T) {
	g := graph.New()
	declLoc := graph.Location{File: "a.go", StartLine: 5, StartColumn: 0}
	decl := graph.NewDeclaration(graph.KindFreeFunction, declLoc)
	decl.AddSymbolID("sym:fn")
	g.AddDeclaration(decl)

	refLoc := graph.Location{File: "a.go", StartLine: 5, StartColumn: 40}
	g.EnqueueDangling(&graph.Reference{SymbolID: "sym:ref", Location: refLoc})

	if err := Dangling(context.Background(), g); err != nil {
		t.Fatalf("Dangling returned error: %v", err)
	}

	if len(decl.References) != 1 {
		t.Error("expected line-level fallback to resolve the dangling reference")
	}
}
