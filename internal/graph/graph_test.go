package graph

import "testing"

func TestAddDeclarationAssignsStableID(t *testing.T) {
	g := New()
	d1 := NewDeclaration(KindFreeFunction, Location{File: "a.go", StartLine: 1})
	d1.AddSymbolID("sym:a")
	id1 := g.AddDeclaration(d1)

	d2 := NewDeclaration(KindFreeFunction, Location{File: "a.go", StartLine: 5})
	d2.AddSymbolID("sym:b")
	id2 := g.AddDeclaration(d2)

	if id1 == 0 || id2 == 0 || id1 == id2 {
		t.Fatalf("expected distinct nonzero ids, got %d and %d", id1, id2)
	}
	if g.ByID(id1) != d1 || g.ByID(id2) != d2 {
		t.Error("ByID did not return the committed declarations")
	}
}

func TestBySymbolAndByLocation(t *testing.T) {
	g := New()
	d := NewDeclaration(KindStruct, Location{File: "a.go", StartLine: 3})
	d.Name = "Widget"
	d.AddSymbolID("sym:Widget")
	g.AddDeclaration(d)

	if got := g.BySymbol("sym:Widget"); got != d {
		t.Errorf("BySymbol = %v, want %v", got, d)
	}
	if got := g.ByLocation(Location{File: "a.go", StartLine: 3}); got != d {
		t.Errorf("ByLocation = %v, want %v", got, d)
	}
	if got := g.BySymbol("sym:missing"); got != nil {
		t.Errorf("BySymbol(missing) = %v, want nil", got)
	}
}

func TestAllSkipsDiscardedDeclarations(t *testing.T) {
	g := New()
	d := NewDeclaration(KindVariableParameter, Location{File: "a.go", StartLine: 1})
	d.AddSymbolID("sym:p")
	g.AddDeclaration(d)
	g.discardDeclarations([]*Declaration{d})

	for _, got := range g.All() {
		if got == d {
			t.Error("discarded declaration still present in All()")
		}
	}
}

func TestExplicitDeclarationsExcludesImplicit(t *testing.T) {
	g := New()
	explicit := NewDeclaration(KindFreeFunction, Location{File: "a.go", StartLine: 1})
	explicit.AddSymbolID("sym:explicit")
	implicit := NewDeclaration(KindMethodInstance, Location{File: "a.go", StartLine: 2})
	implicit.AddSymbolID("sym:implicit")
	implicit.IsImplicit = true
	g.AddDeclaration(explicit)
	g.AddDeclaration(implicit)

	got := g.ExplicitDeclarations()
	if len(got) != 1 || got[0] != explicit {
		t.Errorf("ExplicitDeclarations = %v, want [%v]", got, explicit)
	}
}

func TestAttachReferenceSetsParentAndBucket(t *testing.T) {
	g := New()
	d := NewDeclaration(KindFreeFunction, Location{File: "a.go", StartLine: 1})
	d.AddSymbolID("sym:a")
	g.AddDeclaration(d)

	plain := &Reference{SymbolID: "sym:b"}
	g.AttachReference(d, plain)
	if plain.ParentDecl != d.ID || len(d.References) != 1 {
		t.Errorf("plain reference not attached correctly: %+v", d.References)
	}

	related := &Reference{SymbolID: "sym:c", IsRelated: true}
	g.AttachReference(d, related)
	if related.ParentDecl != d.ID || len(d.RelatedReferences) != 1 {
		t.Errorf("related reference not attached correctly: %+v", d.RelatedReferences)
	}
}

func TestAttachChild(t *testing.T) {
	g := New()
	parent := NewDeclaration(KindStruct, Location{File: "a.go", StartLine: 1})
	parent.AddSymbolID("sym:parent")
	child := NewDeclaration(KindVariableInstance, Location{File: "a.go", StartLine: 2})
	child.AddSymbolID("sym:child")
	g.AddDeclaration(parent)
	g.AddDeclaration(child)

	g.AttachChild(parent, child)

	if child.Parent != parent.ID {
		t.Errorf("child.Parent = %d, want %d", child.Parent, parent.ID)
	}
	if len(parent.Children) != 1 || parent.Children[0] != child.ID {
		t.Errorf("parent.Children = %v, want [%d]", parent.Children, child.ID)
	}
}

func TestPendingReferenceAndDanglingDrain(t *testing.T) {
	g := New()
	ref := &Reference{SymbolID: "sym:x"}
	g.EnqueueReference("referencer", ref)
	buckets := g.PendingReferenceBuckets()
	if len(buckets["referencer"]) != 1 {
		t.Fatalf("expected one bucketed reference, got %v", buckets)
	}
	if len(g.PendingReferenceBuckets()) != 0 {
		t.Error("PendingReferenceBuckets did not drain")
	}

	g.EnqueueDangling(ref)
	if len(g.PendingDangling()) != 1 {
		t.Fatal("expected one dangling reference")
	}
	if len(g.PendingDangling()) != 0 {
		t.Error("PendingDangling did not drain")
	}
}
