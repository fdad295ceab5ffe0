package index

import (
	"testing"

	"deadwood/internal/graph"
)

func TestMergeFileStatesUnionsSymbolIDs(t *testing.T) {
	loc := graph.Location{File: "a.go", StartLine: 1}
	key := dedupKey{kind: graph.KindStruct, name: "Widget", loc: loc}

	stA := NewFileState("a.go")
	declA := graph.NewDeclaration(graph.KindStruct, loc)
	declA.Name = "Widget"
	declA.AddSymbolID("sym:a")
	stA.Declarations[key] = declA

	stB := NewFileState("a.go")
	declB := graph.NewDeclaration(graph.KindStruct, loc)
	declB.Name = "Widget"
	declB.AddSymbolID("sym:b")
	stB.Declarations[key] = declB

	merged := MergeFileStates([]*FileState{stA, stB})

	if len(merged.Declarations) != 1 {
		t.Fatalf("expected declarations to merge into one, got %d", len(merged.Declarations))
	}
	got := merged.Declarations[key]
	if len(got.SymbolIDs) != 2 {
		t.Errorf("expected union of symbol ids, got %v", got.SymbolIDs)
	}
}

func TestMergeFileStatesSingleReturnsSameState(t *testing.T) {
	st := NewFileState("a.go")
	if got := MergeFileStates([]*FileState{st}); got != st {
		t.Error("expected MergeFileStates to short-circuit for a single state")
	}
	if got := MergeFileStates(nil); got != nil {
		t.Error("expected MergeFileStates(nil) to return nil")
	}
}

func TestCommitFileStateCommitsDeclarationsAndImports(t *testing.T) {
	g := graph.New()
	st := NewFileState("a.go")

	loc := graph.Location{File: "a.go", StartLine: 3}
	decl := graph.NewDeclaration(graph.KindFreeFunction, loc)
	decl.Name = "Do"
	decl.AddSymbolID("sym:do")
	key := dedupKey{kind: graph.KindFreeFunction, name: "Do", loc: loc}
	st.Declarations[key] = decl

	st.Imports = append(st.Imports, ImportRecord{Package: "fmt", Location: graph.Location{File: "a.go", StartLine: 1}})
	st.ParameterSymbols["sym:x"] = struct{}{}

	CommitFileState(g, st)

	if got := g.BySymbol("sym:do"); got == nil || got.Name != "Do" {
		t.Errorf("expected committed declaration to be findable by symbol, got %v", got)
	}
	if !g.IsParameterSymbol("sym:x") {
		t.Error("expected parameter symbol to be recorded on commit")
	}
	imports := g.Imports()
	if len(imports) != 1 || imports[0].Package != "fmt" {
		t.Errorf("expected committed import, got %v", imports)
	}
}
