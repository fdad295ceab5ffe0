package index

import (
	"deadwood/internal/graph"
	"deadwood/internal/scip"
)

// IngestDocument builds a FileState from one SCIP document. Multiple
// documents for the same file path (one per build target/tag combination)
// are ingested independently and merged by MergeFileStates before commit.
func IngestDocument(doc *scip.Document) *FileState {
	st := NewFileState(doc.RelativePath)

	symbolInfo := make(map[string]*scip.SymbolInformation, len(doc.Symbols))
	for _, s := range doc.Symbols {
		symbolInfo[s.Symbol] = s
	}

	for _, occ := range doc.Occurrences {
		ingestOccurrence(st, doc, occ, symbolInfo[occ.Symbol])
	}
	return st
}

func ingestOccurrence(st *FileState, doc *scip.Document, occ *scip.Occurrence, info *scip.SymbolInformation) {
	ident, err := scip.ParseIdentifier(occ.Symbol)
	if err != nil {
		return
	}

	loc := locationFromRange(doc.RelativePath, occ.Range)

	if occ.SymbolRoles.Has(scip.RoleImport) {
		st.Imports = append(st.Imports, ImportRecord{Package: ident.Package, Location: loc})
	}

	if occ.SymbolRoles.Has(scip.RoleDefinition) {
		ingestDefinition(st, ident, occ, info, loc)
		return
	}

	kind := graph.KindUnknown
	if info != nil {
		kind = inferKind(ident, info)
	} else {
		kind = inferKindFromDescriptor(ident)
	}

	// Unattributed module references are discarded outright.
	if kind == graph.KindModule {
		return
	}

	// A compound access (`x += 1`) carries both roles; only a role that is
	// write and nothing else counts as a pure assignment for the
	// assign-only-property check.
	isWrite := occ.SymbolRoles.Has(scip.RoleWriteAccess) && !occ.SymbolRoles.Has(scip.RoleReadAccess)

	ref := &graph.Reference{
		Kind:      kind,
		SymbolID:  occ.Symbol,
		Location:  loc,
		Name:      ident.SimpleName(),
		Role:      graph.RolePlainUse,
		IsRelated: false,
		IsWrite:   isWrite,
	}
	if occ.EnclosingRange != nil {
		ref.ParentDecl = 0 // resolved later; enclosing hint carried via location match
	}
	st.Dangling = append(st.Dangling, ref)
}

func ingestDefinition(st *FileState, ident *scip.Identifier, occ *scip.Occurrence, info *scip.SymbolInformation, loc graph.Location) {
	kind := graph.KindUnknown
	if info != nil {
		kind = inferKind(ident, info)
	} else {
		kind = inferKindFromDescriptor(ident)
	}

	name := ident.SimpleName()
	if info != nil && info.DisplayName != "" {
		name = info.DisplayName
	}

	isImplicit := occ.SymbolRoles.Has(scip.RoleGenerated)
	isCgo := ident.IsCgoExported()

	if kind == graph.KindVariableParameter {
		st.ParameterSymbols[occ.Symbol] = struct{}{}
		return
	}

	key := dedupKey{kind: kind, name: name, isImplicit: isImplicit, isCgo: isCgo, loc: loc}
	decl, ok := st.Declarations[key]
	if !ok {
		decl = graph.NewDeclaration(kind, loc)
		decl.Name = name
		decl.IsImplicit = isImplicit
		decl.IsCgoAccessible = isCgo
		st.Declarations[key] = decl
	}
	decl.AddSymbolID(occ.Symbol)

	// Retention at ingest time.
	if isImplicit {
		decl.Retain("implicit")
	}

	if info == nil {
		return
	}

	if info.EnclosingSymbol != "" {
		st.PendingChildren[info.EnclosingSymbol] = append(st.PendingChildren[info.EnclosingSymbol], decl)
	}

	for _, rel := range info.Relationships {
		switch {
		case rel.IsImplementation:
			// This declaration's method set satisfies rel.Symbol (an
			// interface); model as a related reference so the interface
			// conformance pass can extend it.
			decl.RelatedReferences = append(decl.RelatedReferences, &graph.Reference{
				Kind:      graph.KindInterface,
				SymbolID:  rel.Symbol,
				Location:  loc,
				IsRelated: true,
				Role:      graph.RoleInheritedClassType,
			})
		case rel.IsTypeDefinition:
			decl.RelatedReferences = append(decl.RelatedReferences, &graph.Reference{
				Kind:      graph.KindUnknown,
				SymbolID:  rel.Symbol,
				Location:  loc,
				IsRelated: true,
				Role:      graph.RoleVarType,
			})
		case rel.IsReference:
			decl.References = append(decl.References, &graph.Reference{
				Kind:      graph.KindUnknown,
				SymbolID:  rel.Symbol,
				Location:  loc,
				IsRelated: false,
				Role:      graph.RolePlainUse,
			})
		}
	}
}

func locationFromRange(path string, r scip.Location) graph.Location {
	return graph.Location{
		File:        path,
		StartLine:   r.StartLine,
		StartColumn: r.StartColumn,
		EndLine:     r.EndLine,
		EndColumn:   r.EndColumn,
	}
}

// inferKind determines a declaration kind from its symbol descriptor and
// SCIP-reported relationships. scip-go does not emit a rich per-kind enum,
// so this is a heuristic classifier grounded on the descriptor's syntax.
func inferKind(ident *scip.Identifier, info *scip.SymbolInformation) graph.DeclKind {
	return inferKindFromDescriptor(ident)
}

func inferKindFromDescriptor(ident *scip.Identifier) graph.DeclKind {
	d := ident.Descriptor
	switch {
	case d == "":
		return graph.KindUnknown
	case isTypeParameterDescriptor(d):
		return graph.KindGenericTypeParameter
	case isParameterDescriptor(d):
		return graph.KindVariableParameter
	case scip.IsMethodDescriptor(d):
		if isConstructorName(ident.SimpleName()) {
			return graph.KindConstructor
		}
		if hasReceiverSegment(d) {
			return graph.KindMethodInstance
		}
		return graph.KindFreeFunction
	case scip.IsTypeDescriptor(d):
		return graph.KindStruct
	default:
		return graph.KindVariableGlobal
	}
}

func isConstructorName(name string) bool {
	if name == "New" {
		return true
	}
	return len(name) > 3 && name[:3] == "New" && name[3] >= 'A' && name[3] <= 'Z'
}

// isParameterDescriptor reports whether descriptor names a function
// parameter, encoded by scip-go as a trailing "(name)" segment.
func isParameterDescriptor(descriptor string) bool {
	n := len(descriptor)
	if n < 2 || descriptor[n-1] != ')' {
		return false
	}
	depth := 0
	for i := n - 1; i >= 0; i-- {
		switch descriptor[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i > 0 && descriptor[i-1] != ')'
			}
		}
	}
	return false
}

// isTypeParameterDescriptor reports whether descriptor names a generic type
// parameter, encoded by scip-go as a trailing "[name]" segment (the bracket
// analogue of a function parameter's trailing "(name)").
func isTypeParameterDescriptor(descriptor string) bool {
	n := len(descriptor)
	if n < 2 || descriptor[n-1] != ']' {
		return false
	}
	depth := 0
	for i := n - 1; i >= 0; i-- {
		switch descriptor[i] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return i > 0 && descriptor[i-1] != ']'
			}
		}
	}
	return false
}

func hasReceiverSegment(descriptor string) bool {
	for i := 0; i < len(descriptor); i++ {
		if descriptor[i] == '#' {
			return true
		}
		if descriptor[i] == '(' {
			return false
		}
	}
	return false
}
