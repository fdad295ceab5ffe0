// Package enrich applies internal/syntax's per-file visitor output onto
// the declarations already committed to the graph, assigning
// accessibility, modifiers, comment commands, type-footprint locations,
// and reference roles.
package enrich

import (
	"deadwood/internal/graph"
	"deadwood/internal/syntax"
)

// Options controls which comment commands are honored.
type Options struct {
	// IgnoreCommentCommands disables all in-source "// deadwood:" commands
	// when set, per the `ignore-comment-commands` configuration option.
	IgnoreCommentCommands bool
}

// ApplyFile writes fe's enrichment records into every declaration g holds
// for fe.Path, and assigns each of those declarations' references a role
// by checking whether the reference's location falls in one of the
// declaration's footprint sets.
func ApplyFile(g *graph.Graph, fe *syntax.FileEnrichment, opts Options) {
	fileDecls := declarationsInFile(g, fe.Path)

	if fe.IgnoreAll && !opts.IgnoreCommentCommands {
		for _, d := range fileDecls {
			retainHierarchy(g, d, "deadwood:ignore-all")
		}
	}

	for _, d := range fileDecls {
		rec, ok := fe.Records[d.Location]
		if !ok {
			continue
		}
		applyRecord(d, rec)

		if !opts.IgnoreCommentCommands {
			for _, cmd := range rec.CommentCommands {
				switch cmd.Name {
				case "ignore":
					retainHierarchy(g, d, "deadwood:ignore")
				case "ignore-parameters":
					d.Modifiers["ignore-parameters:"+joinArgs(cmd.Args)] = struct{}{}
				}
			}
		}

		assignReferenceRoles(d, rec)
	}

	for loc, params := range fe.UnusedParameters {
		if fn := g.ByLocation(loc); fn != nil {
			fn.UnusedParameters = params
		}
	}
}

func declarationsInFile(g *graph.Graph, path string) []*graph.Declaration {
	var out []*graph.Declaration
	for _, d := range g.All() {
		if d.Location.File == path {
			out = append(out, d)
		}
	}
	return out
}

func applyRecord(d *graph.Declaration, rec *syntax.DeclEnrichment) {
	d.Accessibility = rec.Accessibility
	d.AccessibilityExplicit = rec.AccessibilityExplicit
	if rec.DeclaredType != "" {
		d.DeclaredType = rec.DeclaredType
	}
	for k := range rec.Attributes {
		d.Attributes[k] = struct{}{}
	}
	for k := range rec.Modifiers {
		d.Modifiers[k] = struct{}{}
	}
	for kind, locs := range rec.Footprints {
		d.Footprints[kind] = append(d.Footprints[kind], locs...)
	}
	d.LetShorthandIdentifiers = append(d.LetShorthandIdentifiers, rec.LetShorthandIdentifiers...)
}

// assignReferenceRoles checks every reference this declaration owns
// against its own footprint location sets and assigns the matching role.
// A reference at an inherited-type footprint gets RoleRefinedInterfaceType
// when the referencing declaration is itself an interface and
// RoleInheritedClassType otherwise; the reference target's kind is not
// consulted.
func assignReferenceRoles(d *graph.Declaration, rec *syntax.DeclEnrichment) {
	all := append(append([]*graph.Reference{}, d.References...), d.RelatedReferences...)
	for _, ref := range all {
		for kind, locs := range rec.Footprints {
			if !containsLoc(locs, ref.Location) {
				continue
			}
			ref.Role = roleForFootprint(kind, d.Kind)
			if kind == graph.FootprintInherited {
				ref.IsRelated = true
			}
			break
		}
	}
}

func roleForFootprint(kind graph.FootprintKind, ownerKind graph.DeclKind) graph.RefRole {
	switch kind {
	case graph.FootprintInherited:
		if ownerKind == graph.KindInterface {
			return graph.RoleRefinedInterfaceType
		}
		return graph.RoleInheritedClassType
	case graph.FootprintVarType:
		return graph.RoleVarType
	case graph.FootprintReturnType:
		return graph.RoleReturnType
	case graph.FootprintParameterType:
		return graph.RoleParameterType
	case graph.FootprintGenericParameter:
		return graph.RoleGenericParameterType
	case graph.FootprintGenericConformance:
		return graph.RoleGenericRequirementType
	case graph.FootprintVariableInitCall:
		return graph.RoleVariableInitCall
	case graph.FootprintFunctionCallMetatypeArgument:
		return graph.RoleFunctionCallMetatypeArgument
	default:
		return graph.RolePlainUse
	}
}

func containsLoc(locs []graph.Location, loc graph.Location) bool {
	for _, l := range locs {
		if l == loc {
			return true
		}
	}
	return false
}

// retainHierarchy retains d and every declaration transitively parented by
// it, implementing the "ignore" / "ignore-all" comment commands' "D and
// all descendants" semantics.
func retainHierarchy(g *graph.Graph, d *graph.Declaration, reason string) {
	d.Retain(reason)
	for _, childID := range d.Children {
		if child := g.ByID(childID); child != nil {
			retainHierarchy(g, child, reason)
		}
	}
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ","
		}
		out += a
	}
	return out
}
