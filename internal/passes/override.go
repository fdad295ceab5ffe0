package passes

import "deadwood/internal/graph"

// EmbeddedMethodShadowingExtender handles Go's override analogue. Go has
// no `override` keyword: a method declared directly on a struct with the
// same name as a promoted method from an embedded field shadows the
// embedded method. This pass links the two bidirectionally so a call
// through either the outer type or the embedded type retains both.
//
// Embedding is detected from the "embeds:<TypeName>" modifier the syntax
// visitor attaches to a struct declaration for each field with no
// explicit name (internal/syntax's visitStructFields).
func EmbeddedMethodShadowingExtender(g *graph.Graph) {
	byName := indexByName(g)

	for _, outer := range g.All() {
		if outer.Kind != graph.KindStruct {
			continue
		}
		for modifier := range outer.Modifiers {
			embeddedName, ok := trimEmbedsPrefix(modifier)
			if !ok {
				continue
			}
			inner, ok := byName[embeddedName]
			if !ok {
				continue
			}
			linkShadowedMethods(g, outer, inner)
		}
	}
}

func indexByName(g *graph.Graph) map[string]*graph.Declaration {
	out := make(map[string]*graph.Declaration)
	for _, d := range g.All() {
		if d.Kind == graph.KindStruct && d.Name != "" {
			out[d.Name] = d
		}
	}
	return out
}

func linkShadowedMethods(g *graph.Graph, outer, inner *graph.Declaration) {
	outerMethods := methodsByName(g, outer)
	innerMethods := methodsByName(g, inner)

	for name, om := range outerMethods {
		im, ok := innerMethods[name]
		if !ok || om == im {
			continue
		}
		linkBidirectional(g, om, im)
	}
}

func methodsByName(g *graph.Graph, owner *graph.Declaration) map[string]*graph.Declaration {
	out := make(map[string]*graph.Declaration)
	for _, childID := range owner.Children {
		child := g.ByID(childID)
		if child == nil {
			continue
		}
		if child.Kind == graph.KindMethodInstance || child.Kind == graph.KindMethodPointerReceiver {
			out[child.Name] = child
		}
	}
	return out
}

func linkBidirectional(g *graph.Graph, a, b *graph.Declaration) {
	addReciprocal(g, a, b)
	addReciprocal(g, b, a)
}

func trimEmbedsPrefix(modifier string) (string, bool) {
	const prefix = "embeds:"
	if len(modifier) <= len(prefix) || modifier[:len(prefix)] != prefix {
		return "", false
	}
	return modifier[len(prefix):], true
}
