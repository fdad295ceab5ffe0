package passes

import (
	"sort"
	"strings"

	"deadwood/internal/graph"
)

const ignoreParametersPrefix = "ignore-parameters:"

// UnusedParameterPass attaches internal/syntax's unused-parameter findings
// to each function declaration, then exempts a parameter from reporting
// when the function is cgo-accessible and `retain-cgo-exported` is set,
// when it satisfies an interface method and
// `retain-unused-interface-func-params` is set, or when the parameter is
// named by an `ignore-parameters` comment command.
func UnusedParameterPass(g *graph.Graph, opts Options) {
	for _, d := range g.All() {
		if len(d.UnusedParameters) == 0 {
			continue
		}
		if opts.RetainCgoAccessible && d.IsCgoAccessible {
			d.UnusedParameters = nil
			continue
		}
		if opts.RetainUnusedInterfaceParams && implementsInterfaceMember(d) {
			d.UnusedParameters = nil
			continue
		}
		ignored := ignoredParameterNames(d)
		if len(ignored) == 0 {
			continue
		}
		var kept []string
		for _, p := range d.UnusedParameters {
			if _, skip := ignored[p]; !skip {
				kept = append(kept, p)
			}
		}
		sort.Strings(kept)
		d.UnusedParameters = kept
	}
}

func implementsInterfaceMember(d *graph.Declaration) bool {
	for _, ref := range d.RelatedReferences {
		if ref.Kind == graph.KindInterface {
			return true
		}
	}
	return false
}

func ignoredParameterNames(d *graph.Declaration) map[string]struct{} {
	names := make(map[string]struct{})
	for modifier := range d.Modifiers {
		if !strings.HasPrefix(modifier, ignoreParametersPrefix) {
			continue
		}
		for _, name := range strings.Split(strings.TrimPrefix(modifier, ignoreParametersPrefix), ",") {
			if name != "" {
				names[name] = struct{}{}
			}
		}
	}
	return names
}
