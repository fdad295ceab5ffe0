package passes

import "deadwood/internal/graph"

// EntryPointRetainer retains declarations named or attributed as program
// entry points: `func main()`, `func init()`, `Test*`/`Benchmark*`/
// `Example*` functions in `_test.go` files, and cgo-exported functions
// when `retain-cgo-exported` is set.
func EntryPointRetainer(g *graph.Graph, opts Options) {
	for _, d := range g.All() {
		if !isFunctionKind(d.Kind) {
			continue
		}
		if d.Name == "main" || d.Name == "init" {
			d.Retain("entry-point")
			continue
		}
		if isTestFile(d.Location.File) && isTestEntryPointName(d.Name) {
			d.Retain("test-entry-point")
			continue
		}
		if opts.RetainCgoAccessible && d.IsCgoAccessible {
			d.Retain("retain-cgo-exported")
		}
	}
}

func isFunctionKind(k graph.DeclKind) bool {
	switch k {
	case graph.KindFreeFunction, graph.KindMethodInstance, graph.KindMethodPointerReceiver, graph.KindConstructor:
		return true
	default:
		return false
	}
}

func isTestEntryPointName(name string) bool {
	return hasPrefix(name, "Test") || hasPrefix(name, "Benchmark") || hasPrefix(name, "Example") || hasPrefix(name, "Fuzz")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func isTestFile(path string) bool {
	return len(path) > len("_test.go") && path[len(path)-len("_test.go"):] == "_test.go"
}
