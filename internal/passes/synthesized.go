package passes

import "deadwood/internal/graph"

// synthesizedMemberNames are method names whose presence on a type signals
// structural satisfaction of a well-known standard-library interface,
// almost always invoked by reflection or by a caller holding the interface
// type rather than the concrete one, so a zero direct-call-site count is
// expected and not a sign of dead code.
var synthesizedMemberNames = map[string]struct{}{
	"MarshalJSON":     {},
	"UnmarshalJSON":   {},
	"MarshalText":     {},
	"UnmarshalText":   {},
	"MarshalBinary":   {},
	"UnmarshalBinary": {},
	"String":          {},
	"Error":           {},
	"Len":             {},
	"Less":            {},
	"Swap":            {},
}

// SynthesizedMemberRetainer retains methods matching one of Go's
// convention-recognized interface-satisfaction patterns
// (encoding/json.Marshaler, fmt.Stringer, sort.Interface, error, ...), and
// any method whose name matches a caller-supplied external marshaler
// interface method set.
func SynthesizedMemberRetainer(g *graph.Graph, opts Options) {
	for _, d := range g.All() {
		if d.Kind != graph.KindMethodInstance && d.Kind != graph.KindMethodPointerReceiver {
			continue
		}
		if _, ok := synthesizedMemberNames[d.Name]; ok {
			d.Retain("synthesized-member:" + d.Name)
			continue
		}
		for _, iface := range opts.ExternalMarshalerInterfaces {
			if externalInterfaceMethodName(iface) == d.Name {
				d.Retain("external-marshaler:" + iface)
				break
			}
		}
	}
}

// externalInterfaceMethodName returns the method name a caller-configured
// interface entry contributes. The entry is used unchanged as that method
// name; no Marshal/Unmarshal-style name derivation is applied.
func externalInterfaceMethodName(interfaceName string) string {
	return interfaceName
}
