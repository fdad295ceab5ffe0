package scip

import (
	"fmt"
	"strings"
)

// Identifier is a parsed SCIP symbol string:
// <scheme> <manager> <package> [<version>] <descriptor>
// e.g. "scip-go gomod deadwood v1.0.0 `deadwood/internal/graph`/Graph#AddNode()."
type Identifier struct {
	Scheme     string
	Manager    string
	Package    string
	Descriptor string
	Raw        string
}

// ParseIdentifier parses a SCIP symbol string emitted by scip-go.
func ParseIdentifier(id string) (*Identifier, error) {
	if id == "" {
		return nil, fmt.Errorf("scip: empty symbol identifier")
	}
	if strings.HasPrefix(id, "local ") {
		return &Identifier{Scheme: "local", Descriptor: strings.TrimPrefix(id, "local "), Raw: id}, nil
	}

	parts := strings.SplitN(id, " ", 5)
	if len(parts) < 4 {
		return nil, fmt.Errorf("scip: malformed symbol identifier %q", id)
	}
	ident := &Identifier{Scheme: parts[0], Manager: parts[1], Package: parts[2], Raw: id}
	if len(parts) == 4 {
		ident.Descriptor = parts[3]
	} else {
		ident.Descriptor = parts[4]
	}
	return ident, nil
}

// IsCgoExported reports whether the identifier's descriptor marks a cgo
// export. scip-go emits these with a "c:" prefixed descriptor segment,
// the analogue of the objc-bridging convention this analyzer's design
// descends from.
func (id *Identifier) IsCgoExported() bool {
	return strings.HasPrefix(id.Descriptor, "c:") || strings.Contains(id.Descriptor, "/c:")
}

// IsLocal reports whether the symbol is a compiler-local id, never crossing
// file boundaries (SCIP's "local NNN" form for unexported block-scoped
// variables it still wants to number).
func (id *Identifier) IsLocal() bool {
	return id.Scheme == "local"
}

// SimpleName extracts the trailing identifier from a descriptor, e.g.
// "`pkg/foo`/Bar#Method()." -> "Method".
func (id *Identifier) SimpleName() string {
	d := strings.TrimSuffix(id.Descriptor, ".")
	d = strings.TrimSuffix(d, "#")
	d = strings.TrimSuffix(d, ")")
	d = strings.TrimSuffix(d, "(")

	if lastBacktick := strings.LastIndex(d, "`"); lastBacktick != -1 && lastBacktick < len(d)-1 {
		d = d[lastBacktick+1:]
	}
	if idx := strings.LastIndex(d, "/"); idx != -1 {
		d = d[idx+1:]
	}
	if idx := strings.LastIndex(d, "."); idx != -1 {
		d = d[idx+1:]
	}
	if idx := strings.LastIndex(d, "#"); idx != -1 {
		d = d[idx+1:]
	}
	return d
}

// IsMethodDescriptor reports whether the descriptor names a function or method.
func IsMethodDescriptor(descriptor string) bool {
	return strings.Contains(descriptor, "(") && strings.Contains(descriptor, ")")
}

// IsTypeDescriptor reports whether the descriptor names a type.
func IsTypeDescriptor(descriptor string) bool {
	return strings.Contains(descriptor, "#") && !strings.Contains(descriptor, "(")
}
