// Package syntax is the external syntax visitor: a tree-sitter based Go
// walker that, per source file, reports the enrichment record consumed by
// internal/enrich (accessibility, modifiers, comment commands,
// type-footprint locations, unused-parameter candidates).
package syntax

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"deadwood/internal/graph"
)

const commandPrefix = "deadwood:"

// DeclEnrichment is the enrichment record the visitor produces for one
// declaration location.
type DeclEnrichment struct {
	Location               graph.Location
	Name                   string
	Accessibility          graph.Accessibility
	AccessibilityExplicit  bool
	Attributes             map[string]struct{}
	Modifiers              map[string]struct{}
	CommentCommands        []graph.CommentCommand
	DeclaredType           string
	Footprints             map[graph.FootprintKind][]graph.Location
	LetShorthandIdentifiers []string
}

// FileEnrichment is the visitor's complete output for one source file.
type FileEnrichment struct {
	Path string

	// IgnoreAll is true when the file carries a leading
	// "// deadwood:ignore-all" comment.
	IgnoreAll bool

	// Records is keyed by declaration location; the enrich pass looks each
	// declaration up by its own Location.
	Records map[graph.Location]*DeclEnrichment

	// UnusedParameters maps a function/method declaration's location to
	// the names of its parameters never read in the function body.
	UnusedParameters map[graph.Location][]string
}

// Visitor parses Go source with tree-sitter and extracts enrichment
// records. A Visitor is not safe for concurrent use; internal/driver's
// enrichSyntax creates one and visits the indexed files one at a time.
type Visitor struct {
	parser *sitter.Parser
}

// NewVisitor returns a Visitor ready to parse Go source.
func NewVisitor() *Visitor {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &Visitor{parser: p}
}

// VisitFile reads and visits the file at path.
func (v *Visitor) VisitFile(ctx context.Context, path string) (*FileEnrichment, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("syntax: read %s: %w", path, err)
	}
	return v.VisitSource(ctx, path, source)
}

// VisitSource visits already-loaded source bytes for path.
func (v *Visitor) VisitSource(ctx context.Context, path string, source []byte) (*FileEnrichment, error) {
	tree, err := v.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("syntax: parse %s: %w", path, err)
	}
	root := tree.RootNode()

	fe := &FileEnrichment{
		Path:              path,
		Records:           make(map[graph.Location]*DeclEnrichment),
		UnusedParameters:  make(map[graph.Location][]string),
		IgnoreAll:         fileHasIgnoreAll(source),
	}

	walkTopLevel(root, source, path, fe)
	return fe, nil
}

func locOf(path string, n *sitter.Node) graph.Location {
	return graph.Location{
		File:        path,
		StartLine:   int32(n.StartPoint().Row),
		StartColumn: int32(n.StartPoint().Column),
		EndLine:     int32(n.EndPoint().Row),
		EndColumn:   int32(n.EndPoint().Column),
	}
}

func walkTopLevel(root *sitter.Node, source []byte, path string, fe *FileEnrichment) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "function_declaration", "method_declaration":
			visitFunc(child, source, path, fe)
		case "type_declaration":
			visitTypeDecl(child, source, path, fe)
		case "const_declaration":
			visitConstDecl(child, source, path, fe)
		case "var_declaration":
			visitVarDecl(child, source, path, fe)
		}
	}
}

func visitFunc(n *sitter.Node, source []byte, path string, fe *FileEnrichment) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := text(source, nameNode)
	loc := locOf(path, n)

	rec := newRecord(name, loc)
	attachComments(n, source, rec)
	fe.Records[loc] = rec

	// Return-type footprint.
	resultNode := n.ChildByFieldName("result")
	if resultNode != nil {
		rec.Footprints[graph.FootprintReturnType] = append(rec.Footprints[graph.FootprintReturnType], locOf(path, resultNode))
	}

	// Parameter-type footprints and unused-parameter detection.
	params := n.ChildByFieldName("parameters")
	var paramNames []string
	if params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			pd := params.Child(i)
			if pd == nil || pd.Type() != "parameter_declaration" {
				continue
			}
			if tNode := pd.ChildByFieldName("type"); tNode != nil {
				rec.Footprints[graph.FootprintParameterType] = append(rec.Footprints[graph.FootprintParameterType], locOf(path, tNode))
			}
			for j := 0; j < int(pd.ChildCount()); j++ {
				pc := pd.Child(j)
				if pc != nil && pc.Type() == "identifier" {
					pname := text(source, pc)
					if pname != "" && pname != "_" {
						paramNames = append(paramNames, pname)
					}
				}
			}
		}
	}

	// Type-parameter footprints: a constraint reference (e.g. `T
	// constraints.Ordered`) is a generic-conformance footprint; every
	// occurrence of a type parameter's own name elsewhere in the signature
	// is a generic-parameter-type footprint.
	if tpList := typeParameterList(n); tpList != nil {
		names := visitTypeParameters(tpList, source, path, rec)
		markGenericParamUsages(params, source, path, names, rec)
		markGenericParamUsages(resultNode, source, path, names, rec)
	}

	if body := n.ChildByFieldName("body"); body != nil && len(paramNames) > 0 {
		used := collectIdentifiers(body, source)
		var unused []string
		for _, p := range paramNames {
			if !used[p] {
				unused = append(unused, p)
			}
		}
		if len(unused) > 0 {
			fe.UnusedParameters[loc] = unused
		}
	}
}

func visitTypeDecl(n *sitter.Node, source []byte, path string, fe *FileEnrichment) {
	for i := 0; i < int(n.ChildCount()); i++ {
		spec := n.Child(i)
		if spec == nil || spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := text(source, nameNode)
		loc := locOf(path, n)
		rec := newRecord(name, loc)
		attachComments(n, source, rec)
		fe.Records[loc] = rec

		if tpList := typeParameterList(spec); tpList != nil {
			names := visitTypeParameters(tpList, source, path, rec)
			markGenericParamUsages(spec.ChildByFieldName("type"), source, path, names, rec)
		}

		typeNode := spec.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		switch typeNode.Type() {
		case "struct_type":
			visitStructFields(typeNode, source, path, rec)
		case "interface_type":
			visitInterfaceMembers(typeNode, source, path, rec)
		default:
			// type alias / defined type: the aliased type is a var-type
			// footprint for the purposes of the enrichment pass.
			rec.Footprints[graph.FootprintVarType] = append(rec.Footprints[graph.FootprintVarType], locOf(path, typeNode))
			rec.DeclaredType = text(source, typeNode)
		}
	}
}

func visitStructFields(structType *sitter.Node, source []byte, path string, rec *DeclEnrichment) {
	body := structType.ChildByFieldName("body")
	if body == nil {
		// tree-sitter-go does not name a struct's field list as a field.
		for i := 0; i < int(structType.ChildCount()); i++ {
			if c := structType.Child(i); c != nil && c.Type() == "field_declaration_list" {
				body = c
			}
		}
	}
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		fieldDecl := body.Child(i)
		if fieldDecl == nil || fieldDecl.Type() != "field_declaration" {
			continue
		}
		if tNode := fieldDecl.ChildByFieldName("type"); tNode != nil {
			// Embedded fields (no explicit name child other than the type
			// itself) are the Go analogue of an inherited-type footprint;
			// named fields are plain var-type footprints.
			hasName := fieldDecl.ChildByFieldName("name") != nil
			if hasName {
				rec.Footprints[graph.FootprintVarType] = append(rec.Footprints[graph.FootprintVarType], locOf(path, tNode))
			} else {
				rec.Footprints[graph.FootprintInherited] = append(rec.Footprints[graph.FootprintInherited], locOf(path, tNode))
				rec.Modifiers["embeds:"+embeddedTypeName(text(source, tNode))] = struct{}{}
			}
		}
	}
}

func visitInterfaceMembers(ifaceType *sitter.Node, source []byte, path string, rec *DeclEnrichment) {
	for i := 0; i < int(ifaceType.ChildCount()); i++ {
		member := ifaceType.Child(i)
		if member == nil {
			continue
		}
		switch member.Type() {
		case "method_elem":
			// Method signatures contribute nothing further here; the
			// interface's own conformance handling lives in
			// internal/passes.
		case "type_elem", "type_identifier", "qualified_type":
			// A refined/embedded interface: role assignment (refined vs
			// inherited) happens once the reference itself is classified
			// against this footprint.
			rec.Footprints[graph.FootprintInherited] = append(rec.Footprints[graph.FootprintInherited], locOf(path, member))
		}
	}
}

// typeParameterList finds a function/method/type declaration's generic
// type-parameter list, tried first as the "type_parameters" field and then
// as a direct child, since tree-sitter-go's grammar doesn't expose it under
// a consistent field name across declaration forms.
func typeParameterList(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		return tp
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.Type() == "type_parameter_list" {
			return c
		}
	}
	return nil
}

// visitTypeParameters records each type parameter's constraint as a
// generic-conformance footprint and returns the declared parameter names,
// used to find where those names are used elsewhere in the declaration.
func visitTypeParameters(tpList *sitter.Node, source []byte, path string, rec *DeclEnrichment) []string {
	var names []string
	for i := 0; i < int(tpList.ChildCount()); i++ {
		decl := tpList.Child(i)
		if decl == nil || decl.Type() != "type_parameter_declaration" {
			continue
		}
		var constraint *sitter.Node
		for j := 0; j < int(decl.ChildCount()); j++ {
			c := decl.Child(j)
			if c == nil {
				continue
			}
			if c.Type() == "identifier" {
				names = append(names, text(source, c))
				continue
			}
			if c.Type() != "," {
				constraint = c
			}
		}
		if constraint != nil {
			rec.Footprints[graph.FootprintGenericConformance] = append(rec.Footprints[graph.FootprintGenericConformance], locOf(path, constraint))
		}
	}
	return names
}

// markGenericParamUsages walks n looking for type_identifier nodes naming
// one of names, recording each as a generic-parameter-type footprint.
func markGenericParamUsages(n *sitter.Node, source []byte, path string, names []string, rec *DeclEnrichment) {
	if n == nil || len(names) == 0 {
		return
	}
	nameSet := make(map[string]bool, len(names))
	for _, nm := range names {
		nameSet[nm] = true
	}
	var walk func(*sitter.Node)
	walk = func(x *sitter.Node) {
		if x == nil {
			return
		}
		if x.Type() == "type_identifier" && nameSet[text(source, x)] {
			rec.Footprints[graph.FootprintGenericParameter] = append(rec.Footprints[graph.FootprintGenericParameter], locOf(path, x))
		}
		for i := 0; i < int(x.ChildCount()); i++ {
			walk(x.Child(i))
		}
	}
	walk(n)
}

func visitConstDecl(n *sitter.Node, source []byte, path string, fe *FileEnrichment) {
	for i := 0; i < int(n.ChildCount()); i++ {
		spec := n.Child(i)
		if spec == nil || spec.Type() != "const_spec" {
			continue
		}
		for j := 0; j < int(spec.ChildCount()); j++ {
			c := spec.Child(j)
			if c != nil && c.Type() == "identifier" {
				name := text(source, c)
				loc := locOf(path, spec)
				rec := newRecord(name, loc)
				attachComments(spec, source, rec)
				fe.Records[loc] = rec
			}
		}
	}
}

func visitVarDecl(n *sitter.Node, source []byte, path string, fe *FileEnrichment) {
	for i := 0; i < int(n.ChildCount()); i++ {
		spec := n.Child(i)
		if spec == nil || spec.Type() != "var_spec" {
			continue
		}
		loc := locOf(path, spec)
		var name string
		for j := 0; j < int(spec.ChildCount()); j++ {
			c := spec.Child(j)
			if c != nil && c.Type() == "identifier" {
				name = text(source, c)
				break
			}
		}
		rec := newRecord(name, loc)
		attachComments(spec, source, rec)
		if tNode := spec.ChildByFieldName("type"); tNode != nil {
			rec.Footprints[graph.FootprintVarType] = append(rec.Footprints[graph.FootprintVarType], locOf(path, tNode))
			rec.DeclaredType = text(source, tNode)
		}
		if valNode := spec.ChildByFieldName("value"); valNode != nil && valNode.Type() == "call_expression" {
			rec.Footprints[graph.FootprintVariableInitCall] = append(rec.Footprints[graph.FootprintVariableInitCall], locOf(path, valNode))
		}
		fe.Records[loc] = rec
	}
}

// embeddedTypeName strips a pointer marker and package qualifier from an
// embedded field's type text, e.g. "*pkg.Base" -> "Base".
func embeddedTypeName(typeText string) string {
	t := strings.TrimPrefix(strings.TrimSpace(typeText), "*")
	if idx := strings.LastIndex(t, "."); idx != -1 {
		t = t[idx+1:]
	}
	return t
}

func newRecord(name string, loc graph.Location) *DeclEnrichment {
	access := graph.AccessPrivate
	if name != "" && unicode.IsUpper(rune(name[0])) {
		access = graph.AccessPublic
	}
	return &DeclEnrichment{
		Location:              loc,
		Name:                  name,
		Accessibility:         access,
		AccessibilityExplicit: true,
		Attributes:            make(map[string]struct{}),
		Modifiers:             make(map[string]struct{}),
		Footprints:            make(map[graph.FootprintKind][]graph.Location),
	}
}

// attachComments scans the raw leading comment lines directly above n for
// "// deadwood:<command>[:<args>]" directives.
func attachComments(n *sitter.Node, source []byte, rec *DeclEnrichment) {
	prev := n.PrevSibling()
	var lines []string
	for prev != nil && prev.Type() == "comment" {
		lines = append([]string{text(source, prev)}, lines...)
		prev = prev.PrevSibling()
	}
	for _, line := range lines {
		cmd, ok := parseCommand(line)
		if ok {
			rec.CommentCommands = append(rec.CommentCommands, cmd)
		}
	}
}

// parseCommand parses one comment line of the form
// "// deadwood:ignore" or "// deadwood:ignore-parameters(a,b)".
func parseCommand(line string) (graph.CommentCommand, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
	line = strings.TrimSpace(line)
	idx := strings.Index(line, commandPrefix)
	if idx == -1 {
		return graph.CommentCommand{}, false
	}
	rest := line[idx+len(commandPrefix):]

	name := rest
	var argsStr string
	if p := strings.Index(rest, "("); p != -1 && strings.HasSuffix(rest, ")") {
		name = rest[:p]
		argsStr = rest[p+1 : len(rest)-1]
	} else if p := strings.Index(rest, ":"); p != -1 {
		name = rest[:p]
		argsStr = rest[p+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return graph.CommentCommand{}, false
	}

	var args []string
	if argsStr != "" {
		for _, a := range strings.Split(argsStr, ",") {
			a = strings.TrimSpace(a)
			if a != "" {
				args = append(args, a)
			}
		}
	}
	return graph.CommentCommand{Name: name, Args: args}, true
}

// fileHasIgnoreAll reports whether the file's leading comment block (before
// the package clause is skipped, since scip-go's own header appears above
// it too) carries "// deadwood:ignore-all".
func fileHasIgnoreAll(source []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") {
			return false
		}
		if cmd, ok := parseCommand(line); ok && cmd.Name == "ignore-all" {
			return true
		}
	}
	return false
}

func text(source []byte, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// collectIdentifiers walks body and returns the set of identifier names
// referenced anywhere inside it, used by unused-parameter detection.
func collectIdentifiers(body *sitter.Node, source []byte) map[string]bool {
	used := make(map[string]bool)
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Type() == "identifier" {
			used[text(source, n)] = true
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(body)
	return used
}
