package scip

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"github.com/klauspost/compress/gzip"
	"google.golang.org/protobuf/proto"

	deadwooderrors "deadwood/internal/errors"
)

// Index is a loaded SCIP index, trimmed to the fields the ingestor consumes.
type Index struct {
	Metadata  *Metadata
	Documents []*Document
}

// Load reads a SCIP index from path. Files ending in ".gz" are transparently
// gzip-decompressed before the protobuf is parsed.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, deadwooderrors.New(deadwooderrors.IndexReadFailure,
				fmt.Sprintf("SCIP index not found at %s", path), err)
		}
		return nil, deadwooderrors.New(deadwooderrors.IndexReadFailure,
			fmt.Sprintf("failed to open SCIP index at %s", path), err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, deadwooderrors.New(deadwooderrors.IndexReadFailure,
				fmt.Sprintf("failed to decompress SCIP index at %s", path), err)
		}
		defer gr.Close()
		r = gr
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, deadwooderrors.New(deadwooderrors.IndexReadFailure,
			fmt.Sprintf("failed to read SCIP index at %s", path), err)
	}

	var raw scippb.Index
	if err := proto.Unmarshal(data, &raw); err != nil {
		return nil, deadwooderrors.New(deadwooderrors.IndexReadFailure,
			fmt.Sprintf("failed to parse SCIP protobuf at %s", path), err)
	}

	return &Index{
		Metadata:  convertMetadata(raw.Metadata),
		Documents: convertDocuments(raw.Documents),
	}, nil
}

// DocumentByPath returns the document at relativePath, or nil.
func (idx *Index) DocumentByPath(relativePath string) *Document {
	for _, d := range idx.Documents {
		if d.RelativePath == relativePath {
			return d
		}
	}
	return nil
}

func convertMetadata(meta *scippb.Metadata) *Metadata {
	if meta == nil {
		return nil
	}
	var tool *ToolInfo
	if meta.ToolInfo != nil {
		tool = &ToolInfo{
			Name:      meta.ToolInfo.Name,
			Version:   meta.ToolInfo.Version,
			Arguments: meta.ToolInfo.Arguments,
		}
	}
	return &Metadata{ProjectRoot: meta.ProjectRoot, ToolInfo: tool}
}

func convertDocuments(docs []*scippb.Document) []*Document {
	out := make([]*Document, len(docs))
	for i, d := range docs {
		out[i] = convertDocument(d)
	}
	return out
}

func convertDocument(d *scippb.Document) *Document {
	occs := make([]*Occurrence, len(d.Occurrences))
	for i, o := range d.Occurrences {
		occs[i] = convertOccurrence(o)
	}
	syms := make([]*SymbolInformation, len(d.Symbols))
	for i, s := range d.Symbols {
		syms[i] = convertSymbolInformation(s)
	}
	return &Document{
		RelativePath: d.RelativePath,
		Language:     d.Language,
		Occurrences:  occs,
		Symbols:      syms,
	}
}

func convertOccurrence(o *scippb.Occurrence) *Occurrence {
	occ := &Occurrence{
		Symbol:      o.Symbol,
		Range:       rangeFromInts(o.Range),
		SymbolRoles: SymbolRole(o.SymbolRoles),
	}
	if len(o.EnclosingRange) > 0 {
		enc := rangeFromInts(o.EnclosingRange)
		occ.EnclosingRange = &enc
	}
	return occ
}

func convertSymbolInformation(s *scippb.SymbolInformation) *SymbolInformation {
	rels := make([]*Relationship, len(s.Relationships))
	for i, r := range s.Relationships {
		rels[i] = &Relationship{
			Symbol:           r.Symbol,
			IsReference:      r.IsReference,
			IsImplementation: r.IsImplementation,
			IsTypeDefinition: r.IsTypeDefinition,
			IsDefinition:     r.IsDefinition,
		}
	}
	return &SymbolInformation{
		Symbol:          s.Symbol,
		DisplayName:     s.DisplayName,
		Documentation:   s.Documentation,
		EnclosingSymbol: s.EnclosingSymbol,
		Relationships:   rels,
	}
}

// rangeFromInts decodes SCIP's compact range encoding: [startLine, startCol,
// endCol] for single-line ranges, [startLine, startCol, endLine, endCol]
// otherwise.
func rangeFromInts(r []int32) Location {
	switch len(r) {
	case 3:
		return Location{StartLine: r[0], StartColumn: r[1], EndLine: r[0], EndColumn: r[2]}
	case 4:
		return Location{StartLine: r[0], StartColumn: r[1], EndLine: r[2], EndColumn: r[3]}
	default:
		return Location{}
	}
}
