package scip

import "testing"

func TestRangeFromInts(t *testing.T) {
	tests := []struct {
		name string
		in   []int32
		want Location
	}{
		{
			name: "single line",
			in:   []int32{4, 2, 10},
			want: Location{StartLine: 4, StartColumn: 2, EndLine: 4, EndColumn: 10},
		},
		{
			name: "multi line",
			in:   []int32{4, 2, 8, 1},
			want: Location{StartLine: 4, StartColumn: 2, EndLine: 8, EndColumn: 1},
		},
		{
			name: "malformed",
			in:   []int32{1},
			want: Location{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rangeFromInts(tt.in); got != tt.want {
				t.Errorf("rangeFromInts(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSymbolRoleHas(t *testing.T) {
	combined := RoleDefinition | RoleTest
	if !combined.Has(RoleDefinition) {
		t.Error("expected combined roles to include RoleDefinition")
	}
	if !combined.Has(RoleTest) {
		t.Error("expected combined roles to include RoleTest")
	}
	if combined.Has(RoleImport) {
		t.Error("did not expect combined roles to include RoleImport")
	}
}

func TestDocumentByPath(t *testing.T) {
	idx := &Index{Documents: []*Document{
		{RelativePath: "a.go"},
		{RelativePath: "b.go"},
	}}
	if got := idx.DocumentByPath("b.go"); got == nil || got.RelativePath != "b.go" {
		t.Errorf("DocumentByPath(b.go) = %v, want document b.go", got)
	}
	if got := idx.DocumentByPath("missing.go"); got != nil {
		t.Errorf("DocumentByPath(missing.go) = %v, want nil", got)
	}
}
