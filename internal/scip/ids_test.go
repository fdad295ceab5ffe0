package scip

import "testing"

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantErr    bool
		wantScheme string
		wantPkg    string
	}{
		{
			name:       "well formed",
			id:         "scip-go gomod deadwood v1.0.0 `deadwood/internal/graph`/Graph#AddDeclaration().",
			wantScheme: "scip-go",
			wantPkg:    "deadwood",
		},
		{
			name:       "no version segment",
			id:         "scip-go gomod deadwood `deadwood/internal/graph`/Graph#",
			wantScheme: "scip-go",
			wantPkg:    "deadwood",
		},
		{
			name:       "local symbol",
			id:         "local 3",
			wantScheme: "local",
		},
		{
			name:    "empty",
			id:      "",
			wantErr: true,
		},
		{
			name:    "too few parts",
			id:      "scip-go gomod",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseIdentifier(%q) expected an error", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIdentifier(%q) returned error: %v", tt.id, err)
			}
			if got.Scheme != tt.wantScheme {
				t.Errorf("Scheme = %q, want %q", got.Scheme, tt.wantScheme)
			}
			if got.Package != tt.wantPkg {
				t.Errorf("Package = %q, want %q", got.Package, tt.wantPkg)
			}
		})
	}
}

func TestIdentifierSimpleName(t *testing.T) {
	tests := []struct {
		descriptor string
		want       string
	}{
		{"`deadwood/internal/graph`/Graph#AddDeclaration().", "AddDeclaration"},
		{"`deadwood/internal/graph`/Graph#", "Graph"},
		{"`deadwood/internal/graph`/Helper.", "Helper"},
	}
	for _, tt := range tests {
		ident := &Identifier{Descriptor: tt.descriptor}
		if got := ident.SimpleName(); got != tt.want {
			t.Errorf("SimpleName(%q) = %q, want %q", tt.descriptor, got, tt.want)
		}
	}
}

func TestIsCgoExported(t *testing.T) {
	tests := []struct {
		descriptor string
		want       bool
	}{
		{"c:MyExportedFunc", true},
		{"`pkg`/c:Bridge", true},
		{"`pkg`/Regular#Method().", false},
	}
	for _, tt := range tests {
		ident := &Identifier{Descriptor: tt.descriptor}
		if got := ident.IsCgoExported(); got != tt.want {
			t.Errorf("IsCgoExported(%q) = %v, want %v", tt.descriptor, got, tt.want)
		}
	}
}

func TestIsLocal(t *testing.T) {
	local := &Identifier{Scheme: "local"}
	if !local.IsLocal() {
		t.Error("expected local scheme to report IsLocal")
	}
	nonLocal := &Identifier{Scheme: "scip-go"}
	if nonLocal.IsLocal() {
		t.Error("expected non-local scheme to report !IsLocal")
	}
}

func TestIsMethodDescriptor(t *testing.T) {
	if !IsMethodDescriptor("Method(x).") {
		t.Error("expected descriptor with parens to be a method")
	}
	if IsMethodDescriptor("Type#") {
		t.Error("expected descriptor without parens to not be a method")
	}
}

func TestIsTypeDescriptor(t *testing.T) {
	if !IsTypeDescriptor("Widget#") {
		t.Error("expected descriptor ending in # to be a type")
	}
	if IsTypeDescriptor("Method().") {
		t.Error("expected method descriptor to not be a type")
	}
}
