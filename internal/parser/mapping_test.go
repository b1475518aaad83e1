package parser_test

import (
	"testing"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/parser"
)

func TestResolveHeadersHeuristics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   string
	}{
		{"Name", "name"},
		{"FULL NAME", "name"},
		{"owner", "name"},
		{"Phone Number", "phone"},
		{"mobile", "phone"},
		{"Cell", "phone"},
		{"E-Mail", "email"},
		{"zip", "address.zip_code"},
		{"Zip Code", "address.zip_code"},
		{"postal_code", "address.zip_code"},
		{"Property Address", "address.street"},
		{"county", "address.county"},
		{"full address", "address.full_address"},
		{"beds", "property_details.bedrooms"},
		{"Baths", "property_details.bathrooms"},
		{"sqft", "property_details.square_feet"},
		{"Lot Size", "property_details.lot_size"},
		{"year built", "property_details.year_built"},
		{"ARV", "estimated_value"},
		{"price", "asking_price"},
		{"Lead Source", "source"},
		{"labels", "tags"},
		{"comments", "notes"},
		{"unmapped thing", ""},
	}

	for _, tc := range cases {
		resolved := parser.ResolveHeaders([]string{tc.header}, nil)
		if resolved[0] != tc.want {
			t.Errorf("header %q resolved to %q, want %q", tc.header, resolved[0], tc.want)
		}
	}
}

func TestResolveHeadersExplicitWins(t *testing.T) {
	t.Parallel()

	resolved := parser.ResolveHeaders(
		[]string{"Phone", "Custom"},
		[]domain.FieldMapping{
			{SourceColumn: "phone", TargetField: "notes"},
			{SourceColumn: " custom ", TargetField: "tags"},
		},
	)
	if resolved[0] != "notes" {
		t.Fatalf("explicit mapping must override heuristics, got %q", resolved[0])
	}
	if resolved[1] != "tags" {
		t.Fatalf("explicit mapping must match trimmed, case-insensitive, got %q", resolved[1])
	}
}

func TestTemplateHeadersAllResolve(t *testing.T) {
	t.Parallel()

	resolved := parser.ResolveHeaders(parser.TemplateHeaders, nil)
	seen := make(map[string]bool)
	for i, field := range resolved {
		if field == "" {
			t.Errorf("template header %q does not resolve", parser.TemplateHeaders[i])
			continue
		}
		if seen[field] {
			t.Errorf("template headers collide on field %q", field)
		}
		seen[field] = true
	}
}
