// Package parser turns an uploaded spreadsheet-like file into normalized,
// field-addressed rows and validates them ahead of persistence.
package parser

import (
	"strings"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

// Target field paths. Nested paths use dot notation and are unpacked by the
// batch transformer.
const (
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldStreet       = "address.street"
	FieldCity         = "address.city"
	FieldState        = "address.state"
	FieldZipCode      = "address.zip_code"
	FieldCounty       = "address.county"
	FieldFullAddress  = "address.full_address"
	FieldPropertyType = "property_details.property_type"
	FieldBedrooms     = "property_details.bedrooms"
	FieldBathrooms    = "property_details.bathrooms"
	FieldSquareFeet   = "property_details.square_feet"
	FieldLotSize      = "property_details.lot_size"
	FieldYearBuilt    = "property_details.year_built"
	FieldEstimated    = "estimated_value"
	FieldAskingPrice  = "asking_price"
	FieldSource       = "source"
	FieldStatus       = "status"
	FieldPriority     = "priority"
	FieldTags         = "tags"
	FieldNotes        = "notes"
)

// defaultMappings is the heuristic table resolving common header spellings to
// target field paths. Keys are lowercase. Kept as data so it can be tested
// exhaustively and extended without touching parse logic.
var defaultMappings = map[string]string{
	"name":           FieldName,
	"full name":      FieldName,
	"full_name":      FieldName,
	"contact name":   FieldName,
	"lead name":      FieldName,
	"owner name":     FieldName,
	"owner":          FieldName,
	"phone":          FieldPhone,
	"phone number":   FieldPhone,
	"phone_number":   FieldPhone,
	"mobile":         FieldPhone,
	"cell":           FieldPhone,
	"telephone":      FieldPhone,
	"contact number": FieldPhone,
	"email":          FieldEmail,
	"email address":  FieldEmail,
	"e-mail":         FieldEmail,

	"street":           FieldStreet,
	"street address":   FieldStreet,
	"address":          FieldStreet,
	"property address": FieldStreet,
	"city":             FieldCity,
	"state":            FieldState,
	"zip":              FieldZipCode,
	"zip code":         FieldZipCode,
	"zip_code":         FieldZipCode,
	"postal code":      FieldZipCode,
	"postal_code":      FieldZipCode,
	"county":           FieldCounty,
	"full address":     FieldFullAddress,
	"full_address":     FieldFullAddress,

	"property type": FieldPropertyType,
	"property_type": FieldPropertyType,
	"bedrooms":      FieldBedrooms,
	"beds":          FieldBedrooms,
	"bathrooms":     FieldBathrooms,
	"baths":         FieldBathrooms,
	"square feet":   FieldSquareFeet,
	"square_feet":   FieldSquareFeet,
	"sqft":          FieldSquareFeet,
	"lot size":      FieldLotSize,
	"lot_size":      FieldLotSize,
	"year built":    FieldYearBuilt,
	"year_built":    FieldYearBuilt,

	"estimated value": FieldEstimated,
	"estimated_value": FieldEstimated,
	"arv":             FieldEstimated,
	"asking price":    FieldAskingPrice,
	"asking_price":    FieldAskingPrice,
	"price":           FieldAskingPrice,

	"source":      FieldSource,
	"lead source": FieldSource,
	"status":      FieldStatus,
	"priority":    FieldPriority,
	"tags":        FieldTags,
	"labels":      FieldTags,
	"notes":       FieldNotes,
	"comments":    FieldNotes,
	"description": FieldNotes,
}

// ResolveHeaders maps each source header to a target field path. Explicit
// mappings win over the heuristic table, both matched case-insensitively.
// Headers matching neither resolve to "" and their cells are dropped.
func ResolveHeaders(headers []string, explicit []domain.FieldMapping) []string {
	overrides := make(map[string]string, len(explicit))
	for _, m := range explicit {
		overrides[strings.ToLower(strings.TrimSpace(m.SourceColumn))] = m.TargetField
	}

	resolved := make([]string, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if target, ok := overrides[key]; ok {
			resolved[i] = target
			continue
		}
		resolved[i] = defaultMappings[key]
	}
	return resolved
}
