package lead

import (
	"strings"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/parser"
)

const (
	fallbackSource   = "import"
	fallbackStatus   = domain.StatusNew
	fallbackPriority = domain.PriorityMedium
)

var tagSplitter = strings.NewReplacer(";", ",", "|", ",")

// Transform converts one validated row into a persistence-ready lead.
// Defaults apply exactly when the row omits a value; system fields always
// start at zero.
func Transform(row domain.ParsedRow, opts domain.ImportOptions, tenantID string) domain.Lead {
	entity := domain.Lead{
		TenantID: tenantID,
		Source:   fallbackSource,
		Status:   fallbackStatus,
		Priority: fallbackPriority,
	}

	entity.Name, _ = row.Text(parser.FieldName)
	entity.Phone, _ = row.Text(parser.FieldPhone)
	entity.Email, _ = row.Text(parser.FieldEmail)
	entity.Notes, _ = row.Text(parser.FieldNotes)

	entity.EstimatedValue = numberField(row, parser.FieldEstimated)
	entity.AskingPrice = numberField(row, parser.FieldAskingPrice)

	if addr := buildAddress(row); !addr.Empty() {
		entity.Address = &addr
	}
	if details := buildPropertyDetails(row); !details.Empty() {
		entity.PropertyDetails = &details
	}

	if source, ok := row.Text(parser.FieldSource); ok {
		entity.Source = source
	} else if opts.DefaultSource != "" {
		entity.Source = opts.DefaultSource
	}

	entity.Status = resolveStatus(row, opts)
	entity.Priority = resolvePriority(row, opts)
	entity.Tags = mergeTags(row, opts)

	return entity
}

func resolveStatus(row domain.ParsedRow, opts domain.ImportOptions) domain.Status {
	if raw, ok := row.Text(parser.FieldStatus); ok {
		if status := domain.NormalizeStatus(raw); status.Valid() {
			return status
		}
	}
	if opts.DefaultStatus != "" {
		if status := domain.NormalizeStatus(opts.DefaultStatus); status.Valid() {
			return status
		}
	}
	return fallbackStatus
}

func resolvePriority(row domain.ParsedRow, opts domain.ImportOptions) domain.Priority {
	if raw, ok := row.Text(parser.FieldPriority); ok {
		if priority := domain.NormalizePriority(raw); priority.Valid() {
			return priority
		}
	}
	if opts.DefaultPriority != "" {
		if priority := domain.NormalizePriority(opts.DefaultPriority); priority.Valid() {
			return priority
		}
	}
	return fallbackPriority
}

// mergeTags unions row tags (a delimited string split on comma, semicolon,
// or pipe) with the configured default tags: trimmed, deduplicated
// case-sensitively, empty strings dropped. Order of first appearance wins.
func mergeTags(row domain.ParsedRow, opts domain.ImportOptions) []string {
	var raw []string
	if value, ok := row.Text(parser.FieldTags); ok {
		raw = strings.Split(tagSplitter.Replace(value), ",")
	}
	raw = append(raw, opts.DefaultTags...)

	var tags []string
	seen := make(map[string]bool, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func buildAddress(row domain.ParsedRow) domain.Address {
	var addr domain.Address
	addr.Street, _ = row.Text(parser.FieldStreet)
	addr.City, _ = row.Text(parser.FieldCity)
	addr.State, _ = row.Text(parser.FieldState)
	addr.ZipCode, _ = row.Text(parser.FieldZipCode)
	addr.County, _ = row.Text(parser.FieldCounty)
	addr.FullAddress, _ = row.Text(parser.FieldFullAddress)
	return addr
}

func buildPropertyDetails(row domain.ParsedRow) domain.PropertyDetails {
	var details domain.PropertyDetails
	details.PropertyType, _ = row.Text(parser.FieldPropertyType)
	details.Bedrooms = numberField(row, parser.FieldBedrooms)
	details.Bathrooms = numberField(row, parser.FieldBathrooms)
	details.SquareFeet = numberField(row, parser.FieldSquareFeet)
	details.LotSize = numberField(row, parser.FieldLotSize)
	details.YearBuilt = numberField(row, parser.FieldYearBuilt)
	return details
}

func numberField(row domain.ParsedRow, field string) *float64 {
	if n, ok := row.Number(field); ok {
		return &n
	}
	return nil
}
