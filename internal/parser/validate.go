package parser

import (
	"fmt"
	"regexp"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

var (
	// Loose international pattern, applied after stripping separators.
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneStrip   = regexp.MustCompile(`[\s\-().]`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate checks the full row set in one pass. Errors block the row (and,
// under the all-or-nothing policy, the job); warnings mark values that will
// be replaced by defaults at transform time and do not block anything.
func Validate(rows []domain.ParsedRow) domain.ValidationResult {
	result := domain.ValidationResult{IsValid: true}

	for _, row := range rows {
		validateRequired(row, &result)
		validateFormats(row, &result)
		validateEnums(row, &result)
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func validateRequired(row domain.ParsedRow, result *domain.ValidationResult) {
	for _, field := range []string{FieldName, FieldPhone} {
		if _, ok := row.Text(field); !ok {
			result.Errors = append(result.Errors, domain.ValidationError{
				Row:     row.RowNumber,
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
	}
}

func validateFormats(row domain.ParsedRow, result *domain.ValidationResult) {
	if phone, ok := row.Text(FieldPhone); ok {
		if !phonePattern.MatchString(phoneStrip.ReplaceAllString(phone, "")) {
			result.Errors = append(result.Errors, domain.ValidationError{
				Row:     row.RowNumber,
				Field:   "phone",
				Value:   phone,
				Message: "invalid phone number format",
			})
		}
	}

	if email, ok := row.Text(FieldEmail); ok {
		if !emailPattern.MatchString(email) {
			result.Errors = append(result.Errors, domain.ValidationError{
				Row:     row.RowNumber,
				Field:   "email",
				Value:   email,
				Message: "invalid email format",
			})
		}
	}

	for _, field := range []string{FieldEstimated, FieldAskingPrice} {
		raw, ok := row.Fields[field]
		if !ok {
			continue
		}
		if _, isNumber := raw.(float64); !isNumber {
			result.Errors = append(result.Errors, domain.ValidationError{
				Row:     row.RowNumber,
				Field:   field,
				Value:   fmt.Sprintf("%v", raw),
				Message: fmt.Sprintf("%s must be a number", field),
			})
		}
	}
}

func validateEnums(row domain.ParsedRow, result *domain.ValidationResult) {
	if status, ok := row.Text(FieldStatus); ok {
		if !domain.NormalizeStatus(status).Valid() {
			result.Warnings = append(result.Warnings, domain.ValidationWarning{
				Row:     row.RowNumber,
				Field:   "status",
				Value:   status,
				Message: "unrecognized status, default will be applied",
			})
		}
	}

	if priority, ok := row.Text(FieldPriority); ok {
		if !domain.NormalizePriority(priority).Valid() {
			result.Warnings = append(result.Warnings, domain.ValidationWarning{
				Row:     row.RowNumber,
				Field:   "priority",
				Value:   priority,
				Message: "unrecognized priority, default will be applied",
			})
		}
	}
}
