package parser_test

import (
	"testing"

	"github.com/estateiq/lead-import/internal/parser"
)

func TestValidateMissingName(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone\n,5551112222\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if validation.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(validation.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", validation.Errors)
	}
	if validation.Errors[0].Field != "name" {
		t.Fatalf("expected name error, got %q", validation.Errors[0].Field)
	}
	if validation.Errors[0].Row != 2 {
		t.Fatalf("expected row 2, got %d", validation.Errors[0].Row)
	}
}

func TestValidateInvalidPhoneOnMiddleRow(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone\n" +
		"Alice,5551112222\n" +
		"Bob,abc\n" +
		"Carol,555-333-4444\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if validation.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(validation.Errors) != 1 {
		t.Fatalf("expected one error, got %v", validation.Errors)
	}
	got := validation.Errors[0]
	if got.Field != "phone" || got.Row != 3 || got.Value != "abc" {
		t.Fatalf("unexpected error attribution: %+v", got)
	}
}

func TestValidatePhoneSeparatorsStripped(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone\nAlice,\"+1 (555) 123-45.67\"\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if !validation.IsValid {
		t.Fatalf("expected valid, got %v", validation.Errors)
	}
}

func TestValidateBadEmail(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone,Email\nAlice,5551112222,not-an-email\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if validation.IsValid {
		t.Fatal("expected invalid result")
	}
	if validation.Errors[0].Field != "email" {
		t.Fatalf("expected email error, got %+v", validation.Errors[0])
	}
}

func TestValidateNonNumericPrice(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone,Asking Price\nAlice,5551112222,lots of money\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if validation.IsValid {
		t.Fatal("expected invalid result")
	}
	if validation.Errors[0].Field != "asking_price" {
		t.Fatalf("expected asking_price error, got %+v", validation.Errors[0])
	}
}

func TestValidateUnknownStatusIsWarningNotError(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone,Status,Priority\n" +
		"Alice,5551112222,archived,medium\n" +
		"Bob,5553334444,new,whenever\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if !validation.IsValid {
		t.Fatalf("enum drift must not block, got errors %v", validation.Errors)
	}
	if len(validation.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", validation.Warnings)
	}
	if validation.Warnings[0].Field != "status" || validation.Warnings[0].Value != "archived" {
		t.Fatalf("unexpected warning: %+v", validation.Warnings[0])
	}
	if validation.Warnings[1].Field != "priority" || validation.Warnings[1].Row != 3 {
		t.Fatalf("unexpected warning: %+v", validation.Warnings[1])
	}
}

func TestValidateStatusSpellingNormalized(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone,Status\nAlice,5551112222,Under Contract\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if len(validation.Warnings) != 0 {
		t.Fatalf("spelling variants of valid statuses must not warn, got %v", validation.Warnings)
	}
}

func TestValidateMissingBothRequiredFields(t *testing.T) {
	t.Parallel()

	data := []byte("Name,Phone,Email\n,,alice@example.com\n")
	result, err := parser.Parse(data, "csv", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	validation := parser.Validate(result.Rows)
	if len(validation.Errors) != 2 {
		t.Fatalf("expected one error per missing field, got %v", validation.Errors)
	}
}
