package lead

import (
	"fmt"
	"path/filepath"
	"strings"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/parser"
)

// sampleRowCount is how many parsed rows a validate-only call returns for
// preview.
const sampleRowCount = 5

type ValidateFileRequest struct {
	FileName     string
	Data         []byte
	FieldMapping []domain.FieldMapping
}

type ValidateFileResult struct {
	TotalRows  int                     `json:"totalRows"`
	Headers    []string                `json:"headers"`
	Validation domain.ValidationResult `json:"validation"`
	SampleRows []domain.ParsedRow      `json:"sampleRows"`
}

// ValidateFile runs parse and validate without persisting anything, so
// callers can preview a file before committing to a real import.
func ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if len(req.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(req.Data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	parsed, err := parser.Parse(req.Data, ext, req.FieldMapping)
	if err != nil {
		return nil, err
	}

	sample := parsed.Rows
	if len(sample) > sampleRowCount {
		sample = sample[:sampleRowCount]
	}

	return &ValidateFileResult{
		TotalRows:  len(parsed.Rows),
		Headers:    parsed.Headers,
		Validation: parser.Validate(parsed.Rows),
		SampleRows: sample,
	}, nil
}
