package lead

import (
	"strconv"
	"time"
)

// ParsedRow is one data row of the uploaded file after header resolution and
// value normalization. Values are string, float64, or absent. RowNumber is
// the row's position in the source file counting the header, so the first
// data row is 2, matching what a spreadsheet user sees.
type ParsedRow struct {
	RowNumber int
	Fields    map[string]any
}

func (r ParsedRow) String(field string) (string, bool) {
	v, ok := r.Fields[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (r ParsedRow) Number(field string) (float64, bool) {
	v, ok := r.Fields[field]
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// Text reads a field as text. Cells the normalizer coerced to numbers render
// back to digits, so a numeric phone or zip column still reads as text.
func (r ParsedRow) Text(field string) (string, bool) {
	v, ok := r.Fields[field]
	if !ok {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return "", false
	}
}

// FieldMapping binds one source column name to a target field path,
// overriding the default heuristic table.
type FieldMapping struct {
	SourceColumn string `json:"sourceColumn"`
	TargetField  string `json:"targetField"`
}

type ImportOptions struct {
	UpdateExisting  bool
	SkipDuplicates  bool
	BatchSize       int
	DefaultSource   string
	DefaultStatus   string
	DefaultPriority string
	DefaultTags     []string
	FieldMapping    []FieldMapping
}

const DefaultBatchSize = 100

// Normalize fills unset options with their documented defaults.
func (o ImportOptions) Normalize() ImportOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}

type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationResult struct {
	IsValid  bool                `json:"isValid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ImportJob tracks one import from file acceptance to terminal status. It is
// mutated in place by the orchestrator and observed through registry polls.
// SuccessfulRows+FailedRows never exceeds TotalRecords, status only moves
// forward, and counters freeze once CompletedAt is set.
type ImportJob struct {
	ImportID       string              `json:"importId"`
	TenantID       string              `json:"tenantId"`
	UserID         string              `json:"userId"`
	FileName       string              `json:"fileName"`
	TotalRecords   int                 `json:"totalRecords"`
	SuccessfulRows int                 `json:"successfulRows"`
	FailedRows     int                 `json:"failedRows"`
	SkippedRows    int                 `json:"skippedRows"`
	Status         JobStatus           `json:"status"`
	Errors         []ValidationError   `json:"errors"`
	Warnings       []ValidationWarning `json:"warnings"`
	StartedAt      time.Time           `json:"startedAt"`
	CompletedAt    *time.Time          `json:"completedAt,omitempty"`
	Duration       *time.Duration      `json:"duration,omitempty"`
}

func (j *ImportJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Complete stamps the terminal state. It is a no-op when the job is already
// terminal, which keeps counters frozen after CompletedAt is set.
func (j *ImportJob) Complete(status JobStatus, now time.Time) {
	if j.Terminal() {
		return
	}
	j.Status = status
	j.CompletedAt = &now
	d := now.Sub(j.StartedAt)
	j.Duration = &d
}

// BatchResult reports one bulk write: rows newly inserted, rows updated in
// place, and rows skipped as duplicates.
type BatchResult struct {
	Inserted int64
	Updated  int64
	Skipped  int64
}
