package lead

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/parser"
	"github.com/estateiq/lead-import/internal/registry"
)

// MaxFileSize caps uploads at 10 MB, matching the HTTP body limit.
const MaxFileSize = 10 << 20

// maxStoredErrors bounds the error list kept on a job. FailedRows keeps the
// true count even when the list is truncated.
const maxStoredErrors = 100

// Legacy OLE .xls is not accepted: excelize only reads OOXML workbooks, so
// an .xls upload would always die as a whole-job parse failure.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

type ImporterConfig struct {
	BatchWriteTimeout time.Duration
}

// Importer owns the import job lifecycle: it accepts a file, returns the
// initial job record synchronously, and drives parse, validate, transform,
// and batch writes from a detached goroutine that reports progress through
// the registry.
type Importer struct {
	jobs   *registry.Registry
	writer domain.BulkWriter
	cfg    ImporterConfig
	now    func() time.Time
}

func NewImporter(jobs *registry.Registry, writer domain.BulkWriter, cfg ImporterConfig) *Importer {
	if cfg.BatchWriteTimeout <= 0 {
		cfg.BatchWriteTimeout = 30 * time.Second
	}
	return &Importer{
		jobs:   jobs,
		writer: writer,
		cfg:    cfg,
		now:    time.Now,
	}
}

type ImportRequest struct {
	FileName string
	Data     []byte
	TenantID string
	UserID   string
	Options  domain.ImportOptions
}

// Start validates the request, registers a job, and kicks off the pipeline.
// The returned job is the caller's polling handle; it never blocks on the
// pipeline itself.
func (i *Importer) Start(req ImportRequest) (domain.ImportJob, error) {
	if strings.TrimSpace(req.TenantID) == "" {
		return domain.ImportJob{}, ErrMissingTenant
	}
	if strings.TrimSpace(req.UserID) == "" {
		return domain.ImportJob{}, ErrMissingUser
	}
	if len(req.Data) == 0 {
		return domain.ImportJob{}, ErrEmptyFile
	}
	if len(req.Data) > MaxFileSize {
		return domain.ImportJob{}, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !allowedExtensions[ext] {
		return domain.ImportJob{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	job := &domain.ImportJob{
		ImportID:  uuid.NewString(),
		TenantID:  req.TenantID,
		UserID:    req.UserID,
		FileName:  req.FileName,
		Status:    domain.JobStatusProcessing,
		StartedAt: i.now(),
	}
	i.jobs.CreateImport(job)

	// Copy before the goroutine starts: once it runs, job is mutated under
	// the registry lock and may not be read directly.
	snapshot := *job

	go i.run(job.ImportID, req, ext)

	return snapshot, nil
}

// Get returns the current snapshot of a job for polling.
func (i *Importer) Get(importID string) (domain.ImportJob, bool) {
	return i.jobs.GetImport(importID)
}

func (i *Importer) run(importID string, req ImportRequest, ext string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("import pipeline panicked", "import_id", importID, "panic", r)
			i.failJob(importID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	opts := req.Options.Normalize()

	parsed, err := parser.Parse(req.Data, ext, opts.FieldMapping)
	if err != nil {
		slog.Warn("import parse failed", "import_id", importID, "error", err)
		i.failJob(importID, fmt.Sprintf("failed to parse file: %v", err))
		return
	}

	total := len(parsed.Rows)
	validation := parser.Validate(parsed.Rows)

	i.jobs.UpdateImport(importID, func(job *domain.ImportJob) {
		job.TotalRecords = total
		job.Warnings = validation.Warnings
	})

	if !validation.IsValid {
		// All-or-nothing policy: one blocking error discards the whole
		// upload, so every row counts as failed.
		now := i.now()
		i.jobs.UpdateImport(importID, func(job *domain.ImportJob) {
			job.Errors = truncateErrors(validation.Errors)
			job.FailedRows = total
			job.Complete(domain.JobStatusFailed, now)
		})
		return
	}

	for start := 0; start < total; start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > total {
			end = total
		}
		i.processBatch(importID, parsed.Rows[start:end], opts, req.TenantID, total)
	}

	now := i.now()
	i.jobs.UpdateImport(importID, func(job *domain.ImportJob) {
		job.Complete(domain.JobStatusCompleted, now)
	})
	slog.Info("import completed", "import_id", importID, "total", total)
}

// processBatch transforms and writes one batch. A store-level failure marks
// every row in the batch failed and lets the next batch proceed.
func (i *Importer) processBatch(importID string, rows []domain.ParsedRow, opts domain.ImportOptions, tenantID string, total int) {
	leads := make([]domain.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, Transform(row, opts, tenantID))
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.cfg.BatchWriteTimeout)
	defer cancel()

	result, err := i.writer.WriteBatch(ctx, leads, opts)
	if err != nil {
		slog.Error("batch write failed", "import_id", importID, "rows", len(rows), "error", err)
		i.jobs.UpdateImport(importID, func(job *domain.ImportJob) {
			job.FailedRows += len(rows)
			for _, row := range rows {
				if len(job.Errors) >= maxStoredErrors {
					break
				}
				job.Errors = append(job.Errors, domain.ValidationError{
					Row:     row.RowNumber,
					Message: fmt.Sprintf("batch write failed: %v", err),
				})
			}
		})
		return
	}

	i.jobs.UpdateImport(importID, func(job *domain.ImportJob) {
		job.SuccessfulRows += int(result.Inserted + result.Updated)
		if job.SuccessfulRows > total {
			job.SuccessfulRows = total
		}
		job.SkippedRows += int(result.Skipped)
	})
}

func (i *Importer) failJob(importID, message string) {
	now := i.now()
	i.jobs.UpdateImport(importID, func(job *domain.ImportJob) {
		job.Errors = append(job.Errors, domain.ValidationError{Message: message})
		job.Complete(domain.JobStatusFailed, now)
	})
}

func truncateErrors(errs []domain.ValidationError) []domain.ValidationError {
	if len(errs) <= maxStoredErrors {
		return errs
	}
	return errs[:maxStoredErrors]
}
