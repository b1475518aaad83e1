package lead

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/parser"
	"github.com/estateiq/lead-import/internal/registry"
)

const exportPageSize = 500

// Exporter mirrors the import job lifecycle against a read query: a job is
// registered, a background task pages through matching leads, encodes them,
// and parks the finished file on the job for download.
type Exporter struct {
	jobs    *registry.Registry
	query   domain.QueryRepository
	timeout time.Duration
	now     func() time.Time
}

func NewExporter(jobs *registry.Registry, query domain.QueryRepository, timeout time.Duration) *Exporter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Exporter{jobs: jobs, query: query, timeout: timeout, now: time.Now}
}

type ExportRequest struct {
	TenantID string
	Format   domain.ExportFormat
	Filter   domain.ExportFilter
}

func (e *Exporter) Start(req ExportRequest) (domain.ExportJob, error) {
	if strings.TrimSpace(req.TenantID) == "" {
		return domain.ExportJob{}, ErrMissingTenant
	}
	if !req.Format.Valid() {
		return domain.ExportJob{}, fmt.Errorf("%w: %q", ErrInvalidExportFormat, req.Format)
	}

	job := &domain.ExportJob{
		ExportID:  uuid.NewString(),
		TenantID:  req.TenantID,
		Format:    req.Format,
		Status:    domain.JobStatusProcessing,
		StartedAt: e.now(),
	}
	e.jobs.CreateExport(job)

	// Copy before the goroutine starts: once it runs, job is mutated under
	// the registry lock and may not be read directly.
	snapshot := *job

	go e.run(job.ExportID, req)

	return snapshot, nil
}

func (e *Exporter) Get(exportID string) (domain.ExportJob, bool) {
	return e.jobs.GetExport(exportID)
}

// Download returns the encoded file for a completed export.
func (e *Exporter) Download(exportID string) (*domain.ExportJob, error) {
	job, ok := e.jobs.GetExport(exportID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, ErrExportNotReady
	}
	return &job, nil
}

func (e *Exporter) run(exportID string, req ExportRequest) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("export pipeline panicked", "export_id", exportID, "panic", r)
			e.fail(exportID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	leads, err := e.collect(req)
	if err != nil {
		slog.Warn("export query failed", "export_id", exportID, "error", err)
		e.fail(exportID, err.Error())
		return
	}

	data, err := Encode(leads, req.Format)
	if err != nil {
		e.fail(exportID, err.Error())
		return
	}

	now := e.now()
	e.jobs.UpdateExport(exportID, func(job *domain.ExportJob) {
		job.TotalRecords = len(leads)
		job.FileName = fmt.Sprintf("leads-export-%s.%s", now.Format("20060102-150405"), req.Format)
		job.Data = data
		job.Complete(domain.JobStatusCompleted, now)
	})
	slog.Info("export completed", "export_id", exportID, "records", len(leads))
}

func (e *Exporter) collect(req ExportRequest) ([]domain.Lead, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	total, err := e.query.Count(ctx, req.TenantID, req.Filter)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	leads := make([]domain.Lead, 0, total)
	for offset := 0; ; offset += exportPageSize {
		page, err := e.query.List(ctx, req.TenantID, req.Filter, offset, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("list leads at offset %d: %w", offset, err)
		}
		leads = append(leads, page...)
		if len(page) < exportPageSize {
			return leads, nil
		}
	}
}

func (e *Exporter) fail(exportID, message string) {
	now := e.now()
	e.jobs.UpdateExport(exportID, func(job *domain.ExportJob) {
		job.Error = message
		job.Complete(domain.JobStatusFailed, now)
	})
}

// Encode renders leads in the requested format. The CSV and XLSX column set
// matches the import template, so an export re-imports without loss.
func Encode(leads []domain.Lead, format domain.ExportFormat) ([]byte, error) {
	switch format {
	case domain.ExportFormatCSV:
		return encodeCSV(leads)
	case domain.ExportFormatXLSX:
		return encodeXLSX(leads)
	case domain.ExportFormatJSON:
		return json.MarshalIndent(leads, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}
}

func encodeCSV(leads []domain.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(parser.TemplateHeaders); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}
	for i := range leads {
		if err := w.Write(exportRecord(&leads[i])); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeXLSX(leads []domain.Lead) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return wb.SetSheetRow(sheet, cell, &cells)
	}

	if err := writeRow(1, parser.TemplateHeaders); err != nil {
		return nil, err
	}
	for i := range leads {
		if err := writeRow(i+2, exportRecord(&leads[i])); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("write export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// exportRecord renders one lead in template column order.
func exportRecord(l *domain.Lead) []string {
	addr := l.Address
	if addr == nil {
		addr = &domain.Address{}
	}
	details := l.PropertyDetails
	if details == nil {
		details = &domain.PropertyDetails{}
	}

	return []string{
		l.Name, l.Phone, l.Email,
		addr.Street, addr.City, addr.State, addr.ZipCode, addr.County, addr.FullAddress,
		details.PropertyType,
		numberText(details.Bedrooms), numberText(details.Bathrooms),
		numberText(details.SquareFeet), numberText(details.LotSize), numberText(details.YearBuilt),
		numberText(l.EstimatedValue), numberText(l.AskingPrice),
		l.Source, string(l.Status), string(l.Priority),
		strings.Join(l.Tags, ";"), l.Notes,
	}
}

func numberText(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}
