package lead

import "time"

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatJSON ExportFormat = "json"
)

func (f ExportFormat) Valid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatXLSX, ExportFormatJSON:
		return true
	}
	return false
}

// ExportFilter narrows which leads an export job extracts.
type ExportFilter struct {
	Status string
	Source string
	Tag    string
}

// ExportJob mirrors the import job lifecycle for extraction: created in the
// registry, driven by a background task against paginated reads, polled until
// terminal, then downloaded.
type ExportJob struct {
	ExportID     string         `json:"exportId"`
	TenantID     string         `json:"tenantId"`
	Format       ExportFormat   `json:"format"`
	TotalRecords int            `json:"totalRecords"`
	Status       JobStatus      `json:"status"`
	Error        string         `json:"error,omitempty"`
	StartedAt    time.Time      `json:"startedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Duration     *time.Duration `json:"duration,omitempty"`

	// FileName and Data are populated once the job completes.
	FileName string `json:"fileName,omitempty"`
	Data     []byte `json:"-"`
}

func (j *ExportJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

func (j *ExportJob) Complete(status JobStatus, now time.Time) {
	if j.Terminal() {
		return
	}
	j.Status = status
	j.CompletedAt = &now
	d := now.Sub(j.StartedAt)
	j.Duration = &d
}
