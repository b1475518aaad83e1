package lead

import "context"

// BulkWriter persists one batch of leads as a single multi-row write. A
// duplicate inside the batch never fails the write; a returned error means
// the whole batch failed at the store level.
type BulkWriter interface {
	WriteBatch(ctx context.Context, leads []Lead, opts ImportOptions) (BatchResult, error)
}

// QueryRepository serves reads: single-lead lookup and paginated extraction
// for export jobs.
type QueryRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*Lead, error)
	List(ctx context.Context, tenantID string, filter ExportFilter, offset, limit int) ([]Lead, error)
	Count(ctx context.Context, tenantID string, filter ExportFilter) (int64, error)
}
