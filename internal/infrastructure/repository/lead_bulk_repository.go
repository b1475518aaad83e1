package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

// LeadBulkRepository writes one import batch as a single transaction: rows
// are copied into a staging table, then upserted into leads keyed on
// (tenant_id, phone) and, for phone-less rows, (tenant_id, email). Per-row
// conflicts never abort the batch; a returned error means the whole batch
// failed at the store level.
type LeadBulkRepository struct {
	pool *pgxpool.Pool
}

func NewLeadBulkRepository(pool *pgxpool.Pool) *LeadBulkRepository {
	return &LeadBulkRepository{pool: pool}
}

var stagingColumns = []string{
	"batch_id", "row_index", "tenant_id", "name", "phone", "email",
	"street", "city", "state", "zip_code", "county", "full_address",
	"property_type", "bedrooms", "bathrooms", "square_feet", "lot_size", "year_built",
	"estimated_value", "asking_price",
	"source", "status", "priority", "tags", "notes",
}

func (r *LeadBulkRepository) WriteBatch(ctx context.Context, leads []domain.Lead, opts domain.ImportOptions) (domain.BatchResult, error) {
	if len(leads) == 0 {
		return domain.BatchResult{}, nil
	}

	batchID := uuid.NewString()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, 0, len(leads))
	for i := range leads {
		row, err := stagingRow(batchID, int64(i), &leads[i])
		if err != nil {
			return domain.BatchResult{}, err
		}
		rows = append(rows, row)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"stg_leads"}, stagingColumns, pgx.CopyFromRows(rows)); err != nil {
		return domain.BatchResult{}, fmt.Errorf("copy leads staging: %w", err)
	}

	inserted, updated, err := upsertLeadsByPhone(ctx, tx, batchID, opts.UpdateExisting)
	if err != nil {
		return domain.BatchResult{}, err
	}

	insertedByEmail, updatedByEmail, err := upsertLeadsByEmail(ctx, tx, batchID, opts.UpdateExisting)
	if err != nil {
		return domain.BatchResult{}, err
	}
	inserted += insertedByEmail
	updated += updatedByEmail

	if _, err := tx.Exec(ctx, "DELETE FROM stg_leads WHERE batch_id = $1", batchID); err != nil {
		return domain.BatchResult{}, fmt.Errorf("cleanup stg_leads: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.BatchResult{}, fmt.Errorf("commit lead batch: %w", err)
	}

	result := domain.BatchResult{Inserted: inserted, Updated: updated}
	// In-batch duplicates collapsed by DISTINCT ON and rows skipped by
	// DO NOTHING both land here.
	result.Skipped = int64(len(leads)) - inserted - updated
	if result.Skipped < 0 {
		result.Skipped = 0
	}
	return result, nil
}

const leadInsertColumns = `tenant_id, name, phone, email,
       street, city, state, zip_code, county, full_address,
       property_type, bedrooms, bathrooms, square_feet, lot_size, year_built,
       estimated_value, asking_price,
       source, status, priority, tags, notes,
       lead_score, qualification_probability, communication_count,
       created_at, updated_at`

const leadStagedSelect = `tenant_id, name, phone, email,
       street, city, state, zip_code, county, full_address,
       property_type, bedrooms, bathrooms, square_feet, lot_size, year_built,
       estimated_value, asking_price,
       source, status, priority, tags, notes,
       0, 0, 0,
       NOW(), NOW()`

const leadUpdateSet = `SET name = EXCLUDED.name,
          email = EXCLUDED.email,
          street = EXCLUDED.street,
          city = EXCLUDED.city,
          state = EXCLUDED.state,
          zip_code = EXCLUDED.zip_code,
          county = EXCLUDED.county,
          full_address = EXCLUDED.full_address,
          property_type = EXCLUDED.property_type,
          bedrooms = EXCLUDED.bedrooms,
          bathrooms = EXCLUDED.bathrooms,
          square_feet = EXCLUDED.square_feet,
          lot_size = EXCLUDED.lot_size,
          year_built = EXCLUDED.year_built,
          estimated_value = EXCLUDED.estimated_value,
          asking_price = EXCLUDED.asking_price,
          source = EXCLUDED.source,
          status = EXCLUDED.status,
          priority = EXCLUDED.priority,
          tags = EXCLUDED.tags,
          notes = EXCLUDED.notes,
          updated_at = NOW()`

// upsertLeadsByPhone merges staged rows that carry a phone. DISTINCT ON
// keeps the last occurrence per identity so a file repeating a phone number
// cannot make one statement touch the same row twice.
func upsertLeadsByPhone(ctx context.Context, tx pgx.Tx, batchID string, updateExisting bool) (int64, int64, error) {
	action := "DO NOTHING"
	if updateExisting {
		action = "DO UPDATE " + leadUpdateSet
	}

	query := fmt.Sprintf(`
WITH staged AS (
    SELECT DISTINCT ON (tenant_id, phone) %s
    FROM stg_leads
    WHERE batch_id = $1 AND phone <> ''
    ORDER BY tenant_id, phone, row_index DESC
), upserted AS (
    INSERT INTO leads (%s)
    SELECT * FROM staged
    ON CONFLICT (tenant_id, phone) WHERE phone <> '' %s
    RETURNING (xmax = 0) AS inserted
)
SELECT inserted FROM upserted
`, leadStagedSelect, leadInsertColumns, action)

	rows, err := tx.Query(ctx, query, batchID)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert leads by phone: %w", err)
	}
	defer rows.Close()

	return countInsertedUpdated(rows)
}

// upsertLeadsByEmail merges staged rows whose identity falls back to email
// because no phone is present. Rows with neither identity are left in
// staging and report as skipped.
func upsertLeadsByEmail(ctx context.Context, tx pgx.Tx, batchID string, updateExisting bool) (int64, int64, error) {
	action := "DO NOTHING"
	if updateExisting {
		action = "DO UPDATE " + leadUpdateSet
	}

	query := fmt.Sprintf(`
WITH staged AS (
    SELECT DISTINCT ON (tenant_id, email) %s
    FROM stg_leads
    WHERE batch_id = $1 AND phone = '' AND email <> ''
    ORDER BY tenant_id, email, row_index DESC
), upserted AS (
    INSERT INTO leads (%s)
    SELECT * FROM staged
    ON CONFLICT (tenant_id, email) WHERE phone = '' AND email <> '' %s
    RETURNING (xmax = 0) AS inserted
)
SELECT inserted FROM upserted
`, leadStagedSelect, leadInsertColumns, action)

	rows, err := tx.Query(ctx, query, batchID)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert leads by email: %w", err)
	}
	defer rows.Close()

	return countInsertedUpdated(rows)
}

func countInsertedUpdated(rows pgx.Rows) (int64, int64, error) {
	var inserted int64
	var updated int64

	for rows.Next() {
		var isInsert bool
		if err := rows.Scan(&isInsert); err != nil {
			return 0, 0, err
		}
		if isInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := rows.Err(); err != nil {
		return 0, 0, err
	}

	return inserted, updated, nil
}

func stagingRow(batchID string, index int64, l *domain.Lead) ([]any, error) {
	tagValues := l.Tags
	if tagValues == nil {
		tagValues = []string{}
	}
	tags, err := json.Marshal(tagValues)
	if err != nil {
		return nil, fmt.Errorf("marshal tags for row %d: %w", index, err)
	}

	addr := l.Address
	if addr == nil {
		addr = &domain.Address{}
	}
	details := l.PropertyDetails
	if details == nil {
		details = &domain.PropertyDetails{}
	}

	return []any{
		batchID, index, l.TenantID, l.Name, l.Phone, l.Email,
		addr.Street, addr.City, addr.State, addr.ZipCode, addr.County, addr.FullAddress,
		details.PropertyType, details.Bedrooms, details.Bathrooms,
		details.SquareFeet, details.LotSize, details.YearBuilt,
		l.EstimatedValue, l.AskingPrice,
		l.Source, string(l.Status), string(l.Priority), string(tags), l.Notes,
	}, nil
}
