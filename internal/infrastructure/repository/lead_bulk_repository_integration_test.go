package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/infrastructure/repository"
)

const leadSchemaSQL = `
    CREATE TABLE IF NOT EXISTS leads (
      id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
      tenant_id TEXT NOT NULL,
      name VARCHAR(255) NOT NULL,
      phone VARCHAR(32) NOT NULL DEFAULT '',
      email VARCHAR(320) NOT NULL DEFAULT '',
      street VARCHAR(255) NOT NULL DEFAULT '',
      city VARCHAR(120) NOT NULL DEFAULT '',
      state VARCHAR(120) NOT NULL DEFAULT '',
      zip_code VARCHAR(20) NOT NULL DEFAULT '',
      county VARCHAR(120) NOT NULL DEFAULT '',
      full_address TEXT NOT NULL DEFAULT '',
      property_type VARCHAR(64) NOT NULL DEFAULT '',
      bedrooms NUMERIC,
      bathrooms NUMERIC,
      square_feet NUMERIC,
      lot_size NUMERIC,
      year_built NUMERIC,
      estimated_value NUMERIC,
      asking_price NUMERIC,
      source VARCHAR(64) NOT NULL DEFAULT 'import',
      status VARCHAR(32) NOT NULL DEFAULT 'new',
      priority VARCHAR(32) NOT NULL DEFAULT 'medium',
      tags JSONB,
      notes TEXT NOT NULL DEFAULT '',
      lead_score INT NOT NULL DEFAULT 0,
      qualification_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
      communication_count INT NOT NULL DEFAULT 0,
      created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
      updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
    CREATE INDEX IF NOT EXISTS idx_leads_tenant ON leads (tenant_id);
    CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status);
    CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_tenant_phone
      ON leads (tenant_id, phone) WHERE phone <> '';
    CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_tenant_email
      ON leads (tenant_id, email) WHERE phone = '' AND email <> '';
    CREATE UNLOGGED TABLE IF NOT EXISTS stg_leads (
      batch_id UUID NOT NULL,
      row_index BIGINT NOT NULL,
      tenant_id TEXT NOT NULL,
      name TEXT NOT NULL,
      phone TEXT NOT NULL,
      email TEXT NOT NULL,
      street TEXT NOT NULL,
      city TEXT NOT NULL,
      state TEXT NOT NULL,
      zip_code TEXT NOT NULL,
      county TEXT NOT NULL,
      full_address TEXT NOT NULL,
      property_type TEXT NOT NULL,
      bedrooms NUMERIC,
      bathrooms NUMERIC,
      square_feet NUMERIC,
      lot_size NUMERIC,
      year_built NUMERIC,
      estimated_value NUMERIC,
      asking_price NUMERIC,
      source TEXT NOT NULL,
      status TEXT NOT NULL,
      priority TEXT NOT NULL,
      tags JSONB,
      notes TEXT NOT NULL
    );
    `

func setupLeadStore(t *testing.T) (*gorm.DB, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}

	if err := gdb.Exec(leadSchemaSQL).Error; err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}
	if err := gdb.Exec("DELETE FROM leads; DELETE FROM stg_leads;").Error; err != nil {
		t.Fatalf("failed cleanup: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return gdb, pool
}

func TestLeadBulkRepositoryWriteBatchIntegration(t *testing.T) {
	_, pool := setupLeadStore(t)

	repo := repository.NewLeadBulkRepository(pool)

	leads := []domain.Lead{
		{
			TenantID: "tenant-1",
			Name:     "Alice Seller",
			Phone:    "5551112222",
			Email:    "alice@example.com",
			Source:   "import",
			Status:   domain.StatusNew,
			Priority: domain.PriorityMedium,
			Tags:     []string{"imported"},
		},
		{
			TenantID: "tenant-1",
			Name:     "Bob NoPhone",
			Email:    "bob@example.com",
			Source:   "import",
			Status:   domain.StatusNew,
			Priority: domain.PriorityMedium,
		},
	}

	result, err := repo.WriteBatch(context.Background(), leads, domain.ImportOptions{})
	if err != nil {
		t.Fatalf("write batch failed: %v", err)
	}
	if result.Inserted != 2 || result.Updated != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected first result: %+v", result)
	}

	// Same identities again without updateExisting: both skipped.
	result, err = repo.WriteBatch(context.Background(), leads, domain.ImportOptions{})
	if err != nil {
		t.Fatalf("write duplicate batch failed: %v", err)
	}
	if result.Inserted != 0 || result.Updated != 0 || result.Skipped != 2 {
		t.Fatalf("unexpected duplicate result: %+v", result)
	}

	// With updateExisting the rows merge instead.
	leads[0].Name = "Alice Updated"
	result, err = repo.WriteBatch(context.Background(), leads, domain.ImportOptions{UpdateExisting: true})
	if err != nil {
		t.Fatalf("write update batch failed: %v", err)
	}
	if result.Inserted != 0 || result.Updated != 2 || result.Skipped != 0 {
		t.Fatalf("unexpected update result: %+v", result)
	}

	var name string
	if err := pool.QueryRow(context.Background(),
		"SELECT name FROM leads WHERE tenant_id = $1 AND phone = $2",
		"tenant-1", "5551112222").Scan(&name); err != nil {
		t.Fatalf("query updated lead: %v", err)
	}
	if name != "Alice Updated" {
		t.Fatalf("expected updated name, got %q", name)
	}

	var count int64
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM stg_leads").Scan(&count); err != nil {
		t.Fatalf("query staging: %v", err)
	}
	if count != 0 {
		t.Fatalf("staging not cleaned up, %d rows left", count)
	}
}

func TestLeadBulkRepositoryInBatchDuplicatesIntegration(t *testing.T) {
	_, pool := setupLeadStore(t)

	repo := repository.NewLeadBulkRepository(pool)

	leads := []domain.Lead{
		{TenantID: "tenant-1", Name: "First", Phone: "5550001111", Status: domain.StatusNew, Priority: domain.PriorityMedium},
		{TenantID: "tenant-1", Name: "Last Wins", Phone: "5550001111", Status: domain.StatusNew, Priority: domain.PriorityMedium},
	}

	result, err := repo.WriteBatch(context.Background(), leads, domain.ImportOptions{})
	if err != nil {
		t.Fatalf("write batch failed: %v", err)
	}
	if result.Inserted != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	var name string
	if err := pool.QueryRow(context.Background(),
		"SELECT name FROM leads WHERE tenant_id = $1 AND phone = $2",
		"tenant-1", "5550001111").Scan(&name); err != nil {
		t.Fatalf("query lead: %v", err)
	}
	if name != "Last Wins" {
		t.Fatalf("expected last occurrence to win, got %q", name)
	}
}
