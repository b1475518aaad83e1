package echo_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	app "github.com/estateiq/lead-import/internal/application/lead"
	domain "github.com/estateiq/lead-import/internal/domain/lead"
	httpecho "github.com/estateiq/lead-import/internal/interfaces/http/echo"
)

type stubQueryRepo struct {
	lead *domain.Lead
	err  error
}

func (s *stubQueryRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.lead == nil {
		return nil, domain.ErrLeadNotFound
	}
	return s.lead, nil
}

func (s *stubQueryRepo) List(ctx context.Context, tenantID string, filter domain.ExportFilter, offset, limit int) ([]domain.Lead, error) {
	return nil, nil
}

func (s *stubQueryRepo) Count(ctx context.Context, tenantID string, filter domain.ExportFilter) (int64, error) {
	return 0, nil
}

func newLeadServer(repo domain.QueryRepository) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e,
		httpecho.NewImportHandler(&fakeImportService{}),
		httpecho.NewExportHandler(&fakeExportService{}),
		httpecho.NewLeadHandler(app.NewGetLeadByID(repo)),
	)
	return e
}

func TestGetLeadByIDFound(t *testing.T) {
	t.Parallel()

	server := newLeadServer(&stubQueryRepo{lead: &domain.Lead{
		ID:       "0bd7a1ce-3cb5-4a62-9e6b-25c301cd1234",
		TenantID: "tenant-1",
		Name:     "Alice Example",
		Phone:    "5551112222",
		Status:   domain.StatusNew,
	}})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/leads/0bd7a1ce-3cb5-4a62-9e6b-25c301cd1234?tenantId=tenant-1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Alice Example")) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"tenantId":"tenant-1"`)) {
		t.Fatalf("expected camelCase lead keys: %s", rec.Body.String())
	}
}

func TestGetLeadByIDNotFound(t *testing.T) {
	t.Parallel()

	server := newLeadServer(&stubQueryRepo{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/leads/0bd7a1ce-3cb5-4a62-9e6b-25c301cd1234?tenantId=tenant-1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetLeadByIDBadRequest(t *testing.T) {
	t.Parallel()

	server := newLeadServer(&stubQueryRepo{})

	// Missing tenantId.
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/leads/0bd7a1ce-3cb5-4a62-9e6b-25c301cd1234", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing tenant, got %d", rec.Code)
	}

	// Malformed id.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/leads/not-a-uuid?tenantId=tenant-1", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}
