package lead_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/estateiq/lead-import/internal/application/lead"
	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

func TestGetLeadByIDInvalidID(t *testing.T) {
	t.Parallel()

	uc := app.NewGetLeadByID(&fakeQueryRepo{})
	_, err := uc.Execute(context.Background(), app.GetLeadByIDInput{TenantID: "t", ID: "not-a-uuid"})
	if !errors.Is(err, app.ErrInvalidLeadID) {
		t.Fatalf("expected ErrInvalidLeadID, got %v", err)
	}
}

func TestGetLeadByIDNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewGetLeadByID(&fakeQueryRepo{})
	_, err := uc.Execute(context.Background(), app.GetLeadByIDInput{
		TenantID: "t",
		ID:       "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e",
	})
	if !errors.Is(err, app.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestGetLeadByIDSuccess(t *testing.T) {
	t.Parallel()

	leads := sampleLeads()
	leads[0].ID = "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e"
	uc := app.NewGetLeadByID(&fakeQueryRepo{leads: leads})

	got, err := uc.Execute(context.Background(), app.GetLeadByIDInput{
		TenantID: "tenant-1",
		ID:       "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Name != "Alice" || got.Status != domain.StatusNew {
		t.Fatalf("unexpected lead: %+v", got)
	}
}
