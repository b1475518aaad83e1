package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

var (
	ErrInvalidLeadID = errors.New("invalid lead id")
	ErrLeadNotFound  = errors.New("lead not found")
	ErrGetLead       = errors.New("failed to get lead")
)

type GetLeadByIDInput struct {
	TenantID string
	ID       string
}

type GetLeadByID interface {
	Execute(ctx context.Context, in GetLeadByIDInput) (*domain.Lead, error)
}

type getLeadByID struct {
	repo domain.QueryRepository
}

func NewGetLeadByID(repo domain.QueryRepository) GetLeadByID {
	return &getLeadByID{repo: repo}
}

func (uc *getLeadByID) Execute(ctx context.Context, in GetLeadByIDInput) (*domain.Lead, error) {
	if in.TenantID == "" {
		return nil, ErrMissingTenant
	}
	if _, err := uuid.Parse(in.ID); err != nil {
		return nil, ErrInvalidLeadID
	}

	entity, err := uc.repo.GetByID(ctx, in.TenantID, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrGetLead, err)
	}
	return entity, nil
}
