package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
	"github.com/estateiq/lead-import/internal/infrastructure/db/models"
)

type LeadQueryRepository struct {
	db *gorm.DB
}

func NewLeadQueryRepository(db *gorm.DB) *LeadQueryRepository {
	return &LeadQueryRepository{db: db}
}

func (r *LeadQueryRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Lead, error) {
	var row models.Lead

	err := r.db.WithContext(ctx).
		First(&row, "tenant_id = ? AND id = ?", tenantID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}

	entity := toDomain(&row)
	return &entity, nil
}

func (r *LeadQueryRepository) List(ctx context.Context, tenantID string, filter domain.ExportFilter, offset, limit int) ([]domain.Lead, error) {
	var rows []models.Lead

	err := r.filtered(ctx, tenantID, filter).
		Order("created_at, id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	leads := make([]domain.Lead, 0, len(rows))
	for i := range rows {
		leads = append(leads, toDomain(&rows[i]))
	}
	return leads, nil
}

func (r *LeadQueryRepository) Count(ctx context.Context, tenantID string, filter domain.ExportFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

func (r *LeadQueryRepository) filtered(ctx context.Context, tenantID string, filter domain.ExportFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Lead{}).Where("tenant_id = ?", tenantID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
	}
	if filter.Tag != "" {
		q = q.Where("tags @> ?", fmt.Sprintf("[%q]", filter.Tag))
	}
	return q
}

func toDomain(row *models.Lead) domain.Lead {
	entity := domain.Lead{
		ID:                       row.ID,
		TenantID:                 row.TenantID,
		Name:                     row.Name,
		Phone:                    row.Phone,
		Email:                    row.Email,
		EstimatedValue:           row.EstimatedValue,
		AskingPrice:              row.AskingPrice,
		Source:                   row.Source,
		Status:                   domain.Status(row.Status),
		Priority:                 domain.Priority(row.Priority),
		Tags:                     row.Tags,
		Notes:                    row.Notes,
		LeadScore:                row.LeadScore,
		QualificationProbability: row.QualificationProbability,
		CommunicationCount:       row.CommunicationCount,
	}

	addr := domain.Address{
		Street:      row.Street,
		City:        row.City,
		State:       row.State,
		ZipCode:     row.ZipCode,
		County:      row.County,
		FullAddress: row.FullAddress,
	}
	if !addr.Empty() {
		entity.Address = &addr
	}

	details := domain.PropertyDetails{
		PropertyType: row.PropertyType,
		Bedrooms:     row.Bedrooms,
		Bathrooms:    row.Bathrooms,
		SquareFeet:   row.SquareFeet,
		LotSize:      row.LotSize,
		YearBuilt:    row.YearBuilt,
	}
	if !details.Empty() {
		entity.PropertyDetails = &details
	}

	return entity
}
