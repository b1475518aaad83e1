package models

import (
	"time"

	"gorm.io/datatypes"
)

// Lead is the persisted row. Identity for deduplication is enforced with
// partial unique indexes: (tenant_id, phone) where phone is set, and
// (tenant_id, email) where phone is empty and email is set.
type Lead struct {
	ID       string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID string `gorm:"type:text;not null;index"`
	Name     string `gorm:"size:255;not null"`
	Phone    string `gorm:"size:32;not null;default:''"`
	Email    string `gorm:"size:320;not null;default:''"`

	Street      string `gorm:"size:255;not null;default:''"`
	City        string `gorm:"size:120;not null;default:''"`
	State       string `gorm:"size:120;not null;default:''"`
	ZipCode     string `gorm:"size:20;not null;default:''"`
	County      string `gorm:"size:120;not null;default:''"`
	FullAddress string `gorm:"type:text;not null;default:''"`

	PropertyType string   `gorm:"size:64;not null;default:''"`
	Bedrooms     *float64 `gorm:"type:numeric"`
	Bathrooms    *float64 `gorm:"type:numeric"`
	SquareFeet   *float64 `gorm:"type:numeric"`
	LotSize      *float64 `gorm:"type:numeric"`
	YearBuilt    *float64 `gorm:"type:numeric"`

	EstimatedValue *float64 `gorm:"type:numeric"`
	AskingPrice    *float64 `gorm:"type:numeric"`

	Source   string                      `gorm:"size:64;not null;default:'import'"`
	Status   string                      `gorm:"size:32;not null;default:'new';index"`
	Priority string                      `gorm:"size:32;not null;default:'medium'"`
	Tags     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Notes    string                      `gorm:"type:text;not null;default:''"`

	LeadScore                int     `gorm:"not null;default:0"`
	QualificationProbability float64 `gorm:"not null;default:0"`
	CommunicationCount       int     `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Lead) TableName() string {
	return "leads"
}
