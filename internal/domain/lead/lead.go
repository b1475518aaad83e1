package lead

import "strings"

type Status string

const (
	StatusNew           Status = "new"
	StatusContacted     Status = "contacted"
	StatusUnderContract Status = "under_contract"
	StatusClosed        Status = "closed"
	StatusLost          Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusUnderContract, StatusClosed, StatusLost:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// NormalizeStatus lowercases and underscores a raw status value so that
// spreadsheet spellings like "Under Contract" match the enum.
func NormalizeStatus(raw string) Status {
	return Status(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
}

func NormalizePriority(raw string) Priority {
	return Priority(strings.ToLower(strings.TrimSpace(raw)))
}

type Address struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	County      string `json:"county,omitempty"`
	FullAddress string `json:"fullAddress,omitempty"`
}

func (a Address) Empty() bool {
	return a == Address{}
}

type PropertyDetails struct {
	PropertyType string   `json:"propertyType,omitempty"`
	Bedrooms     *float64 `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	SquareFeet   *float64 `json:"squareFeet,omitempty"`
	LotSize      *float64 `json:"lotSize,omitempty"`
	YearBuilt    *float64 `json:"yearBuilt,omitempty"`
}

func (d PropertyDetails) Empty() bool {
	return d.PropertyType == "" && d.Bedrooms == nil && d.Bathrooms == nil &&
		d.SquareFeet == nil && d.LotSize == nil && d.YearBuilt == nil
}

// Lead is the persisted entity produced by the import pipeline. System
// fields (LeadScore, QualificationProbability, CommunicationCount) start at
// zero; imported leads never arrive pre-scored.
type Lead struct {
	ID                       string           `json:"id"`
	TenantID                 string           `json:"tenantId"`
	Name                     string           `json:"name"`
	Phone                    string           `json:"phone"`
	Email                    string           `json:"email"`
	Address                  *Address         `json:"address,omitempty"`
	PropertyDetails          *PropertyDetails `json:"propertyDetails,omitempty"`
	EstimatedValue           *float64         `json:"estimatedValue,omitempty"`
	AskingPrice              *float64         `json:"askingPrice,omitempty"`
	Source                   string           `json:"source"`
	Status                   Status           `json:"status"`
	Priority                 Priority         `json:"priority"`
	Tags                     []string         `json:"tags,omitempty"`
	Notes                    string           `json:"notes,omitempty"`
	LeadScore                int              `json:"leadScore"`
	QualificationProbability float64          `json:"qualificationProbability"`
	CommunicationCount       int              `json:"communicationCount"`
}
