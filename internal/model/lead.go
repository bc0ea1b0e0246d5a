package model

import (
	"fmt"
	"strings"
	"time"
)

// LeadStatus tracks a lead through the sales pipeline.
// Keep these values stable; they are stored and exported as-is.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusOfferSent LeadStatus = "OfferSent"
	LeadStatusClosed    LeadStatus = "Closed"
)

func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusOfferSent, LeadStatusClosed}
}

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusOfferSent, LeadStatusClosed:
		return true
	default:
		return false
	}
}

func ParseLeadStatus(s string) (LeadStatus, error) {
	for _, st := range LeadStatuses() {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", NewValidationError("status", "unknown lead status %q", s)
}

// Lead is a prospect's contact details plus the recommendation they were shown.
type Lead struct {
	ID          string      `json:"id"`
	FullName    string      `json:"full_name"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	LocationID  int         `json:"location_id"`
	City        string      `json:"city"`
	District    string      `json:"district,omitempty"`
	BillAmount  float64     `json:"bill_amount"`
	RoofArea    float64     `json:"roof_area"`
	Orientation Orientation `json:"orientation"`

	SystemSizeKW       float64 `json:"system_size_kw"`
	PanelCount         int     `json:"panel_count"`
	EstimatedCostUSD   float64 `json:"estimated_cost_usd"`
	EstimatedCostLocal float64 `json:"estimated_cost_local"`
	ROIYears           float64 `json:"roi_years"`

	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LeadFilter narrows a lead listing. Zero values mean no filter.
type LeadFilter struct {
	Status LeadStatus
	Limit  int
}

func (l Lead) String() string {
	return fmt.Sprintf("%s <%s> %s %.2fkW", l.FullName, l.Email, l.City, l.SystemSizeKW)
}
