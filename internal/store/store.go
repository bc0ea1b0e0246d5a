package store

import (
	"context"
	"fmt"
	"time"

	"solarsmart/internal/model"
)

const (
	tableLeads    = "leads"
	tableSettings = "settings"

	// settingsRowID is the id of the single settings record.
	settingsRowID = 1
	// defaultListLimit caps unbounded lead listings.
	defaultListLimit = 500
)

type LeadStore interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	// ListLeads returns leads newest first.
	ListLeads(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error)
}

type SettingsStore interface {
	// GetSettings returns model.ErrNotFound until settings are saved once.
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, s model.Settings) error
}

type Store interface {
	LeadStore
	SettingsStore
	Close() error
}

// leadRow is the persisted shape of a lead, shared by both backends.
type leadRow struct {
	ID                 string    `gorm:"primaryKey;size:36" db:"id"`
	FullName           string    `gorm:"not null" db:"full_name"`
	Phone              string    `gorm:"not null" db:"phone"`
	Email              string    `gorm:"not null" db:"email"`
	LocationID         int       `gorm:"not null" db:"location_id"`
	City               string    `gorm:"not null" db:"city"`
	District           string    `gorm:"not null;default:''" db:"district"`
	BillAmount         float64   `gorm:"not null" db:"bill_amount"`
	RoofArea           float64   `gorm:"not null" db:"roof_area"`
	Orientation        string    `gorm:"not null" db:"orientation"`
	SystemSizeKW       float64   `gorm:"column:system_size_kw;not null" db:"system_size_kw"`
	PanelCount         int       `gorm:"not null" db:"panel_count"`
	EstimatedCostUSD   float64   `gorm:"column:estimated_cost_usd;not null" db:"estimated_cost_usd"`
	EstimatedCostLocal float64   `gorm:"not null" db:"estimated_cost_local"`
	ROIYears           float64   `gorm:"column:roi_years;not null" db:"roi_years"`
	Status             string    `gorm:"index;not null" db:"status"`
	CreatedAt          time.Time `gorm:"index;not null" db:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" db:"updated_at"`
}

func (leadRow) TableName() string { return tableLeads }

var leadColumns = []string{
	"id", "full_name", "phone", "email", "location_id", "city", "district",
	"bill_amount", "roof_area", "orientation", "system_size_kw", "panel_count",
	"estimated_cost_usd", "estimated_cost_local", "roi_years", "status",
	"created_at", "updated_at",
}

func (r leadRow) values() []any {
	return []any{
		r.ID, r.FullName, r.Phone, r.Email, r.LocationID, r.City, r.District,
		r.BillAmount, r.RoofArea, r.Orientation, r.SystemSizeKW, r.PanelCount,
		r.EstimatedCostUSD, r.EstimatedCostLocal, r.ROIYears, r.Status,
		r.CreatedAt, r.UpdatedAt,
	}
}

type settingsRow struct {
	ID               int       `gorm:"primaryKey;autoIncrement:false" db:"id"`
	UsdRate          float64   `gorm:"not null" db:"usd_rate"`
	ElectricityPrice float64   `gorm:"not null" db:"electricity_price"`
	PanelWattage     float64   `gorm:"not null" db:"panel_wattage"`
	SystemCostPerKw  float64   `gorm:"column:system_cost_per_kw;not null" db:"system_cost_per_kw"`
	UpdatedAt        time.Time `gorm:"not null" db:"updated_at"`
}

func (settingsRow) TableName() string { return tableSettings }

func toLeadRow(l *model.Lead) leadRow {
	return leadRow{
		ID:                 l.ID,
		FullName:           l.FullName,
		Phone:              l.Phone,
		Email:              l.Email,
		LocationID:         l.LocationID,
		City:               l.City,
		District:           l.District,
		BillAmount:         l.BillAmount,
		RoofArea:           l.RoofArea,
		Orientation:        l.Orientation.String(),
		SystemSizeKW:       l.SystemSizeKW,
		PanelCount:         l.PanelCount,
		EstimatedCostUSD:   l.EstimatedCostUSD,
		EstimatedCostLocal: l.EstimatedCostLocal,
		ROIYears:           l.ROIYears,
		Status:             string(l.Status),
		CreatedAt:          l.CreatedAt.UTC(),
		UpdatedAt:          l.UpdatedAt.UTC(),
	}
}

func fromLeadRow(r leadRow) (model.Lead, error) {
	o, err := model.ParseOrientation(r.Orientation)
	if err != nil {
		return model.Lead{}, fmt.Errorf("lead %s: %w", r.ID, err)
	}
	return model.Lead{
		ID:                 r.ID,
		FullName:           r.FullName,
		Phone:              r.Phone,
		Email:              r.Email,
		LocationID:         r.LocationID,
		City:               r.City,
		District:           r.District,
		BillAmount:         r.BillAmount,
		RoofArea:           r.RoofArea,
		Orientation:        o,
		SystemSizeKW:       r.SystemSizeKW,
		PanelCount:         r.PanelCount,
		EstimatedCostUSD:   r.EstimatedCostUSD,
		EstimatedCostLocal: r.EstimatedCostLocal,
		ROIYears:           r.ROIYears,
		Status:             model.LeadStatus(r.Status),
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}, nil
}

func fromLeadRows(rows []leadRow) ([]model.Lead, error) {
	out := make([]model.Lead, 0, len(rows))
	for _, r := range rows {
		l, err := fromLeadRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func toSettingsRow(s model.Settings, now time.Time) settingsRow {
	return settingsRow{
		ID:               settingsRowID,
		UsdRate:          s.UsdRate,
		ElectricityPrice: s.ElectricityPrice,
		PanelWattage:     s.PanelWattage,
		SystemCostPerKw:  s.SystemCostPerKw,
		UpdatedAt:        now.UTC(),
	}
}

func (r settingsRow) settings() model.Settings {
	return model.Settings{
		UsdRate:          r.UsdRate,
		ElectricityPrice: r.ElectricityPrice,
		PanelWattage:     r.PanelWattage,
		SystemCostPerKw:  r.SystemCostPerKw,
	}
}

func listLimit(f model.LeadFilter) int {
	if f.Limit <= 0 || f.Limit > defaultListLimit {
		return defaultListLimit
	}
	return f.Limit
}
