package models

import (
	"solarsmart/internal/model"
)

// CalculateRequest is the wizard's roof and bill step.
// Numeric fields are checked by the calculator so a zero value yields a
// field-level validation error rather than a binding error.
type CalculateRequest struct {
	LocationID  int     `json:"location_id" binding:"required"`
	RoofArea    float64 `json:"roof_area"`
	Orientation string  `json:"orientation" binding:"required"`
	BillAmount  float64 `json:"bill_amount"`
}

// ToInput converts the request into calculator input.
func (r CalculateRequest) ToInput() (model.CalculationInput, error) {
	o, err := model.ParseOrientation(r.Orientation)
	if err != nil {
		return model.CalculationInput{}, model.NewValidationError("orientation", "%v", err)
	}
	return model.CalculationInput{
		LocationID:  r.LocationID,
		RoofArea:    r.RoofArea,
		Orientation: o,
		BillAmount:  r.BillAmount,
	}, nil
}

// RankRequest is the query string of GET /rank.
type RankRequest struct {
	RoofArea    float64 `form:"roof_area"`
	BillAmount  float64 `form:"bill_amount"`
	Orientation string  `form:"orientation"` // default: south
	Limit       int     `form:"limit"`
}

// CreateLeadRequest is the wizard's final contact step plus the earlier inputs.
type CreateLeadRequest struct {
	FullName string           `json:"full_name"`
	Phone    string           `json:"phone"`
	Email    string           `json:"email"`
	District string           `json:"district,omitempty"`
	Input    CalculateRequest `json:"input" binding:"required"`
}

// ReportRequest asks for a PDF proposal of a calculation.
type ReportRequest struct {
	CalculateRequest
	CustomerName string `json:"customer_name,omitempty"`
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListLeadsRequest is the query string of GET /admin/leads.
type ListLeadsRequest struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
}

// SettingsRequest replaces every business setting at once.
type SettingsRequest struct {
	UsdRate          float64 `json:"usd_rate"`
	ElectricityPrice float64 `json:"electricity_price"`
	PanelWattage     float64 `json:"panel_wattage"`
	SystemCostPerKw  float64 `json:"system_cost_per_kw"`
}

func (r SettingsRequest) ToSettings() model.Settings {
	return model.Settings{
		UsdRate:          r.UsdRate,
		ElectricityPrice: r.ElectricityPrice,
		PanelWattage:     r.PanelWattage,
		SystemCostPerKw:  r.SystemCostPerKw,
	}
}
