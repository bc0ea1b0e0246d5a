package model

// CalculationInput is what a prospect enters in the wizard.
// Units:
// - RoofArea: m²
// - BillAmount: local currency per month
type CalculationInput struct {
	LocationID  int
	RoofArea    float64
	Orientation Orientation
	BillAmount  float64
}

// Validate checks the input on its own; location existence is checked
// against the reference data by the calculator.
func (in CalculationInput) Validate() error {
	if err := positiveFinite("roofArea", in.RoofArea); err != nil {
		return err
	}
	if !in.Orientation.Valid() {
		return NewValidationError("orientation", "unknown orientation %d", int(in.Orientation))
	}
	if err := positiveFinite("billAmount", in.BillAmount); err != nil {
		return err
	}
	return nil
}

// CalculationResult is the rounded recommendation shown to the prospect.
type CalculationResult struct {
	SystemSizeKW      float64 `json:"system_size_kw"`
	PanelCount        int     `json:"panel_count"`
	AnnualProduction  float64 `json:"annual_production_kwh"`
	AnnualConsumption float64 `json:"annual_consumption_kwh"`
	TotalCostUSD      float64 `json:"total_cost_usd"`
	TotalCostLocal    float64 `json:"total_cost_local"`
	ROIYears          float64 `json:"roi_years"`
	MonthlySavings    float64 `json:"monthly_savings"`
	CO2SavedTons      float64 `json:"co2_saved_tons"`
}
