package calculator

import (
	"fmt"
	"math"

	"solarsmart/internal/model"
)

const (
	// SystemEfficiency covers inverter, wiring and temperature losses.
	SystemEfficiency = 0.85
	// RoofAreaPerKW is the roof area one installed kW occupies (m²).
	RoofAreaPerKW = 6.0
	// GridEmissionFactor is kg CO₂ avoided per kWh produced.
	GridEmissionFactor = 0.45
	daysPerYear        = 365
)

// ReferenceData is the climate lookup the calculator needs.
type ReferenceData interface {
	Insolation(locationID int) (float64, error)
	DirectionFactor(o model.Orientation) float64
}

// Breakdown holds every intermediate value of a sizing run at full precision.
// This is the primary artifact for explaining "how did we get this number".
type Breakdown struct {
	Insolation        float64 `json:"insolation"`
	DirectionFactor   float64 `json:"direction_factor"`
	EffectiveSunHours float64 `json:"effective_sun_hours"`

	MonthlyKWh        float64 `json:"monthly_kwh"`
	AnnualConsumption float64 `json:"annual_consumption_kwh"`

	RequiredCapacityKW  float64 `json:"required_capacity_kw"`
	MaxCapacityByRoofKW float64 `json:"max_capacity_by_roof_kw"`
	SystemSizeKW        float64 `json:"system_size_kw"`
	RoofLimited         bool    `json:"roof_limited"`

	PanelCount  int     `json:"panel_count"`
	FinalSizeKW float64 `json:"final_size_kw"`

	TotalCostUSD   float64 `json:"total_cost_usd"`
	TotalCostLocal float64 `json:"total_cost_local"`

	AnnualProduction float64 `json:"annual_production_kwh"`
	AnnualSavings    float64 `json:"annual_savings"`
	MonthlySavings   float64 `json:"monthly_savings"`
	ROIYears         float64 `json:"roi_years"`
	CO2SavedTons     float64 `json:"co2_saved_tons"`
}

type Calculator struct {
	ref ReferenceData
}

func New(ref ReferenceData) *Calculator { return &Calculator{ref: ref} }

// Compute sizes a system for the input under the given settings and returns
// the rounded result.
func (c *Calculator) Compute(in model.CalculationInput, s model.Settings) (*model.CalculationResult, error) {
	b, err := c.Breakdown(in, s)
	if err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// Breakdown runs the sizing pipeline without rounding anything.
func (c *Calculator) Breakdown(in model.CalculationInput, s model.Settings) (*Breakdown, error) {
	if c == nil || c.ref == nil {
		return nil, fmt.Errorf("calculator has no reference data")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	insolation, err := c.ref.Insolation(in.LocationID)
	if err != nil {
		return nil, err
	}
	factor := c.ref.DirectionFactor(in.Orientation)

	b := &Breakdown{
		Insolation:      insolation,
		DirectionFactor: factor,
	}
	b.MonthlyKWh = in.BillAmount / s.ElectricityPrice
	b.AnnualConsumption = b.MonthlyKWh * 12
	b.EffectiveSunHours = insolation * factor

	yieldPerKW := b.EffectiveSunHours * daysPerYear * SystemEfficiency
	b.RequiredCapacityKW = b.AnnualConsumption / yieldPerKW
	b.MaxCapacityByRoofKW = in.RoofArea / RoofAreaPerKW
	b.SystemSizeKW = math.Min(b.RequiredCapacityKW, b.MaxCapacityByRoofKW)
	b.RoofLimited = b.MaxCapacityByRoofKW < b.RequiredCapacityKW

	// Size is always derived from the rounded-up panel count.
	panels := math.Ceil(b.SystemSizeKW * 1000 / s.PanelWattage)
	if math.IsNaN(panels) || math.IsInf(panels, 0) || panels > math.MaxInt32 {
		return nil, &model.DegenerateResultError{Reason: "panel count is not a finite number"}
	}
	b.PanelCount = int(panels)
	if b.PanelCount < 1 {
		return nil, &model.DegenerateResultError{Reason: "no panel fits the roof"}
	}
	b.FinalSizeKW = float64(b.PanelCount) * s.PanelWattage / 1000

	b.TotalCostUSD = b.FinalSizeKW * s.SystemCostPerKw
	b.TotalCostLocal = b.TotalCostUSD * s.UsdRate

	b.AnnualProduction = b.FinalSizeKW * yieldPerKW
	b.AnnualSavings = b.AnnualProduction * s.ElectricityPrice
	if !(b.AnnualSavings > 0) {
		return nil, &model.DegenerateResultError{Reason: "annual savings are zero"}
	}
	b.ROIYears = b.TotalCostLocal / b.AnnualSavings
	b.MonthlySavings = b.AnnualSavings / 12
	b.CO2SavedTons = b.AnnualProduction * GridEmissionFactor / 1000

	if err := b.checkFinite(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Breakdown) checkFinite() error {
	values := []struct {
		name string
		v    float64
	}{
		{"annualConsumption", b.AnnualConsumption},
		{"systemSize", b.FinalSizeKW},
		{"totalCost", b.TotalCostLocal},
		{"annualProduction", b.AnnualProduction},
		{"roi", b.ROIYears},
		{"co2", b.CO2SavedTons},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &model.DegenerateResultError{Reason: f.name + " is not a finite number"}
		}
	}
	return nil
}

// Result rounds the breakdown into the customer-facing figures.
func (b *Breakdown) Result() *model.CalculationResult {
	return &model.CalculationResult{
		SystemSizeKW:      round(b.FinalSizeKW, 2),
		PanelCount:        b.PanelCount,
		AnnualProduction:  round(b.AnnualProduction, 0),
		AnnualConsumption: round(b.AnnualConsumption, 0),
		TotalCostUSD:      round(b.TotalCostUSD, 0),
		TotalCostLocal:    round(b.TotalCostLocal, 0),
		ROIYears:          round(b.ROIYears, 1),
		MonthlySavings:    round(b.MonthlySavings, 0),
		CO2SavedTons:      round(b.CO2SavedTons, 2),
	}
}
