package model

import "math"

// Settings are the business parameters an admin maintains.
// Units:
// - UsdRate: local currency per USD
// - ElectricityPrice: local currency per kWh
// - PanelWattage: W per panel
// - SystemCostPerKw: USD per installed kW
type Settings struct {
	UsdRate          float64 `json:"usd_rate" yaml:"usd_rate"`
	ElectricityPrice float64 `json:"electricity_price" yaml:"electricity_price"`
	PanelWattage     float64 `json:"panel_wattage" yaml:"panel_wattage"`
	SystemCostPerKw  float64 `json:"system_cost_per_kw" yaml:"system_cost_per_kw"`
}

func DefaultSettings() Settings {
	return Settings{
		UsdRate:          32.5,
		ElectricityPrice: 3.0,
		PanelWattage:     450,
		SystemCostPerKw:  750,
	}
}

func (s Settings) Validate() error {
	checks := []struct {
		field string
		v     float64
	}{
		{"usdRate", s.UsdRate},
		{"electricityPrice", s.ElectricityPrice},
		{"panelWattage", s.PanelWattage},
		{"systemCostPerKw", s.SystemCostPerKw},
	}
	for _, c := range checks {
		if err := positiveFinite(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

func positiveFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewValidationError(field, "must be a finite number")
	}
	if v <= 0 {
		return NewValidationError(field, "must be > 0, got %v", v)
	}
	return nil
}
