package calculator

import "github.com/shopspring/decimal"

// round rounds half away from zero to places decimals. Callers guarantee v is finite.
func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
