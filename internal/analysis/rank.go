package analysis

import (
	"errors"
	"sort"

	"solarsmart/internal/calculator"
	"solarsmart/internal/model"
)

// LocationScore is one location's result for a shared roof + bill input.
type LocationScore struct {
	Location model.Location
	Result   *model.CalculationResult
	Err      error
}

// RankLocations sizes the same roof and bill in every location and sorts by
// payback period, shortest first. Locations whose calculation failed sort last
// in catalog order.
func RankLocations(calc *calculator.Calculator, locations []model.Location, roofArea, billAmount float64, o model.Orientation, s model.Settings) ([]LocationScore, error) {
	if calc == nil {
		return nil, errors.New("calculator is nil")
	}
	out := make([]LocationScore, 0, len(locations))
	for _, loc := range locations {
		res, err := calc.Compute(model.CalculationInput{
			LocationID:  loc.ID,
			RoofArea:    roofArea,
			Orientation: o,
			BillAmount:  billAmount,
		}, s)
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			// Input problems are the same for every location.
			return nil, err
		}
		out = append(out, LocationScore{Location: loc, Result: res, Err: err})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Err != nil || b.Err != nil {
			return a.Err == nil && b.Err != nil
		}
		if a.Result.ROIYears != b.Result.ROIYears {
			return a.Result.ROIYears < b.Result.ROIYears
		}
		return a.Result.AnnualProduction > b.Result.AnnualProduction
	})
	return out, nil
}
