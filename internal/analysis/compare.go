package analysis

import (
	"errors"

	"solarsmart/internal/calculator"
	"solarsmart/internal/model"
)

type OrientationResult struct {
	Orientation model.Orientation
	Result      *model.CalculationResult
	Err         error
}

// CompareOrientations runs the input once per orientation, best orientation
// first. The input's own orientation is ignored.
func CompareOrientations(calc *calculator.Calculator, in model.CalculationInput, s model.Settings) ([]OrientationResult, error) {
	if calc == nil {
		return nil, errors.New("calculator is nil")
	}
	out := make([]OrientationResult, 0, len(model.Orientations()))
	for _, o := range model.Orientations() {
		in.Orientation = o
		res, err := calc.Compute(in, s)
		var verr *model.ValidationError
		if errors.Is(err, model.ErrNotFound) || errors.As(err, &verr) {
			return nil, err
		}
		out = append(out, OrientationResult{Orientation: o, Result: res, Err: err})
	}
	return out, nil
}
