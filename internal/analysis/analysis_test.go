package analysis

import (
	"testing"

	"solarsmart/internal/calculator"
	"solarsmart/internal/data"
	"solarsmart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLocations(t *testing.T) {
	ref := data.Default()
	calc := calculator.New(ref)

	ranked, err := RankLocations(calc, ref.Locations(), 120, 1500, model.OrientationSouth, model.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, ranked, len(ref.Locations()))

	for _, r := range ranked {
		require.NoError(t, r.Err)
	}
	assert.Equal(t, model.RegionMediterranean, ranked[0].Location.Region)
	assert.Equal(t, model.RegionBlackSea, ranked[len(ranked)-1].Location.Region)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Result.ROIYears, ranked[i].Result.ROIYears)
	}
}

func TestRankLocationsFailuresSortLast(t *testing.T) {
	ref := data.Default()
	calc := calculator.New(ref)
	locs := append([]model.Location{{ID: 404, Name: "Nowhere", Region: model.RegionAegean}}, ref.Locations()[:3]...)

	ranked, err := RankLocations(calc, locs, 120, 1500, model.OrientationSouth, model.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, ranked, 4)
	last := ranked[len(ranked)-1]
	assert.Equal(t, 404, last.Location.ID)
	assert.ErrorIs(t, last.Err, model.ErrNotFound)
}

func TestRankLocationsRejectsBadInput(t *testing.T) {
	ref := data.Default()
	_, err := RankLocations(calculator.New(ref), ref.Locations(), 0, 1500, model.OrientationSouth, model.DefaultSettings())
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "roofArea", verr.Field)

	_, err = RankLocations(nil, ref.Locations(), 10, 10, model.OrientationSouth, model.DefaultSettings())
	assert.Error(t, err)
}

func TestCompareOrientations(t *testing.T) {
	calc := calculator.New(data.Default())
	in := model.CalculationInput{LocationID: 35, RoofArea: 200, Orientation: model.OrientationNorth, BillAmount: 2000}

	results, err := CompareOrientations(calc, in, model.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, model.OrientationSouth, results[0].Orientation)
	assert.Equal(t, model.OrientationNorth, results[5].Orientation)

	south, north := results[0].Result, results[5].Result
	assert.Less(t, south.SystemSizeKW, north.SystemSizeKW)
	assert.Less(t, south.ROIYears, north.ROIYears)

	in.LocationID = 12345
	_, err = CompareOrientations(calc, in, model.DefaultSettings())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
