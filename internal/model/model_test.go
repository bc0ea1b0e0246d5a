package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionPeakSunHours(t *testing.T) {
	cases := map[Region]float64{
		RegionMediterranean:        5.5,
		RegionSoutheasternAnatolia: 5.2,
		RegionAegean:               5.0,
		RegionCentralAnatolia:      4.8,
		RegionEasternAnatolia:      4.6,
		RegionMarmara:              4.0,
		RegionBlackSea:             3.8,
	}
	assert.Len(t, Regions(), len(cases))
	for r, want := range cases {
		assert.Equal(t, want, r.PeakSunHours(), r.String())
	}
	assert.Zero(t, Region(0).PeakSunHours())
	assert.Zero(t, Region(99).PeakSunHours())
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("black_sea")
	require.NoError(t, err)
	assert.Equal(t, RegionBlackSea, r)

	r, err = ParseRegion("Akdeniz")
	require.NoError(t, err)
	assert.Equal(t, RegionMediterranean, r)

	_, err = ParseRegion("atlantis")
	assert.Error(t, err)
}

func TestOrientationFactor(t *testing.T) {
	assert.Equal(t, 1.0, OrientationSouth.Factor())
	assert.Equal(t, 0.95, OrientationSouthEast.Factor())
	assert.Equal(t, 0.95, OrientationSouthWest.Factor())
	assert.Equal(t, 0.85, OrientationEast.Factor())
	assert.Equal(t, 0.85, OrientationWest.Factor())
	assert.Equal(t, 0.60, OrientationNorth.Factor())
	assert.False(t, Orientation(0).Valid())

	prev := 2.0
	for _, o := range Orientations() {
		assert.LessOrEqual(t, o.Factor(), prev, "orientations are listed best first")
		prev = o.Factor()
	}
}

func TestParseOrientation(t *testing.T) {
	for _, s := range []string{"south_east", "south-east", "SouthEast", "SE", "se", " Güneydoğu "} {
		o, err := ParseOrientation(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrientationSouthEast, o, s)
	}
	_, err := ParseOrientation("up")
	assert.Error(t, err)
}

func TestOrientationJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		O Orientation `json:"o"`
	}{OrientationWest})
	require.NoError(t, err)
	assert.JSONEq(t, `{"o":"west"}`, string(raw))

	var back struct {
		O Orientation `json:"o"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"o":"N"}`), &back))
	assert.Equal(t, OrientationNorth, back.O)

	assert.Error(t, json.Unmarshal([]byte(`{"o":"sideways"}`), &back))
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	s := DefaultSettings()
	s.PanelWattage = 0
	var verr *ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "panelWattage", verr.Field)

	s = DefaultSettings()
	s.UsdRate = math.NaN()
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "usdRate", verr.Field)
}

func TestCalculationInputValidate(t *testing.T) {
	ok := CalculationInput{LocationID: 34, RoofArea: 80, Orientation: OrientationSouth, BillAmount: 900}
	require.NoError(t, ok.Validate())

	cases := []struct {
		name  string
		mut   func(*CalculationInput)
		field string
	}{
		{"zero roof", func(in *CalculationInput) { in.RoofArea = 0 }, "roofArea"},
		{"negative bill", func(in *CalculationInput) { in.BillAmount = -5 }, "billAmount"},
		{"infinite roof", func(in *CalculationInput) { in.RoofArea = math.Inf(1) }, "roofArea"},
		{"no orientation", func(in *CalculationInput) { in.Orientation = 0 }, "orientation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := ok
			tc.mut(&in)
			var verr *ValidationError
			require.ErrorAs(t, in.Validate(), &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestDegenerateResultErrorIs(t *testing.T) {
	err := error(&DegenerateResultError{Reason: "no panels fit"})
	assert.True(t, errors.Is(err, ErrDegenerateResult))
	assert.Contains(t, err.Error(), "roof too small")
}

func TestParseLeadStatus(t *testing.T) {
	s, err := ParseLeadStatus("offersent")
	require.NoError(t, err)
	assert.Equal(t, LeadStatusOfferSent, s)

	_, err = ParseLeadStatus("Lost")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}
