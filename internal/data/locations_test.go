package data

import (
	"path/filepath"
	"testing"

	"solarsmart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	p := Default()
	locs := p.Locations()
	require.Len(t, locs, 11)
	assert.Equal(t, "adana", locs[0].Slug)
	assert.Equal(t, "van", locs[len(locs)-1].Slug)

	ist, err := p.Location(34)
	require.NoError(t, err)
	assert.Equal(t, "İstanbul", ist.Name)
	assert.Equal(t, "istanbul", ist.Slug)
	assert.Equal(t, model.RegionMarmara, ist.Region)

	urfa, err := p.LocationBySlug("sanliurfa")
	require.NoError(t, err)
	assert.Equal(t, 63, urfa.ID)
}

func TestInsolation(t *testing.T) {
	p := Default()
	cases := map[int]float64{1: 5.5, 6: 4.8, 7: 5.5, 16: 4.0, 21: 5.2, 35: 5.0, 61: 3.8, 65: 4.6}
	for id, want := range cases {
		got, err := p.Insolation(id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "location %d", id)
	}

	_, err := p.Insolation(999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDirectionFactor(t *testing.T) {
	p := Default()
	assert.Equal(t, 1.0, p.DirectionFactor(model.OrientationSouth))
	assert.Equal(t, 0.6, p.DirectionFactor(model.OrientationNorth))
	assert.Zero(t, p.DirectionFactor(model.Orientation(42)))
}

func TestLocationsReturnsCopy(t *testing.T) {
	p := Default()
	locs := p.Locations()
	locs[0].Name = "changed"
	assert.NotEqual(t, "changed", p.Locations()[0].Name)
}

func TestNewProviderRejectsBadCatalogs(t *testing.T) {
	_, err := NewProvider(nil)
	assert.Error(t, err)

	_, err = NewProvider([]model.Location{
		{ID: 1, Name: "A", Region: model.RegionAegean},
		{ID: 1, Name: "B", Region: model.RegionAegean},
	})
	assert.ErrorContains(t, err, "duplicate location id")

	_, err = NewProvider([]model.Location{{ID: 1, Name: "A"}})
	assert.ErrorContains(t, err, "invalid region")

	_, err = ParseCatalog([]byte("locations:\n  - id: 1\n    name: X\n    region: tundra\n"))
	assert.ErrorContains(t, err, "unknown region")
}

func TestSaveAndLoadLocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.yaml")
	require.NoError(t, SaveLocations(Default(), path, "2024-06-01T00:00:00Z"))

	loaded, err := LoadLocations(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Locations(), loaded.Locations())

	_, err = LoadLocations(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
