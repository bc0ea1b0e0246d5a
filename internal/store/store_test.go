package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"solarsmart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(memoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleLead(id string, created time.Time) *model.Lead {
	return &model.Lead{
		ID:                 id,
		FullName:           "Ayşe Yılmaz",
		Phone:              "+90 555 000 0000",
		Email:              "ayse@example.com",
		LocationID:         7,
		City:               "Antalya",
		District:           "Muratpaşa",
		BillAmount:         1500,
		RoofArea:           120,
		Orientation:        model.OrientationSouth,
		SystemSizeKW:       3.6,
		PanelCount:         8,
		EstimatedCostUSD:   2700,
		EstimatedCostLocal: 87750,
		ROIYears:           4.8,
		Status:             model.LeadStatusNew,
		CreatedAt:          created,
		UpdatedAt:          created,
	}
}

func TestSQLiteLeadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateLead(ctx, sampleLead("a", created)))

	got, err := s.GetLead(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, sampleLead("a", created), got)

	_, err = s.GetLead(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSQLiteListLeadsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		lead := sampleLead(id, base.Add(time.Duration(i)*time.Hour))
		if id == "second" {
			lead.Status = model.LeadStatusContacted
		}
		require.NoError(t, s.CreateLead(ctx, lead))
	}

	all, err := s.ListLeads(ctx, model.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := s.ListLeads(ctx, model.LeadFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "third", limited[0].ID)

	contacted, err := s.ListLeads(ctx, model.LeadFilter{Status: model.LeadStatusContacted})
	require.NoError(t, err)
	require.Len(t, contacted, 1)
	assert.Equal(t, "second", contacted[0].ID)
}

func TestSQLiteUpdateLeadStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)
	s.now = func() time.Time { return later }

	require.NoError(t, s.CreateLead(ctx, sampleLead("a", created)))

	updated, err := s.UpdateLeadStatus(ctx, "a", model.LeadStatusOfferSent)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusOfferSent, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, created, updated.CreatedAt)

	_, err = s.UpdateLeadStatus(ctx, "nope", model.LeadStatusClosed)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSQLiteSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	_, err := s.GetSettings(ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)

	first := model.DefaultSettings()
	require.NoError(t, s.SaveSettings(ctx, first))
	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := first
	second.UsdRate = 35.2
	second.PanelWattage = 540
	require.NoError(t, s.SaveSettings(ctx, second))
	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db")
	st, err := Open(context.Background(), Options{SQLitePath: path}, nil)
	require.NoError(t, err)
	defer st.Close()
	_, ok := st.(*SQLite)
	assert.True(t, ok)
	assert.FileExists(t, path)
}

func TestFromLeadRowRejectsUnknownOrientation(t *testing.T) {
	row := toLeadRow(sampleLead("x", time.Now()))
	row.Orientation = "upwards"
	_, err := fromLeadRow(row)
	assert.Error(t, err)
}
