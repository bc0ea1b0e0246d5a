package store

import (
	"fmt"
	"testing"
	"time"

	"solarsmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLeadsQuery(t *testing.T) {
	query, args, err := listLeadsQuery(model.LeadFilter{Status: model.LeadStatusNew, Limit: 25}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM leads WHERE status = $1")
	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC LIMIT 25")
	assert.Equal(t, []any{"New"}, args)

	query, args, err = listLeadsQuery(model.LeadFilter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, fmt.Sprintf("LIMIT %d", defaultListLimit))
	assert.Empty(t, args)
}

func TestInsertLeadQuery(t *testing.T) {
	row := toLeadRow(sampleLead("abc", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	query, args, err := insertLeadQuery(row).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO leads (id,full_name,phone")
	assert.Contains(t, query, fmt.Sprintf("$%d)", len(leadColumns)))
	require.Len(t, args, len(leadColumns))
	assert.Equal(t, "abc", args[0])
	assert.Equal(t, "south", args[9])
}

func TestUpdateLeadStatusQuery(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	query, args, err := updateLeadStatusQuery("abc", model.LeadStatusClosed, now).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3 RETURNING id, full_name")
	assert.Equal(t, []any{"Closed", now, "abc"}, args)
}

func TestSettingsQueries(t *testing.T) {
	query, args, err := getSettingsQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM settings WHERE id = $1")
	assert.Equal(t, []any{settingsRowID}, args)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	query, args, err = saveSettingsQuery(toSettingsRow(model.DefaultSettings(), now)).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO settings")
	assert.Contains(t, query, "on conflict (id) do update")
	assert.Equal(t, []any{settingsRowID, 32.5, 3.0, 450.0, 750.0, now}, args)
}

func TestWrapErr(t *testing.T) {
	assert.ErrorIs(t, wrapErr(pgx.ErrNoRows), model.ErrNotFound)
	assert.ErrorIs(t, wrapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), model.ErrNotFound)
	other := fmt.Errorf("boom")
	assert.Equal(t, other, wrapErr(other))
}
