package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solarsmart/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const memoryDSN = ":memory:"

// SQLite is the embedded backend used for single-node installs and tests.
type SQLite struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and migrates the schema.
// ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if path == memoryDSN {
		// Every new connection would get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&leadRow{}, &settingsRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) CreateLead(ctx context.Context, lead *model.Lead) error {
	row := toLeadRow(lead)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (s *SQLite) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var row leadRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lead %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	l, err := fromLeadRow(row)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *SQLite) ListLeads(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	q := s.db.WithContext(ctx).Model(&leadRow{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	var rows []leadRow
	err := q.Order("created_at DESC").Order("id DESC").Limit(listLimit(filter)).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return fromLeadRows(rows)
}

func (s *SQLite) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	res := s.db.WithContext(ctx).Model(&leadRow{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": s.now().UTC(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update lead status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("lead %s: %w", id, model.ErrNotFound)
	}
	return s.GetLead(ctx, id)
}

func (s *SQLite) GetSettings(ctx context.Context) (model.Settings, error) {
	var row settingsRow
	err := s.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Settings{}, fmt.Errorf("settings: %w", model.ErrNotFound)
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return row.settings(), nil
}

func (s *SQLite) SaveSettings(ctx context.Context, settings model.Settings) error {
	row := toSettingsRow(settings, s.now())
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
