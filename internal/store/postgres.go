package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"solarsmart/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const (
	migrationsDir   = "migrations"
	connectAttempts = 5
)

var settingsColumns = []string{
	"id", "usd_rate", "electricity_price", "panel_wattage", "system_cost_per_kw", "updated_at",
}

var errMapping = map[error]error{pgx.ErrNoRows: model.ErrNotFound}

func wrapErr(err error) error {
	for k, v := range errMapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel builder using Postgres placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Postgres is the networked backend, selected when a database URL is configured.
type Postgres struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// OpenPostgres connects with exponential backoff, then applies the embedded migrations.
func OpenPostgres(ctx context.Context, url string, log *zap.Logger) (*Postgres, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pool.Ping(pingCtx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("postgres not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectAttempts), ctx)
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open migration handle: %w", err)
	}
	defer db.Close()
	if err := RunMigrations(db); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("postgres store ready")
	return &Postgres{pool: pool, now: time.Now}, nil
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func insertLeadQuery(r leadRow) sq.InsertBuilder {
	return builder().Insert(tableLeads).
		Columns(leadColumns...).
		Values(r.values()...)
}

func getLeadQuery(id string) sq.SelectBuilder {
	return builder().Select(leadColumns...).
		From(tableLeads).
		Where(sq.Eq{"id": id})
}

func listLeadsQuery(f model.LeadFilter) sq.SelectBuilder {
	q := builder().Select(leadColumns...).From(tableLeads)
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": string(f.Status)})
	}
	return q.OrderBy("created_at DESC", "id DESC").Limit(uint64(listLimit(f)))
}

func updateLeadStatusQuery(id string, status model.LeadStatus, now time.Time) sq.UpdateBuilder {
	return builder().Update(tableLeads).
		Set("status", string(status)).
		Set("updated_at", now.UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(leadColumns, ", "))
}

func getSettingsQuery() sq.SelectBuilder {
	return builder().Select(settingsColumns...).
		From(tableSettings).
		Where(sq.Eq{"id": settingsRowID})
}

func saveSettingsQuery(r settingsRow) sq.InsertBuilder {
	return builder().Insert(tableSettings).
		Columns(settingsColumns...).
		Values(r.ID, r.UsdRate, r.ElectricityPrice, r.PanelWattage, r.SystemCostPerKw, r.UpdatedAt).
		Suffix(`on conflict (id) do update set usd_rate=excluded.usd_rate, electricity_price=excluded.electricity_price, ` +
			`panel_wattage=excluded.panel_wattage, system_cost_per_kw=excluded.system_cost_per_kw, updated_at=excluded.updated_at`)
}

type sqlizer interface {
	ToSql() (string, []any, error)
}

func (p *Postgres) exec(ctx context.Context, q sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, query, args...)
	return err
}

func (p *Postgres) query(ctx context.Context, q sqlizer) (pgx.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return p.pool.Query(ctx, query, args...)
}

func (p *Postgres) queryLead(ctx context.Context, q sqlizer) (*model.Lead, error) {
	rows, err := p.query(ctx, q)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[leadRow])
	if err != nil {
		return nil, wrapErr(err)
	}
	l, err := fromLeadRow(row)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (p *Postgres) CreateLead(ctx context.Context, lead *model.Lead) error {
	if err := p.exec(ctx, insertLeadQuery(toLeadRow(lead))); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (p *Postgres) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	l, err := p.queryLead(ctx, getLeadQuery(id))
	if err != nil {
		return nil, fmt.Errorf("lead %s: %w", id, err)
	}
	return l, nil
}

func (p *Postgres) ListLeads(ctx context.Context, filter model.LeadFilter) ([]model.Lead, error) {
	rows, err := p.query(ctx, listLeadsQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	leadRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[leadRow])
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return fromLeadRows(leadRows)
}

func (p *Postgres) UpdateLeadStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	l, err := p.queryLead(ctx, updateLeadStatusQuery(id, status, p.now()))
	if err != nil {
		return nil, fmt.Errorf("lead %s: %w", id, err)
	}
	return l, nil
}

func (p *Postgres) GetSettings(ctx context.Context) (model.Settings, error) {
	rows, err := p.query(ctx, getSettingsQuery())
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[settingsRow])
	if err != nil {
		return model.Settings{}, fmt.Errorf("settings: %w", wrapErr(err))
	}
	return row.settings(), nil
}

func (p *Postgres) SaveSettings(ctx context.Context, s model.Settings) error {
	if err := p.exec(ctx, saveSettingsQuery(toSettingsRow(s, p.now()))); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
