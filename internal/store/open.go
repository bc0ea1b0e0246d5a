package store

import (
	"context"

	"go.uber.org/zap"
)

type Options struct {
	DatabaseURL string
	SQLitePath  string
}

// Open picks Postgres when a database URL is set, otherwise SQLite.
func Open(ctx context.Context, opts Options, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DatabaseURL != "" {
		pg, err := OpenPostgres(ctx, opts.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	log.Info("using sqlite store", zap.String("path", opts.SQLitePath))
	lite, err := OpenSQLite(opts.SQLitePath)
	if err != nil {
		return nil, err
	}
	return lite, nil
}
