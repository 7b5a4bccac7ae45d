package repository

import (
	"database/sql"
	"fmt"

	"tradedash/internal/config"
	"tradedash/pkg/ratelimit"
)

// Open создает источник строк по настройкам хранилища.
//
// Ненастроенное хранилище не считается ошибкой: возвращается источник,
// все запросы которого завершаются ErrDatastoreNotConfigured.
// Соединение не проверяется: для этого есть Ping.
func Open(cfg config.DatabaseConfig) (RowSource, error) {
	if !cfg.Configured() {
		return NewUnconfiguredSource(), nil
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := openSQL(sqlDriverPostgres, cfg.DSN(), cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLSource(db, config.DriverPostgres), nil

	case config.DriverSQLite:
		db, err := openSQL(sqlDriverSQLite, cfg.Path, cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLSource(db, config.DriverSQLite), nil

	case config.DriverPostgREST:
		src := NewPostgRESTSource(cfg.SupabaseURL, cfg.SupabaseKey, cfg.Schema, cfg.QueryTimeout)
		if cfg.RateLimit > 0 {
			src.WithRateLimit(ratelimit.NewRateLimiter(cfg.RateLimit, cfg.RateLimit*2))
		}
		return src, nil

	case config.DriverFile:
		return NewFileSource(cfg.DataDir, cfg.Tables), nil

	default:
		return nil, fmt.Errorf("unsupported datastore driver: %s", cfg.Driver)
	}
}

// openSQL открывает пул database/sql и настраивает его
func openSQL(driver, dsn string, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
