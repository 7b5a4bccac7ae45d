package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Имена драйверов database/sql
const (
	sqlDriverPostgres = "postgres"
	sqlDriverSQLite   = "sqlite"
)

// SQLSource - источник строк поверх database/sql (postgres или sqlite)
type SQLSource struct {
	db      *sql.DB
	backend string
}

// NewSQLSource создает источник поверх готового пула соединений
func NewSQLSource(db *sql.DB, backend string) *SQLSource {
	return &SQLSource{db: db, backend: backend}
}

// FetchLatest выполняет SELECT ... ORDER BY ... DESC LIMIT n
func (s *SQLSource) FetchLatest(ctx context.Context, q Query, sink RowSink) error {
	if err := q.Validate(); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, q.SQL())
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := sink.ScanRow(rows.Scan); err != nil {
			return fmt.Errorf("scan %s: %w", q.Table, err)
		}
	}

	return rows.Err()
}

// Ping проверяет соединение с базой
func (s *SQLSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Backend возвращает имя бэкенда
func (s *SQLSource) Backend() string {
	return s.backend
}

// Close закрывает пул соединений
func (s *SQLSource) Close() error {
	return s.db.Close()
}
