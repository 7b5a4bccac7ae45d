package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"tradedash/internal/metrics"
	"tradedash/pkg/utils"
)

// Ошибки хранилища
var (
	ErrNoRows                 = errors.New("no rows")
	ErrDatastoreNotConfigured = errors.New("datastore not configured")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RowSource - источник последних строк таблиц торгового процесса
//
// Реализации: SQLSource (postgres, sqlite), PostgRESTSource (Supabase REST)
// и unconfiguredSource. Источник создается один раз при старте и
// используется конкурентно всеми запросами.
type RowSource interface {
	// FetchLatest читает до q.Limit строк по убыванию q.OrderBy и передает их в sink
	FetchLatest(ctx context.Context, q Query, sink RowSink) error

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Backend - имя бэкенда для логов и метрик
	Backend() string

	Close() error
}

// RowSink принимает строки результата.
//
// SQL источники передают функцию сканирования для каждой строки,
// PostgREST - тело ответа целиком (JSON массив).
type RowSink interface {
	ScanRow(scan func(dest ...any) error) error
	DecodeRows(body []byte) error
}

// Query - запрос последних строк таблицы
type Query struct {
	Schema  string
	Table   string
	Columns []string
	OrderBy string
	Limit   int

	// TextColumns - колонки времени, которые SQL источники читают как текст.
	// Без приведения драйвер возвращает time.Time, и database/sql
	// переформатирует значение в RFC3339 с зоной Z.
	TextColumns []string
}

// Validate проверяет имена, которые попадают в текст запроса
func (q Query) Validate() error {
	if q.Schema != "" {
		if err := utils.ValidateIdentifier(q.Schema); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	if err := utils.ValidateIdentifier(q.Table); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if err := utils.ValidateIdentifier(q.OrderBy); err != nil {
		return fmt.Errorf("order column: %w", err)
	}
	if len(q.Columns) == 0 {
		return fmt.Errorf("table %s: no columns selected", q.Table)
	}
	for _, col := range q.Columns {
		if err := utils.ValidateIdentifier(col); err != nil {
			return fmt.Errorf("column: %w", err)
		}
	}
	for _, col := range q.TextColumns {
		if !slices.Contains(q.Columns, col) {
			return fmt.Errorf("text column %s is not selected", col)
		}
	}
	if q.Limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", q.Limit)
	}
	return nil
}

// QualifiedTable возвращает schema.table или просто table
func (q Query) QualifiedTable() string {
	if q.Schema == "" {
		return q.Table
	}
	return q.Schema + "." + q.Table
}

// sqlAlias - псевдоним таблицы в запросе
const sqlAlias = "src"

// SQL строит текст запроса. Имена проверены Validate, лимит - целое число,
// поэтому плейсхолдеры не нужны.
//
// Колонки времени выбираются как CAST(col AS TEXT) AS col. Сортировка
// квалифицирована псевдонимом таблицы: иначе ORDER BY совпал бы с
// текстовой колонкой результата, а не с исходной.
func (q Query) SQL() string {
	return fmt.Sprintf("SELECT %s FROM %s AS %s ORDER BY %s.%s DESC LIMIT %d",
		strings.Join(q.selectList(), ", "), q.QualifiedTable(), sqlAlias, sqlAlias, q.OrderBy, q.Limit)
}

func (q Query) selectList() []string {
	list := make([]string, len(q.Columns))
	for i, col := range q.Columns {
		if slices.Contains(q.TextColumns, col) {
			list[i] = fmt.Sprintf("CAST(%s AS TEXT) AS %s", col, col)
			continue
		}
		list[i] = col
	}
	return list
}

// Table описывает таблицу и проекцию ее строк в тип T
type Table[T any] struct {
	Schema      string
	Name        string
	OrderColumn string
	Columns     []string
	TimeColumns []string

	// Targets возвращает указатели на поля row в порядке Columns
	Targets func(row *T) []any
}

// Query строит запрос последних limit строк
func (t Table[T]) Query(limit int) Query {
	return Query{
		Schema:  t.Schema,
		Table:   t.Name,
		Columns: t.Columns,
		OrderBy: t.OrderColumn,
		Limit:   limit,

		TextColumns: t.TimeColumns,
	}
}

// collector собирает строки таблицы в срез
type collector[T any] struct {
	table Table[T]
	rows  []T
}

func (c *collector[T]) ScanRow(scan func(dest ...any) error) error {
	var row T
	if err := scan(c.table.Targets(&row)...); err != nil {
		return err
	}
	c.rows = append(c.rows, row)
	return nil
}

func (c *collector[T]) DecodeRows(body []byte) error {
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decode %s rows: %w", c.table.Name, err)
	}
	c.rows = append(c.rows, rows...)
	return nil
}

// FetchLatest читает последние limit строк таблицы.
//
// Пустой результат возвращается как ErrNoRows.
func FetchLatest[T any](ctx context.Context, src RowSource, table Table[T], limit int) ([]T, error) {
	if src == nil {
		return nil, ErrDatastoreNotConfigured
	}

	sink := &collector[T]{table: table}
	start := time.Now()
	err := src.FetchLatest(ctx, table.Query(limit), sink)
	metrics.RecordQuery(table.Name, src.Backend(), time.Since(start))

	if err != nil {
		return nil, fmt.Errorf("%s: %w", table.Name, err)
	}
	if len(sink.rows) == 0 {
		return nil, fmt.Errorf("%s: %w", table.Name, ErrNoRows)
	}
	return sink.rows, nil
}

// FetchLatestOrDefault - FetchLatest с деградацией: при любой ошибке
// возвращает def. Ошибка логируется и учитывается в метриках, но не
// передается вызывающему.
func FetchLatestOrDefault[T any](ctx context.Context, src RowSource, table Table[T], limit int, def []T) []T {
	rows, err := FetchLatest(ctx, src, table, limit)
	if err == nil {
		return rows
	}

	reason := metrics.ClassifyError(err, ErrNoRows, ErrDatastoreNotConfigured)
	metrics.RecordQueryFailure(table.Name, reason)

	fields := []zap.Field{utils.Table(table.Name), utils.String("reason", reason)}
	switch reason {
	case metrics.ReasonNoRows, metrics.ReasonNotConfigured:
		utils.Debug("latest-row query returned nothing", fields...)
	default:
		utils.Warn("latest-row query failed", append(fields, utils.Err(err))...)
	}

	return def
}
