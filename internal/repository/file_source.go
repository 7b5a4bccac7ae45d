package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"

	"tradedash/internal/config"
	"tradedash/pkg/utils"
)

// Файлы, которые торговый процесс пишет, когда база не настроена
const (
	StatsFile     = "trading_stats.json"
	DecisionsFile = "ai_decisions.json"
	RuntimeFile   = "current_runtime.json"
	AccountFile   = "account_info.json"
)

// decisionsKey - ключ массива в ai_decisions.json
const decisionsKey = "decisions"

// fileRow - строка файла; значения колонок хранятся как есть
type fileRow map[string]jsoniter.RawMessage

// FileSource читает локальные JSON файлы торгового процесса.
//
// Форматы файлов:
// - trading_stats.json, current_runtime.json, account_info.json: один объект
// - ai_decisions.json: {"decisions": [...]}
// Массив строк на верхнем уровне тоже принимается.
//
// Порядок записей в файле не гарантирован, поэтому строки сортируются
// по колонке сортировки от новых к старым. Записи без разбираемого
// времени идут последними; при равном времени более поздняя запись
// файла считается более новой. Отсутствующий файл - это пустая таблица.
type FileSource struct {
	dir   string
	files map[string]string
}

// NewFileSource создает источник для каталога dir
func NewFileSource(dir string, names config.TableNames) *FileSource {
	names = tableNamesOrDefault(names)
	return &FileSource{
		dir: dir,
		files: map[string]string{
			names.Stats:     StatsFile,
			names.Decisions: DecisionsFile,
			names.Runtime:   RuntimeFile,
			names.Account:   AccountFile,
		},
	}
}

// FetchLatest читает файл таблицы и передает в sink до q.Limit последних строк
func (s *FileSource) FetchLatest(ctx context.Context, q Query, sink RowSink) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name, ok := s.files[q.Table]
	if !ok {
		return fmt.Errorf("file source: no file for table %s", q.Table)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := decodeFileRows(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil
	}

	rows = latestFileRows(rows, q.OrderBy, q.Limit)

	body, err := json.Marshal(projectFileRows(rows, q.Columns))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return sink.DecodeRows(body)
}

// Ping проверяет, что каталог с файлами существует
func (s *FileSource) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.dir)
	}
	return nil
}

// Backend возвращает имя бэкенда
func (s *FileSource) Backend() string {
	return config.DriverFile
}

// Close ничего не делает: файлы открываются на время запроса
func (s *FileSource) Close() error {
	return nil
}

// decodeFileRows разбирает содержимое файла в строки
func decodeFileRows(data []byte) ([]fileRow, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var rows []fileRow
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		return rows, nil

	case '{':
		var obj fileRow
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		if raw, ok := obj[decisionsKey]; ok {
			var rows []fileRow
			if err := json.Unmarshal(raw, &rows); err != nil {
				return nil, fmt.Errorf("%s: %w", decisionsKey, err)
			}
			return rows, nil
		}
		if len(obj) == 0 {
			return nil, nil
		}
		return []fileRow{obj}, nil

	default:
		return nil, errors.New("expected JSON object or array")
	}
}

// latestFileRows сортирует строки от новых к старым и оставляет limit первых
func latestFileRows(rows []fileRow, orderBy string, limit int) []fileRow {
	type keyed struct {
		row fileRow
		ts  time.Time
		ok  bool
	}

	// обратный порядок файла: при равном времени выше поздняя запись
	ordered := make([]keyed, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		ts, ok := fileRowTime(rows[i], orderBy)
		ordered = append(ordered, keyed{row: rows[i], ts: ts, ok: ok})
	}

	slices.SortStableFunc(ordered, func(a, b keyed) int {
		switch {
		case a.ok && b.ok:
			return b.ts.Compare(a.ts)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	result := make([]fileRow, len(ordered))
	for i, k := range ordered {
		result[i] = k.row
	}
	return result
}

func fileRowTime(row fileRow, column string) (time.Time, bool) {
	raw, ok := row[column]
	if !ok {
		return time.Time{}, false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, false
	}
	ts, err := utils.ParseTimestamp(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// projectFileRows оставляет в строках только выбранные колонки
func projectFileRows(rows []fileRow, columns []string) []fileRow {
	projected := make([]fileRow, len(rows))
	for i, row := range rows {
		out := make(fileRow, len(columns))
		for _, col := range columns {
			if v, ok := row[col]; ok {
				out[col] = v
			}
		}
		projected[i] = out
	}
	return projected
}
