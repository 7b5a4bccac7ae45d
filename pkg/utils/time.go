package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidTimestamp - строка не похожа ни на один известный формат
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// timestampLayouts - форматы, в которых таблицы бота отдают время.
//
// Торговый процесс пишет datetime.isoformat() без зоны,
// Postgres/PostgREST возвращают timestamptz с зоной,
// SQLite хранит текст в любом из вариантов.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp разбирает сырую строку времени из хранилища.
//
// Время без зоны интерпретируется в loc (nil = UTC).
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidTimestamp
}

// SplitDuration раскладывает продолжительность на целые дни, часы и минуты.
//
// Отрицательная продолжительность (часы процесса впереди) считается нулевой.
func SplitDuration(d time.Duration) (days, hours, minutes int) {
	if d < 0 {
		return 0, 0, 0
	}

	days = int(d / (24 * time.Hour))
	hours = int(d%(24*time.Hour)) / int(time.Hour)
	minutes = int(d%time.Hour) / int(time.Minute)
	return days, hours, minutes
}
