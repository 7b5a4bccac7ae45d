package utils

// validator.go - валидация имен, подставляемых в SQL
//
// Имена таблиц и колонок приходят из конфигурации и попадают в текст
// запроса без плейсхолдеров, поэтому допускаются только простые идентификаторы.

import (
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidateIdentifier проверяет имя таблицы/колонки/схемы
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: expected [A-Za-z_][A-Za-z0-9_]*, max 63 chars", name)
	}
	return nil
}
