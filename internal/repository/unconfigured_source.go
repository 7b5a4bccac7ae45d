package repository

import "context"

// unconfiguredSource используется, когда хранилище не настроено.
// Все запросы завершаются ErrDatastoreNotConfigured, поля деградируют в null.
type unconfiguredSource struct{}

// NewUnconfiguredSource возвращает источник без хранилища
func NewUnconfiguredSource() RowSource {
	return unconfiguredSource{}
}

func (unconfiguredSource) FetchLatest(context.Context, Query, RowSink) error {
	return ErrDatastoreNotConfigured
}

func (unconfiguredSource) Ping(context.Context) error { return ErrDatastoreNotConfigured }
func (unconfiguredSource) Backend() string            { return "none" }
func (unconfiguredSource) Close() error               { return nil }
