package service

import (
	"context"
	"sync"
	"time"

	"tradedash/internal/repository"
)

// ============ Mock RowSource ============

// tableResponse - ответ мока для одной таблицы
type tableResponse struct {
	body  string
	err   error
	delay time.Duration
}

type MockRowSource struct {
	mu        sync.Mutex
	responses map[string]tableResponse
	queries   []repository.Query
}

func NewMockRowSource() *MockRowSource {
	return &MockRowSource{responses: make(map[string]tableResponse)}
}

func (m *MockRowSource) SetRows(table, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[table] = tableResponse{body: body}
}

func (m *MockRowSource) SetError(table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[table] = tableResponse{err: err}
}

func (m *MockRowSource) SetDelay(table string, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := m.responses[table]
	resp.delay = delay
	m.responses[table] = resp
}

func (m *MockRowSource) Queries() []repository.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.Query(nil), m.queries...)
}

func (m *MockRowSource) FetchLatest(ctx context.Context, q repository.Query, sink repository.RowSink) error {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	resp, ok := m.responses[q.Table]
	m.mu.Unlock()

	if resp.delay > 0 {
		select {
		case <-time.After(resp.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if resp.err != nil {
		return resp.err
	}
	if !ok || resp.body == "" {
		return sink.DecodeRows([]byte(`[]`))
	}
	return sink.DecodeRows([]byte(resp.body))
}

func (m *MockRowSource) Ping(ctx context.Context) error { return nil }
func (m *MockRowSource) Backend() string                { return "mock" }
func (m *MockRowSource) Close() error                   { return nil }
