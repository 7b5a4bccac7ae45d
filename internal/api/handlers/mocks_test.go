package handlers

import (
	"context"
	"errors"
	"sync"

	"tradedash/internal/models"
)

// Общие ошибки для тестов
var ErrMockService = errors.New("mock service error")

// ============ Mock Status Service ============

// MockStatusService мок для StatusServiceInterface
type MockStatusService struct {
	doc       *models.StatusDocument
	statusErr error
	err       error

	lastLimit int
	calls     int
	mu        sync.Mutex
}

// NewMockStatusService создает мок с пустым документом
func NewMockStatusService() *MockStatusService {
	return &MockStatusService{doc: models.EmptyStatus()}
}

// SetDocument задает документ, из которого отдаются все секции
func (m *MockStatusService) SetDocument(doc *models.StatusDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc
}

// SetError задает ошибку для всех методов
func (m *MockStatusService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetStatusError задает ошибку только для GetStatus
func (m *MockStatusService) SetStatusError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusErr = err
}

func (m *MockStatusService) GetStatus(ctx context.Context) (*models.StatusDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.doc, nil
}

func (m *MockStatusService) GetStats(ctx context.Context) (*models.TradingStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.doc.Stats, nil
}

func (m *MockStatusService) GetLatestDecision(ctx context.Context) (*models.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.doc.LatestDecision, nil
}

func (m *MockStatusService) GetDecisions(ctx context.Context, limit int) (models.DecisionHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.err != nil {
		return models.NewDecisionHistory(nil), m.err
	}
	return m.doc.Decisions, nil
}

func (m *MockStatusService) GetRuntime(ctx context.Context) (*models.RuntimeInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.doc.Runtime, nil
}

func (m *MockStatusService) GetAccount(ctx context.Context) (*models.AccountInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.doc.Account, nil
}

// LastLimit возвращает limit последнего вызова GetDecisions
func (m *MockStatusService) LastLimit() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLimit
}

// Calls возвращает количество вызовов GetStatus
func (m *MockStatusService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ============ Helpers ============

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
func strPtr(s string) *string     { return &s }
