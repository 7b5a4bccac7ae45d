package service

import (
	"context"

	"tradedash/internal/models"
)

// StatusServiceInterface определяет интерфейс сервиса статуса
type StatusServiceInterface interface {
	GetStatus(ctx context.Context) (*models.StatusDocument, error)
	GetStats(ctx context.Context) (*models.TradingStats, error)
	GetLatestDecision(ctx context.Context) (*models.Decision, error)
	GetDecisions(ctx context.Context, limit int) (models.DecisionHistory, error)
	GetRuntime(ctx context.Context) (*models.RuntimeInfo, error)
	GetAccount(ctx context.Context) (*models.AccountInfo, error)
}

// Проверка реализации интерфейса
var _ StatusServiceInterface = (*StatusService)(nil)
