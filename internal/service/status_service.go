package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"tradedash/internal/metrics"
	"tradedash/internal/models"
	"tradedash/internal/repository"
	"tradedash/pkg/utils"
)

// Ошибки сервиса статуса
var (
	ErrSourceNotInitialized = errors.New("row source not initialized")
)

// Значения по умолчанию
const (
	DefaultHistoryLimit = 20
	DefaultQueryTimeout = 10 * time.Second
)

// StatusService собирает снимок состояния торгового процесса.
//
// Функции:
// - GetStatus: пять независимых запросов последних строк, параллельно
// - GetStats, GetLatestDecision, GetDecisions, GetRuntime, GetAccount: по одной секции
//
// Ошибка или отсутствие строки не прерывает сборку: соответствующее поле
// становится null (история - пустым списком). Ошибка возвращается только
// если сервис не инициализирован.
type StatusService struct {
	source       repository.RowSource
	tables       repository.Tables
	queryTimeout time.Duration
	historyLimit int
	loc          *time.Location
	now          func() time.Time
}

// StatusServiceConfig - параметры запросов
type StatusServiceConfig struct {
	QueryTimeout time.Duration
	HistoryLimit int

	// Location - часовой пояс для временных меток без зоны
	Location *time.Location
}

// NewStatusService создает новый экземпляр StatusService
func NewStatusService(source repository.RowSource, tables repository.Tables, cfg StatusServiceConfig) *StatusService {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &StatusService{
		source:       source,
		tables:       tables,
		queryTimeout: cfg.QueryTimeout,
		historyLimit: cfg.HistoryLimit,
		loc:          cfg.Location,
		now:          time.Now,
	}
}

// HistoryLimit возвращает размер истории решений
func (s *StatusService) HistoryLimit() int {
	return s.historyLimit
}

// GetStatus возвращает агрегированный документ статуса.
//
// Запросы выполняются параллельно, у каждого свой таймаут.
// Каждая горутина пишет только в свое поле документа.
func (s *StatusService) GetStatus(ctx context.Context) (*models.StatusDocument, error) {
	if s == nil || s.source == nil {
		return nil, ErrSourceNotInitialized
	}

	doc := models.EmptyStatus()

	var g errgroup.Group
	g.Go(func() error {
		doc.Stats = first(fetch(ctx, s, s.tables.Stats, 1))
		return nil
	})
	g.Go(func() error {
		doc.LatestDecision = first(fetch(ctx, s, s.tables.Decisions, 1))
		return nil
	})
	g.Go(func() error {
		doc.Decisions = models.NewDecisionHistory(fetch(ctx, s, s.tables.Decisions, s.historyLimit))
		return nil
	})
	g.Go(func() error {
		doc.Runtime = first(fetch(ctx, s, s.tables.Runtime, 1))
		return nil
	})
	g.Go(func() error {
		doc.Account = first(fetch(ctx, s, s.tables.Account, 1))
		return nil
	})

	// горутины не возвращают ошибок: деградация обрабатывается в fetch
	_ = g.Wait()

	s.observeHeartbeat(doc.Runtime)

	return doc, nil
}

// GetStats возвращает последнюю строку статистики или nil
func (s *StatusService) GetStats(ctx context.Context) (*models.TradingStats, error) {
	if s == nil || s.source == nil {
		return nil, ErrSourceNotInitialized
	}
	return first(fetch(ctx, s, s.tables.Stats, 1)), nil
}

// GetLatestDecision возвращает последнее решение или nil
func (s *StatusService) GetLatestDecision(ctx context.Context) (*models.Decision, error) {
	if s == nil || s.source == nil {
		return nil, ErrSourceNotInitialized
	}
	return first(fetch(ctx, s, s.tables.Decisions, 1)), nil
}

// GetDecisions возвращает историю решений от новых к старым.
//
// limit <= 0 или больше размера истории заменяется размером истории.
func (s *StatusService) GetDecisions(ctx context.Context, limit int) (models.DecisionHistory, error) {
	if s == nil || s.source == nil {
		return models.NewDecisionHistory(nil), ErrSourceNotInitialized
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return models.NewDecisionHistory(fetch(ctx, s, s.tables.Decisions, limit)), nil
}

// GetRuntime возвращает heartbeat торгового процесса или nil
func (s *StatusService) GetRuntime(ctx context.Context) (*models.RuntimeInfo, error) {
	if s == nil || s.source == nil {
		return nil, ErrSourceNotInitialized
	}
	runtime := first(fetch(ctx, s, s.tables.Runtime, 1))
	s.observeHeartbeat(runtime)
	return runtime, nil
}

// GetAccount возвращает снимок баланса или nil
func (s *StatusService) GetAccount(ctx context.Context) (*models.AccountInfo, error) {
	if s == nil || s.source == nil {
		return nil, ErrSourceNotInitialized
	}
	return first(fetch(ctx, s, s.tables.Account, 1)), nil
}

// observeHeartbeat обновляет метрику возраста heartbeat
func (s *StatusService) observeHeartbeat(runtime *models.RuntimeInfo) {
	if runtime == nil || runtime.LastUpdate == nil {
		return
	}

	ts, err := utils.ParseTimestamp(*runtime.LastUpdate, s.loc)
	if err != nil {
		utils.Debug("unparsable runtime heartbeat", utils.String("last_update", *runtime.LastUpdate), utils.Err(err))
		return
	}
	metrics.UpdateHeartbeatAge(s.now().Sub(ts))
}

// fetch читает последние строки таблицы с собственным таймаутом.
// При ошибке возвращает nil.
func fetch[T any](ctx context.Context, s *StatusService, table repository.Table[T], limit int) []T {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	return repository.FetchLatestOrDefault(qctx, s.source, table, limit, nil)
}

// first возвращает указатель на первую строку или nil
func first[T any](rows []T) *T {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}
