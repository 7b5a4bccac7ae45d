package main

import (
	"context"
	"fmt"
	"time"

	"tradedash/internal/config"
	"tradedash/internal/metrics"
	"tradedash/internal/repository"
	"tradedash/internal/service"
	"tradedash/pkg/retry"
	"tradedash/pkg/utils"
)

// app - собранные зависимости процесса
type app struct {
	cfg     *config.Config
	source  repository.RowSource
	service *service.StatusService
}

func loadEnv(path string) error {
	if err := config.LoadEnvFile(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// bootstrap загружает конфигурацию, инициализирует логгер и источник строк.
//
// stdoutReserved переводит логи со stdout на stderr (stdout занят выводом команды).
func bootstrap(ctx context.Context, stdoutReserved bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if stdoutReserved && (cfg.Logging.Output == "" || cfg.Logging.Output == "stdout") {
		cfg.Logging.Output = "stderr"
	}

	utils.InitGlobalLogger(utils.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      cfg.Logging.Output,
		Development: cfg.Logging.Development,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})

	source, err := repository.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}

	if cfg.Database.Configured() {
		utils.Info("datastore configured",
			utils.Backend(source.Backend()),
			utils.String("target", cfg.Database.DSNWithoutPassword()),
		)
		pingDatastore(ctx, source, cfg.Database)
	} else {
		utils.Warn("no datastore configured, serving setup instructions")
		metrics.UpdateDatastoreUp(false)
	}

	svc := service.NewStatusService(
		source,
		repository.NewTables(cfg.Database.Schema, cfg.Database.Tables),
		service.StatusServiceConfig{
			QueryTimeout: cfg.Database.QueryTimeout,
			HistoryLimit: cfg.Dashboard.HistoryLimit,
			Location:     cfg.Dashboard.Location(),
		},
	)

	return &app{cfg: cfg, source: source, service: svc}, nil
}

// pingDatastore проверяет хранилище при старте.
// Недоступное хранилище не останавливает сервер: поля страницы будут пустыми.
func pingDatastore(ctx context.Context, source repository.RowSource, cfg config.DatabaseConfig) {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.PingAttempts
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		utils.Warn("datastore ping failed, retrying",
			utils.Backend(source.Backend()),
			utils.Int("attempt", attempt),
			utils.Duration("delay", delay),
			utils.Err(err),
		)
	}

	err := retry.Do(ctx, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
		return source.Ping(pingCtx)
	}, retryCfg)

	metrics.UpdateDatastoreUp(err == nil)
	if err != nil {
		utils.Error("datastore unreachable, continuing without data",
			utils.Backend(source.Backend()),
			utils.Err(err),
		)
		return
	}
	utils.Info("connected to datastore", utils.Backend(source.Backend()))
}

func (a *app) Close() {
	if err := a.source.Close(); err != nil {
		utils.Warn("failed to close datastore", utils.Err(err))
	}
	utils.GetGlobalLogger().Sync()
}
