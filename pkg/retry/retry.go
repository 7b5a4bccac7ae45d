package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config конфигурация повторных попыток
//
// Экспоненциальный backoff с jitter (github.com/cenkalti/backoff/v4):
// delay = min(InitialDelay * Multiplier^attempt, MaxDelay) ± jitter
//
// Используется только вне пути запроса (проверка хранилища при старте):
// запросы дашборда не повторяются, поле просто деградирует в null.
type Config struct {
	// MaxAttempts - максимальное количество попыток (включая первую), минимум 1
	MaxAttempts int

	// InitialDelay - задержка перед второй попыткой
	InitialDelay time.Duration

	// MaxDelay - верхняя граница задержки
	MaxDelay time.Duration

	// Multiplier - множитель экспоненциального роста
	Multiplier float64

	// JitterFactor - доля случайной вариации (0.0 - 1.0)
	JitterFactor float64

	// OnRetry - вызывается перед каждым повтором
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultConfig - 3 попытки, задержки 500ms, 1s (+ jitter)
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// validate устанавливает значения по умолчанию
func (c *Config) validate() {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 100 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 10 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.JitterFactor < 0 {
		c.JitterFactor = 0
	}
	if c.JitterFactor > 1 {
		c.JitterFactor = 1
	}
}

// backOff строит политику задержек. Ограничение по общему времени
// отключено: число попыток задает MaxAttempts.
func (c *Config) backOff(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.InitialDelay
	exp.MaxInterval = c.MaxDelay
	exp.Multiplier = c.Multiplier
	exp.RandomizationFactor = c.JitterFactor
	exp.MaxElapsedTime = 0
	exp.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.MaxAttempts-1)), ctx)
}

// Permanent помечает ошибку как неповторяемую
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do выполняет operation до успеха, исчерпания попыток или отмены ctx.
//
// Возвращает последнюю ошибку операции (Permanent разворачивается).
// Отмена ctx во время ожидания возвращает ошибку контекста.
func Do(ctx context.Context, operation func(ctx context.Context) error, cfg Config) error {
	cfg.validate()

	if err := ctx.Err(); err != nil {
		return err
	}

	attempt := 0
	notify := func(err error, delay time.Duration) {
		attempt++
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}
	}

	return backoff.RetryNotify(func() error {
		return operation(ctx)
	}, cfg.backOff(ctx), notify)
}
