package ratelimit

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/time/rate"
)

// RateLimiter - Token Bucket для исходящих запросов к хранилищу
// поверх golang.org/x/time/rate.
//
// Ведро пополняется со скоростью rate токенов в секунду до burst.
// Каждый запрос забирает один токен; если токенов нет, Wait ждет.
//
// Используется PostgREST источником: несколько открытых вкладок
// дашборда опрашивают /api/status одновременно, и каждый опрос дает
// пять запросов к Supabase.
//
//	limiter := NewRateLimiter(10, 20) // 10 req/sec, burst 20
//	err := limiter.Wait(ctx)
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter создаёт limiter с полным ведром.
// burst меньше rate поднимается до rate.
func NewRateLimiter(r, burst float64) *RateLimiter {
	if r <= 0 {
		r = 10
	}
	if burst <= 0 {
		burst = r * 2
	}
	if burst < r {
		burst = r
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(r), int(math.Ceil(burst))),
	}
}

// Wait блокирует до получения токена или отмены контекста.
//
// Если токен не успевает появиться до дедлайна ctx, ошибка
// оборачивает context.DeadlineExceeded сразу, без ожидания.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	err := rl.limiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
}

// Allow забирает токен без ожидания
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// Tokens возвращает текущее количество токенов
func (rl *RateLimiter) Tokens() float64 {
	return rl.limiter.Tokens()
}

// Rate возвращает скорость пополнения (токенов/сек)
func (rl *RateLimiter) Rate() float64 {
	return float64(rl.limiter.Limit())
}

// Burst возвращает ёмкость ведра
func (rl *RateLimiter) Burst() int {
	return rl.limiter.Burst()
}
