package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tradedash/pkg/ratelimit"
)

// PostgRESTSource читает таблицы через REST API Supabase (PostgREST)
//
// GET {base}/rest/v1/{table}?select=a,b&order=col.desc&limit=N
// с заголовками apikey и Authorization: Bearer.
type PostgRESTSource struct {
	client  *resty.Client
	schema  string
	limiter *ratelimit.RateLimiter
}

// NewPostgRESTSource создает источник для проекта Supabase
func NewPostgRESTSource(baseURL, apiKey, schema string, timeout time.Duration) *PostgRESTSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetHeader("apikey", apiKey).
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &PostgRESTSource{client: client, schema: schema}
}

// WithRateLimit ограничивает частоту запросов к API.
// Ожидание токена входит в таймаут запроса.
func (s *PostgRESTSource) WithRateLimit(limiter *ratelimit.RateLimiter) *PostgRESTSource {
	s.limiter = limiter
	return s
}

// FetchLatest запрашивает последние строки таблицы
func (s *PostgRESTSource) FetchLatest(ctx context.Context, q Query, sink RowSink) error {
	if err := q.Validate(); err != nil {
		return err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("postgrest %s: rate limit: %w", q.Table, err)
		}
	}

	req := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": strings.Join(q.Columns, ","),
			"order":  q.OrderBy + ".desc",
			"limit":  strconv.Itoa(q.Limit),
		})

	// Схема отличная от public выбирается заголовком профиля
	if q.Schema != "" {
		req.SetHeader("Accept-Profile", q.Schema)
	}

	resp, err := req.Get("/" + q.Table)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("postgrest %s: status %d: %s", q.Table, resp.StatusCode(), truncate(resp.String(), 200))
	}

	return sink.DecodeRows(resp.Body())
}

// Ping запрашивает корень REST API
func (s *PostgRESTSource) Ping(ctx context.Context) error {
	req := s.client.R().SetContext(ctx)
	if s.schema != "" {
		req.SetHeader("Accept-Profile", s.schema)
	}

	resp, err := req.Get("/")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("postgrest ping: status %d", resp.StatusCode())
	}
	return nil
}

// Backend возвращает имя бэкенда
func (s *PostgRESTSource) Backend() string {
	return "postgrest"
}

// Close ничего не делает: у HTTP клиента нет долгоживущих ресурсов
func (s *PostgRESTSource) Close() error {
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
