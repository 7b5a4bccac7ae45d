package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tradedash/internal/metrics"
	"tradedash/pkg/utils"
)

// RequestIDHeader - заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// responseWriter запоминает статус и размер ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logging - middleware для логирования HTTP запросов
//
// Пишет одну запись на запрос: метод, путь, статус, длительность,
// IP клиента, размер ответа и request id. Request id берется из
// X-Request-ID или генерируется и возвращается в том же заголовке.
// Заодно учитывает запрос в метриках по шаблону маршрута.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		metrics.RecordHTTPRequest(routeLabel(r), wrapped.statusCode, duration)

		fields := []zap.Field{
			utils.Method(r.Method),
			utils.Path(r.URL.Path),
			utils.Status(wrapped.statusCode),
			utils.Latency(duration),
			utils.ClientIP(clientIP(r)),
			utils.Bytes(wrapped.written),
		}

		log := utils.L().WithRequestID(requestID)
		if wrapped.statusCode >= http.StatusInternalServerError {
			log.Warn("http request", fields...)
			return
		}
		log.Info("http request", fields...)
	})
}

// routeLabel возвращает шаблон маршрута mux, чтобы не плодить
// метки метрик на каждый путь
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
