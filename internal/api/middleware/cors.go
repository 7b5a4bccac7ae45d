package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// defaultOrigins - локальные адреса, разрешенные всегда
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// CORS - middleware для Cross-Origin Resource Sharing
//
// Разрешенные origins: локальные адреса плюс extra (CORS_ALLOWED_ORIGINS).
// Запросы без Origin (curl, сам дашборд) получают "*".
// Для неразрешенных origins заголовки не ставятся, браузер заблокирует ответ.
// API только читает данные, поэтому разрешены GET и OPTIONS.
//
// Ответ без обработчика получает только preflight: OPTIONS с Origin и
// Access-Control-Request-Method. Остальные OPTIONS запросы обрабатываются
// как обычные, метод маршрут не ограничивает.
func CORS(extra []string) mux.MiddlewareFunc {
	allowed := make(map[string]bool, len(defaultOrigins)+len(extra))
	for _, origin := range defaultOrigins {
		allowed[origin] = true
	}
	for _, origin := range extra {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed[origin] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if isPreflight(r) {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}
