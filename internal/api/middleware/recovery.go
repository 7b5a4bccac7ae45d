package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"tradedash/internal/api/handlers"
	"tradedash/pkg/utils"
)

// Recovery - middleware для восстановления после паники в handlers
//
// Перехватывает panic, логирует ошибку со stack trace и отвечает
// {"error": "..."} со статусом 500. Сервер продолжает обслуживать
// следующие запросы.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				utils.Error("panic in handler",
					utils.Method(r.Method),
					utils.Path(r.URL.Path),
					utils.String("panic", fmt.Sprint(rec)),
					utils.String("stack", string(debug.Stack())),
				)

				handlers.WriteError(w, fmt.Sprintf("internal server error: %v", rec))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
