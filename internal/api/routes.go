package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradedash/internal/api/handlers"
	"tradedash/internal/api/middleware"
	"tradedash/internal/service"
	"tradedash/internal/web"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	StatusService service.StatusServiceInterface
	Renderer      *web.Renderer

	// Page - параметры страницы (локаль, заголовок, интервал опроса)
	Page web.Options

	// Configured=false: вместо дашборда отдается страница настройки
	Configured bool

	// MetricsPath - путь Prometheus endpoint, пустой отключает его
	MetricsPath string

	CORSOrigins []string
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Маршруты сопоставляются по точному пути, метод не проверяется:
//
//	/api/status    - агрегированный документ статуса
//	/api/account   - баланс или {"total":0,"available":0,"unrealized_pnl":0}
//	/api/stats     - торговая статистика или null
//	/api/runtime   - heartbeat или null
//	/api/decisions - история решений
//	/health        - OK
//	/metrics       - Prometheus (путь настраивается)
//	/*             - HTML страница мониторинга, 404 не бывает
//
// Middleware применяется в следующем порядке:
// 1. Logging (видит и 500 после паники)
// 2. Recovery
// 3. CORS
//
// Пути не нормализуются: //foo получает страницу, а не редирект.
func SetupRoutes(deps *Dependencies) *mux.Router {
	if deps == nil {
		deps = &Dependencies{}
	}

	router := mux.NewRouter().SkipClean(true)

	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS(deps.CORSOrigins))

	statusHandler := handlers.NewStatusHandler(deps.StatusService)
	dashboardHandler := handlers.NewDashboardHandler(deps.StatusService, deps.Renderer, deps.Page, deps.Configured)

	router.HandleFunc("/api/status", statusHandler.GetStatus)
	router.HandleFunc("/api/account", statusHandler.GetAccount)
	router.HandleFunc("/api/stats", statusHandler.GetStats)
	router.HandleFunc("/api/runtime", statusHandler.GetRuntime)
	router.HandleFunc("/api/decisions", statusHandler.GetDecisions)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if deps.MetricsPath != "" {
		router.Handle(deps.MetricsPath, promhttp.Handler())
	}

	// Все остальное - страница мониторинга
	router.PathPrefix("/").Handler(dashboardHandler)

	return router
}
