package handlers

import (
	"net/http"
	"strconv"

	"tradedash/internal/models"
	"tradedash/internal/service"
	"tradedash/pkg/utils"
)

// StatusHandler обрабатывает JSON запросы состояния торгового процесса.
//
// Endpoints:
// - /api/status - агрегированный документ
// - /api/account - баланс аккаунта
// - /api/stats - торговая статистика
// - /api/runtime - heartbeat процесса
// - /api/decisions - история решений
//
// Отсутствующие строки не считаются ошибкой: секция отдается как null.
// 500 возвращается только если сервис не работает вообще.
type StatusHandler struct {
	statusService service.StatusServiceInterface
}

// NewStatusHandler создает новый StatusHandler с внедрением зависимостей.
func NewStatusHandler(statusService service.StatusServiceInterface) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

// GetStatus возвращает агрегированный документ статуса.
//
// Response 200 OK:
//
//	{
//	  "stats": {"total_trades": 10, "win_trades": 6, "total_pnl": 12.5, ...},
//	  "latest_decision": {"decision_time": "...", "action": "HOLD", ...},
//	  "decisions": {"decisions": [...]},
//	  "runtime": {"invocation_count": 42, ...},
//	  "account": null
//	}
//
// Response 500 Internal Server Error:
//
//	{"error": "..."}
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if h.statusService == nil {
		writeError(w, "status service not initialized")
		return
	}

	doc, err := h.statusService.GetStatus(r.Context())
	if err != nil {
		utils.Error("failed to build status", utils.Err(err))
		writeError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// GetAccount возвращает последнюю строку account_info.
//
// Если строки нет: {"total": 0, "available": 0, "unrealized_pnl": 0}
func (h *StatusHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	if h.statusService == nil {
		writeError(w, "status service not initialized")
		return
	}

	account, err := h.statusService.GetAccount(r.Context())
	if err != nil {
		utils.Error("failed to get account", utils.Err(err))
		writeError(w, err.Error())
		return
	}

	if account == nil {
		writeJSON(w, http.StatusOK, models.AccountSummary{})
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// GetStats возвращает последнюю строку trading_stats или null
func (h *StatusHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.statusService == nil {
		writeError(w, "status service not initialized")
		return
	}

	stats, err := h.statusService.GetStats(r.Context())
	if err != nil {
		utils.Error("failed to get stats", utils.Err(err))
		writeError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetRuntime возвращает последнюю строку runtime_info или null
func (h *StatusHandler) GetRuntime(w http.ResponseWriter, r *http.Request) {
	if h.statusService == nil {
		writeError(w, "status service not initialized")
		return
	}

	runtime, err := h.statusService.GetRuntime(r.Context())
	if err != nil {
		utils.Error("failed to get runtime", utils.Err(err))
		writeError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, runtime)
}

// GetDecisions возвращает историю решений от новых к старым.
//
// Query Parameters:
// - limit (optional): количество решений, не больше размера истории
//
// Response 200 OK:
//
//	{"decisions": [{"decision_time": "...", "action": "BUY_OPEN", ...}]}
func (h *StatusHandler) GetDecisions(w http.ResponseWriter, r *http.Request) {
	if h.statusService == nil {
		writeError(w, "status service not initialized")
		return
	}

	// некорректный limit игнорируется, сервис подставит размер истории
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	history, err := h.statusService.GetDecisions(r.Context(), limit)
	if err != nil {
		utils.Error("failed to get decisions", utils.Err(err))
		writeError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, history)
}
