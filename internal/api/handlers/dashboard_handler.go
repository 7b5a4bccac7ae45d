package handlers

import (
	"net/http"
	"time"

	"tradedash/internal/models"
	"tradedash/internal/service"
	"tradedash/internal/web"
	"tradedash/pkg/utils"
)

// DashboardHandler отдает HTML страницу мониторинга на любой путь,
// не занятый API.
//
// Страница рендерится с текущими значениями, дальше ее обновляет скрипт
// опроса /api/status. Если хранилище не настроено, вместо дашборда
// отдается страница с инструкцией по настройке.
type DashboardHandler struct {
	statusService service.StatusServiceInterface
	renderer      *web.Renderer
	options       web.Options
	configured    bool
	now           func() time.Time
}

// NewDashboardHandler создает новый DashboardHandler.
//
// configured=false включает страницу настройки.
func NewDashboardHandler(statusService service.StatusServiceInterface, renderer *web.Renderer, options web.Options, configured bool) *DashboardHandler {
	return &DashboardHandler{
		statusService: statusService,
		renderer:      renderer,
		options:       options,
		configured:    configured,
		now:           time.Now,
	}
}

// ServeHTTP рендерит страницу. Ответ всегда 200, кроме ошибки шаблона.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, "renderer not initialized")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	if !h.configured {
		if err := h.renderer.RenderSetup(w, web.BuildSetup(h.options.Locale)); err != nil {
			utils.Error("failed to render setup page", utils.Err(err))
			writeError(w, "failed to render page")
		}
		return
	}

	doc := h.loadStatus(r)

	opts := h.options
	opts.Now = h.now()
	if err := h.renderer.RenderDashboard(w, web.BuildDashboard(doc, opts)); err != nil {
		utils.Error("failed to render dashboard", utils.Err(err))
		writeError(w, "failed to render page")
	}
}

// loadStatus возвращает документ статуса; без сервиса страница
// рендерится с прочерками и заполнится первым опросом
func (h *DashboardHandler) loadStatus(r *http.Request) *models.StatusDocument {
	if h.statusService == nil {
		return models.EmptyStatus()
	}

	doc, err := h.statusService.GetStatus(r.Context())
	if err != nil {
		utils.Warn("dashboard rendered without data", utils.Err(err))
		return models.EmptyStatus()
	}
	return doc
}
