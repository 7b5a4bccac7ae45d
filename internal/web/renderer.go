package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer рендерит HTML страницы из встроенных шаблонов
type Renderer struct {
	dashboard *template.Template
	setup     *template.Template
}

// NewRenderer разбирает встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	dashboard, err := template.ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	setup, err := template.ParseFS(templateFS, "templates/setup.html")
	if err != nil {
		return nil, fmt.Errorf("parse setup template: %w", err)
	}

	return &Renderer{dashboard: dashboard, setup: setup}, nil
}

// MustNewRenderer - NewRenderer, паникующий при ошибке.
// Шаблоны встроены в бинарник, ошибка возможна только при сборке с битым шаблоном.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// RenderDashboard рендерит страницу мониторинга.
//
// Страница собирается в буфер целиком: при ошибке шаблона в w ничего не пишется.
func (r *Renderer) RenderDashboard(w io.Writer, view DashboardView) error {
	return render(w, r.dashboard, view)
}

// RenderSetup рендерит страницу настройки хранилища
func (r *Renderer) RenderSetup(w io.Writer, view SetupView) error {
	return render(w, r.setup, view)
}

func render(w io.Writer, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
