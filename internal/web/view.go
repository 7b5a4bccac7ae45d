package web

import (
	"time"

	"tradedash/internal/display"
	"tradedash/internal/models"
)

// Options - параметры построения страницы
type Options struct {
	Locale       *display.Locale
	Title        string
	Subtitle     string
	PollInterval time.Duration
	Location     *time.Location
	Now          time.Time
}

// DashboardView - данные шаблона страницы мониторинга
type DashboardView struct {
	Lang           string
	Title          string
	Subtitle       string
	Labels         *display.Locale
	PollIntervalMs int64
	StatusURL      string

	Account     AccountView
	Runtime     RuntimeView
	Stats       StatsView
	Latest      *DecisionView
	History     []DecisionView
	LastUpdated string
}

// AccountView - блок баланса
type AccountView struct {
	Total           string
	Available       string
	Unrealized      string
	UnrealizedClass string
}

// RuntimeView - блок статуса процесса
type RuntimeView struct {
	Status      string
	StatusClass string
	Invocations string
	Uptime      string
}

// StatsView - блок торговой статистики
type StatsView struct {
	TotalTrades   string
	WinRate       string
	TotalPnl      string
	TotalPnlClass string
}

// DecisionView - одно решение в отображаемом виде
type DecisionView struct {
	Time        string
	ActionText  string
	ActionClass string
	Coin        string
	Reason      string
	Confidence  string
}

// SetupView - страница с инструкцией по настройке хранилища
type SetupView struct {
	Lang  string
	Title string
	Intro string
	Steps []string
}

// BuildDashboard строит данные страницы из документа статуса.
//
// Отсутствующие секции дают "-" и нейтральные классы; история
// выводится от старых к новым.
func BuildDashboard(doc *models.StatusDocument, opts Options) DashboardView {
	opts = withDefaults(opts)
	l := opts.Locale
	if doc == nil {
		doc = models.EmptyStatus()
	}

	view := DashboardView{
		Lang:           l.Code,
		Title:          firstNonEmpty(opts.Title, l.Title),
		Subtitle:       firstNonEmpty(opts.Subtitle, l.Subtitle),
		Labels:         l,
		PollIntervalMs: opts.PollInterval.Milliseconds(),
		StatusURL:      "/api/status",
		LastUpdated:    opts.Now.In(opts.Location).Format(l.TimeLayout),
	}

	view.Account = AccountView{Total: display.Dash, Available: display.Dash, Unrealized: display.Dash}
	if a := doc.Account; a != nil {
		view.Account = AccountView{
			Total:           display.Amount(a.TotalBalance),
			Available:       display.Amount(a.AvailableBalance),
			Unrealized:      display.Amount(a.UnrealizedPnl),
			UnrealizedClass: display.ProfitClass(a.UnrealizedPnl),
		}
	}

	status, statusClass := l.RuntimeState(doc.Runtime)
	view.Runtime = RuntimeView{Status: status, StatusClass: statusClass, Invocations: display.Dash, Uptime: display.Dash}
	if rt := doc.Runtime; rt != nil {
		view.Runtime.Invocations = display.Integer(rt.InvocationCount)
		view.Runtime.Uptime = l.UptimeText(rt.ProgramStartTime, opts.Now, opts.Location)
	}

	view.Stats = StatsView{TotalTrades: display.Dash, WinRate: display.Dash, TotalPnl: display.Dash}
	if st := doc.Stats; st != nil {
		view.Stats = StatsView{
			TotalTrades:   display.Integer(st.TotalTrades),
			WinRate:       display.WinRate(st),
			TotalPnl:      display.Amount(st.TotalPnl),
			TotalPnlClass: display.ProfitClass(st.TotalPnl),
		}
	}

	if doc.LatestDecision != nil {
		d := decisionView(*doc.LatestDecision, l, opts.Location)
		view.Latest = &d
	}

	for _, d := range doc.Decisions.Chronological() {
		view.History = append(view.History, decisionView(d, l, opts.Location))
	}

	return view
}

// BuildSetup строит страницу настройки
func BuildSetup(locale *display.Locale) SetupView {
	if locale == nil {
		locale = display.LookupLocale(display.DefaultLocale)
	}
	return SetupView{
		Lang:  locale.Code,
		Title: locale.SetupTitle,
		Intro: locale.SetupIntro,
		Steps: locale.SetupSteps,
	}
}

func decisionView(d models.Decision, l *display.Locale, loc *time.Location) DecisionView {
	action := l.Action(d.Action)
	view := DecisionView{
		Time:        l.TimeText(d.DecisionTime, loc),
		ActionText:  action.Text,
		ActionClass: action.Class,
		Reason:      display.Dash,
		Confidence:  l.ConfidenceText(d.Confidence),
	}
	if d.Coin != nil {
		view.Coin = *d.Coin
	}
	if d.Reason != nil {
		view.Reason = *d.Reason
	}
	return view
}

func withDefaults(opts Options) Options {
	if opts.Locale == nil {
		opts.Locale = display.LookupLocale(display.DefaultLocale)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 30 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
