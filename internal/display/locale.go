package display

import "tradedash/internal/models"

// ActionLabel - подпись и CSS класс действия
type ActionLabel struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// Locale - тексты интерфейса на одном языке.
//
// Таблица сериализуется в JSON и встраивается в страницу, поэтому
// серверный рендер и скрипт опроса используют одни и те же подписи.
type Locale struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`

	Account          string `json:"account"`
	AccountTotal     string `json:"account_total"`
	AccountAvailable string `json:"account_available"`
	UnrealizedPnl    string `json:"unrealized_pnl"`

	Runtime       string `json:"runtime"`
	RuntimeStatus string `json:"runtime_status"`
	Invocations   string `json:"invocations"`
	Uptime        string `json:"uptime"`
	Running       string `json:"running"`
	Unknown       string `json:"unknown"`

	Stats       string `json:"stats"`
	TotalTrades string `json:"total_trades"`
	WinRate     string `json:"win_rate"`
	TotalPnl    string `json:"total_pnl"`

	LatestDecision string `json:"latest_decision"`
	History        string `json:"history"`
	Confidence     string `json:"confidence"`
	NoDecisions    string `json:"no_decisions"`
	Loading        string `json:"loading"`
	LastUpdated    string `json:"last_updated"`

	// Форматы продолжительности, %d подставляются по порядку
	UptimeDaysHours    string `json:"uptime_days_hours"`
	UptimeHoursMinutes string `json:"uptime_hours_minutes"`
	UptimeMinutes      string `json:"uptime_minutes"`

	// Go layout для отображения времени
	TimeLayout string `json:"-"`

	Actions     map[string]ActionLabel `json:"actions"`
	Confidences map[string]string      `json:"confidences"`

	SetupTitle string   `json:"-"`
	SetupIntro string   `json:"-"`
	SetupSteps []string `json:"-"`
}

// CSS классы
const (
	ClassPositive       = "positive"
	ClassNegative       = "negative"
	ClassNeutral        = "neutral"
	ClassProfitPositive = "profit-positive"
	ClassProfitNegative = "profit-negative"
)

var zhCN = Locale{
	Code:     "zh-CN",
	Title:    "AI交易机器人监控面板",
	Subtitle: "基于DeepSeek AI的BNB/USDT合约自动交易系统",

	Account:          "财务信息",
	AccountTotal:     "账户总额",
	AccountAvailable: "可用余额",
	UnrealizedPnl:    "未实现盈亏",

	Runtime:       "运行状态",
	RuntimeStatus: "运行状态",
	Invocations:   "AI调用次数",
	Uptime:        "运行时长",
	Running:       "运行中",
	Unknown:       "未知",

	Stats:       "交易统计",
	TotalTrades: "总交易次数",
	WinRate:     "胜率",
	TotalPnl:    "总盈亏",

	LatestDecision: "最新AI决策",
	History:        "最近决策历史",
	Confidence:     "信心",
	NoDecisions:    "暂无决策数据",
	Loading:        "加载中...",
	LastUpdated:    "最后更新",

	UptimeDaysHours:    "%d天%d小时",
	UptimeHoursMinutes: "%d小时%d分钟",
	UptimeMinutes:      "%d分钟",

	TimeLayout: "2006/1/2 15:04:05",

	Actions: map[string]ActionLabel{
		models.ActionBuyOpen:  {Text: "📈 开多", Class: ClassPositive},
		models.ActionSellOpen: {Text: "📉 开空", Class: ClassNegative},
		models.ActionClose:    {Text: "🔒 平仓", Class: ClassNeutral},
		models.ActionHold:     {Text: "💤 观望", Class: ClassNeutral},
	},
	Confidences: map[string]string{
		models.ConfidenceHigh:   "高",
		models.ConfidenceMedium: "中",
		models.ConfidenceLow:    "低",
	},

	SetupTitle: "尚未配置数据源",
	SetupIntro: "监控面板需要读取交易机器人写入的数据表。请设置以下任一数据源后重启服务：",
	SetupSteps: []string{
		"Supabase: SUPABASE_URL 和 SUPABASE_ANON_KEY (或 SUPABASE_KEY)",
		"Postgres: DATABASE_URL 或 DB_HOST / DB_PORT / DB_USER / DB_PASSWORD / DB_NAME",
		"SQLite: DB_PATH",
		"本地文件: DATA_DIR (trading_stats.json / ai_decisions.json / current_runtime.json 所在目录)",
	},
}

var en = Locale{
	Code:     "en",
	Title:    "AI Trading Bot Dashboard",
	Subtitle: "Automated BNB/USDT futures trading driven by DeepSeek AI",

	Account:          "Account",
	AccountTotal:     "Total balance",
	AccountAvailable: "Available balance",
	UnrealizedPnl:    "Unrealized PnL",

	Runtime:       "Runtime",
	RuntimeStatus: "Status",
	Invocations:   "AI invocations",
	Uptime:        "Uptime",
	Running:       "Running",
	Unknown:       "Unknown",

	Stats:       "Trading statistics",
	TotalTrades: "Total trades",
	WinRate:     "Win rate",
	TotalPnl:    "Total PnL",

	LatestDecision: "Latest AI decision",
	History:        "Recent decisions",
	Confidence:     "Confidence",
	NoDecisions:    "No decisions yet",
	Loading:        "Loading...",
	LastUpdated:    "Last updated",

	UptimeDaysHours:    "%dd %dh",
	UptimeHoursMinutes: "%dh %dm",
	UptimeMinutes:      "%dm",

	TimeLayout: "1/2/2006, 3:04:05 PM",

	Actions: map[string]ActionLabel{
		models.ActionBuyOpen:  {Text: "📈 Open long", Class: ClassPositive},
		models.ActionSellOpen: {Text: "📉 Open short", Class: ClassNegative},
		models.ActionClose:    {Text: "🔒 Close position", Class: ClassNeutral},
		models.ActionHold:     {Text: "💤 Hold", Class: ClassNeutral},
	},
	Confidences: map[string]string{
		models.ConfidenceHigh:   "High",
		models.ConfidenceMedium: "Medium",
		models.ConfidenceLow:    "Low",
	},

	SetupTitle: "No datastore configured",
	SetupIntro: "The dashboard reads the tables written by the trading bot. Configure one of the following and restart the server:",
	SetupSteps: []string{
		"Supabase: SUPABASE_URL and SUPABASE_ANON_KEY (or SUPABASE_KEY)",
		"Postgres: DATABASE_URL or DB_HOST / DB_PORT / DB_USER / DB_PASSWORD / DB_NAME",
		"SQLite: DB_PATH",
		"Local files: DATA_DIR (directory with trading_stats.json / ai_decisions.json / current_runtime.json)",
	},
}

var locales = map[string]*Locale{
	zhCN.Code: &zhCN,
	en.Code:   &en,
}

// DefaultLocale - язык по умолчанию
const DefaultLocale = "zh-CN"

// LookupLocale возвращает таблицу текстов; неизвестный код дает zh-CN
func LookupLocale(code string) *Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return locales[DefaultLocale]
}
