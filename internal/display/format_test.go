package display

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedash/internal/models"
)

func f(v float64) *float64 { return &v }
func i(v int64) *int64     { return &v }
func s(v string) *string   { return &v }

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.0000005, "0.00000050"},
		{-0.0000005, "-0.00000050"},
		{0, "0.00000000"},
		{0.005, "0.005000"},
		{-0.0099, "-0.009900"},
		{0.01, "0.01"},
		{1234.5, "1,234.50"},
		{-1234.5, "-1,234.50"},
		{1234567.891, "1,234,567.89"},
		{42, "42.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "FormatAmount(%v)", tt.in)
	}
}

// Ожидаемые строки - вывод toFixed / toLocaleString('en-US') в браузере
func TestFormatAmount_RoundingMatchesScript(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		// toFixed: точное двоичное значение 0.0012345 чуть меньше половины
		{0.0012345, "0.001234"},
		{-0.0012345, "-0.001234"},
		// точная половина уходит от нуля
		{0.0078125, "0.007813"},
		{-0.0078125, "-0.007813"},
		{0.000000125, "0.00000012"},
		{0.0099999995, "0.010000"},
		// отрицательное значение, округленное до нуля, сохраняет знак
		{-1e-10, "-0.00000000"},
		// toLocaleString: округляется кратчайшая десятичная запись
		{1.005, "1.01"},
		{2.675, "2.68"},
		{1234.565, "1,234.57"},
		{-1234.565, "-1,234.57"},
		{1e21, "1,000,000,000,000,000,000,000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "FormatAmount(%v)", tt.in)
	}
}

func TestFormatAmount_NonFinite(t *testing.T) {
	assert.Equal(t, Dash, FormatAmount(math.NaN()))
	assert.Equal(t, Dash, FormatAmount(math.Inf(1)))
	assert.Equal(t, Dash, Amount(nil))
	assert.Equal(t, "1,234.50", Amount(f(1234.5)))
}

func TestProfitClass(t *testing.T) {
	assert.Equal(t, ClassProfitPositive, ProfitClass(f(0.5)))
	assert.Equal(t, ClassProfitNegative, ProfitClass(f(-0.5)))
	assert.Equal(t, "", ProfitClass(f(0)))
	assert.Equal(t, "", ProfitClass(nil))
}

func TestInteger(t *testing.T) {
	assert.Equal(t, Dash, Integer(nil))
	assert.Equal(t, "0", Integer(i(0)))
	assert.Equal(t, "1234", Integer(i(1234)))
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, Dash, WinRate(nil))
	assert.Equal(t, Dash, WinRate(&models.TradingStats{TotalTrades: i(0), WinTrades: i(0)}))
	assert.Equal(t, "60.00%", WinRate(&models.TradingStats{TotalTrades: i(10), WinTrades: i(6)}))
	assert.Equal(t, "33.33%", WinRate(&models.TradingStats{TotalTrades: i(3), WinTrades: i(1)}))
}

func TestLocale_Action(t *testing.T) {
	zh := LookupLocale("zh-CN")

	assert.Equal(t, ActionLabel{Text: "📈 开多", Class: ClassPositive}, zh.Action(s("BUY_OPEN")))
	assert.Equal(t, ActionLabel{Text: "📉 开空", Class: ClassNegative}, zh.Action(s("SELL_OPEN")))
	assert.Equal(t, "🔒 平仓", zh.Action(s("CLOSE")).Text)
	assert.Equal(t, "💤 观望", zh.Action(s("HOLD")).Text)

	// неизвестное действие выводится как есть
	assert.Equal(t, ActionLabel{Text: "FOO", Class: ClassNeutral}, zh.Action(s("FOO")))
	assert.Equal(t, ActionLabel{Text: Dash, Class: ClassNeutral}, zh.Action(nil))

	assert.Equal(t, "📈 Open long", LookupLocale("en").Action(s("BUY_OPEN")).Text)
}

func TestLocale_ConfidenceText(t *testing.T) {
	zh := LookupLocale("zh-CN")

	assert.Equal(t, "高", zh.ConfidenceText(s("HIGH")))
	assert.Equal(t, "中", zh.ConfidenceText(s("MEDIUM")))
	assert.Equal(t, "低", zh.ConfidenceText(s("LOW")))
	assert.Equal(t, "VERY_HIGH", zh.ConfidenceText(s("VERY_HIGH")))
	assert.Equal(t, Dash, zh.ConfidenceText(nil))
}

func TestLocale_UptimeText(t *testing.T) {
	zh := LookupLocale("zh-CN")
	now := time.Date(2024, 5, 3, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *string
		want  string
	}{
		{"days", s("2024-05-01T10:00:00Z"), "2天2小时"},
		{"hours", s("2024-05-03T09:15:00+00:00"), "3小时15分钟"},
		{"minutes", s("2024-05-03T12:05:30Z"), "24分钟"},
		{"no zone uses location", s("2024-05-03T12:00:00"), "30分钟"},
		{"future start", s("2024-05-04T00:00:00Z"), "0分钟"},
		{"missing", nil, Dash},
		{"garbage", s("yesterday"), Dash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zh.UptimeText(tt.start, now, time.UTC))
		})
	}

	assert.Equal(t, "2d 2h", LookupLocale("en").UptimeText(s("2024-05-01T10:00:00Z"), now, time.UTC))
}

func TestLocale_TimeText(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	zh := LookupLocale("zh-CN")
	assert.Equal(t, "2024/5/1 18:00:05", zh.TimeText(s("2024-05-01T10:00:05+00:00"), shanghai))
	assert.Equal(t, "5/1/2024, 10:00:05 AM", LookupLocale("en").TimeText(s("2024-05-01T10:00:05Z"), time.UTC))

	assert.Equal(t, "not a time", zh.TimeText(s("not a time"), time.UTC))
	assert.Equal(t, Dash, zh.TimeText(nil, time.UTC))
	assert.Equal(t, Dash, zh.TimeText(s("  "), time.UTC))
}

func TestLocale_RuntimeState(t *testing.T) {
	zh := LookupLocale("zh-CN")

	text, class := zh.RuntimeState(&models.RuntimeInfo{})
	assert.Equal(t, "运行中", text)
	assert.Equal(t, ClassPositive, class)

	text, class = zh.RuntimeState(nil)
	assert.Equal(t, "未知", text)
	assert.Empty(t, class)
}

func TestLookupLocale_Fallback(t *testing.T) {
	assert.Equal(t, "zh-CN", LookupLocale("").Code)
	assert.Equal(t, "zh-CN", LookupLocale("de").Code)
	assert.Equal(t, "en", LookupLocale("en").Code)
}

func TestLocales_Complete(t *testing.T) {
	for code, l := range locales {
		t.Run(code, func(t *testing.T) {
			for _, action := range []string{models.ActionBuyOpen, models.ActionSellOpen, models.ActionClose, models.ActionHold} {
				assert.Contains(t, l.Actions, action)
			}
			for _, c := range []string{models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow} {
				assert.Contains(t, l.Confidences, c)
			}
			assert.NotEmpty(t, l.TimeLayout)
			assert.NotEmpty(t, l.SetupSteps)
		})
	}
}
