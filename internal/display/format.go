// Package display содержит правила отображения значений на странице.
//
// Те же правила реализованы в скрипте опроса страницы; серверный рендер
// и клиент должны давать одинаковый текст для одинаковых данных.
package display

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"tradedash/internal/models"
	"tradedash/pkg/utils"
)

// Dash - заглушка для отсутствующего значения
const Dash = "-"

// Пороги форматирования сумм
const (
	tinyAmount  = 0.000001
	smallAmount = 0.01
)

// Amount форматирует денежную сумму.
//
// |v| < 1e-6: 8 знаков после запятой; |v| < 0.01: 6 знаков;
// иначе разделители тысяч и ровно 2 знака. nil, NaN и Inf дают "-".
func Amount(v *float64) string {
	if v == nil {
		return Dash
	}
	return FormatAmount(*v)
}

// FormatAmount - Amount для значения без указателя.
//
// Округление совпадает со скриптом страницы: toFixed (6 и 8 знаков)
// округляет точное двоичное значение, toLocaleString (2 знака) -
// кратчайшую десятичную запись; половина в обоих случаях уходит от нуля.
// Отрицательное значение сохраняет знак, даже если округлилось до нуля.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Dash
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}

	abs := math.Abs(v)
	switch {
	case abs < tinyAmount:
		return sign + exactDecimal(abs).StringFixed(8)
	case abs < smallAmount:
		return sign + exactDecimal(abs).StringFixed(6)
	default:
		return sign + groupThousands(decimal.NewFromFloat(abs).StringFixed(2))
	}
}

// exactDecimal возвращает точное значение float64.
// Дробная часть любого float64 не длиннее 1074 знаков.
func exactDecimal(v float64) decimal.Decimal {
	return decimal.RequireFromString(new(big.Float).SetFloat64(v).Text('f', 1074))
}

// groupThousands расставляет разделители тысяч в целой части "1234.50"
func groupThousands(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return fixed
	}
	return humanize.BigComma(n) + "." + frac
}

// ProfitClass возвращает CSS класс для прибыли/убытка
func ProfitClass(v *float64) string {
	switch {
	case v == nil:
		return ""
	case *v > 0:
		return ClassProfitPositive
	case *v < 0:
		return ClassProfitNegative
	default:
		return ""
	}
}

// Integer форматирует целое значение или "-"
func Integer(v *int64) string {
	if v == nil {
		return Dash
	}
	return strconv.FormatInt(*v, 10)
}

// WinRate возвращает процент прибыльных сделок "xx.xx%" или "-"
func WinRate(stats *models.TradingStats) string {
	rate, ok := stats.WinRate()
	if !ok {
		return Dash
	}
	return fmt.Sprintf("%.2f%%", rate)
}

// Action возвращает подпись действия. Неизвестное действие выводится
// как есть с нейтральным классом.
func (l *Locale) Action(action *string) ActionLabel {
	if action == nil {
		return ActionLabel{Text: Dash, Class: ClassNeutral}
	}
	if label, ok := l.Actions[*action]; ok {
		return label
	}
	return ActionLabel{Text: *action, Class: ClassNeutral}
}

// ConfidenceText переводит уровень уверенности; неизвестный выводится как есть
func (l *Locale) ConfidenceText(confidence *string) string {
	if confidence == nil {
		return Dash
	}
	if text, ok := l.Confidences[*confidence]; ok {
		return text
	}
	return *confidence
}

// UptimeText возвращает время работы с момента start.
//
// >= 1 дня: дни и часы; >= 1 часа: часы и минуты; иначе минуты.
func (l *Locale) UptimeText(start *string, now time.Time, loc *time.Location) string {
	if start == nil {
		return Dash
	}

	started, err := utils.ParseTimestamp(*start, loc)
	if err != nil {
		return Dash
	}

	days, hours, minutes := utils.SplitDuration(now.Sub(started))
	switch {
	case days > 0:
		return fmt.Sprintf(l.UptimeDaysHours, days, hours)
	case hours > 0:
		return fmt.Sprintf(l.UptimeHoursMinutes, hours, minutes)
	default:
		return fmt.Sprintf(l.UptimeMinutes, minutes)
	}
}

// TimeText форматирует временную метку в часовом поясе loc.
//
// Нераспознанная строка выводится как есть.
func (l *Locale) TimeText(raw *string, loc *time.Location) string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Dash
	}

	ts, err := utils.ParseTimestamp(*raw, loc)
	if err != nil {
		return *raw
	}
	if loc != nil {
		ts = ts.In(loc)
	}
	return ts.Format(l.TimeLayout)
}

// RuntimeState возвращает текст и класс статуса процесса.
//
// Наличие строки runtime_info считается признаком работы.
func (l *Locale) RuntimeState(runtime *models.RuntimeInfo) (text, class string) {
	if runtime == nil {
		return l.Unknown, ""
	}
	return l.Running, ClassPositive
}
