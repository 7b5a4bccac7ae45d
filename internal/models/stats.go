package models

import "tradedash/pkg/utils"

// TradingStats - последняя строка таблицы trading_stats
//
// Таблицу пишет торговый процесс; дашборд только читает ее.
// Все поля nullable: NULL в колонке сериализуется в JSON как null.
// Временные метки хранятся в том виде, в котором их вернуло хранилище.
type TradingStats struct {
	TotalTrades *int64   `json:"total_trades"`
	WinTrades   *int64   `json:"win_trades"`
	TotalPnl    *float64 `json:"total_pnl"`
	StartTime   *string  `json:"start_time"`
	LastUpdate  *string  `json:"last_update"`
}

// WinRate возвращает долю прибыльных сделок в процентах.
//
// ok=false, если total_trades отсутствует или равен нулю.
func (s *TradingStats) WinRate() (rate float64, ok bool) {
	if s == nil || s.TotalTrades == nil || s.WinTrades == nil {
		return 0, false
	}
	return utils.Percent(*s.WinTrades, *s.TotalTrades)
}
