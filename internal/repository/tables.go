package repository

import (
	"tradedash/internal/config"
	"tradedash/internal/models"
)

// Колонки, которые пишет торговый процесс
var (
	statsColumns    = []string{"total_trades", "win_trades", "total_pnl", "start_time", "last_update"}
	decisionColumns = []string{"decision_time", "action", "coin", "reason", "confidence"}
	runtimeColumns  = []string{"invocation_count", "program_start_time", "last_update"}
	accountColumns  = []string{"total_balance", "available_balance", "unrealized_pnl", "last_update"}
)

// Колонки времени: отдаются в том виде, в котором записаны
var (
	statsTimeColumns    = []string{"start_time", "last_update"}
	decisionTimeColumns = []string{"decision_time"}
	runtimeTimeColumns  = []string{"program_start_time", "last_update"}
	accountTimeColumns  = []string{"last_update"}
)

// Tables - описания четырех таблиц, которые читает дашборд
type Tables struct {
	Stats     Table[models.TradingStats]
	Decisions Table[models.Decision]
	Runtime   Table[models.RuntimeInfo]
	Account   Table[models.AccountInfo]
}

// NewTables строит описания таблиц по конфигурации
func NewTables(schema string, names config.TableNames) Tables {
	return Tables{
		Stats: Table[models.TradingStats]{
			Schema:      schema,
			Name:        names.Stats,
			OrderColumn: "last_update",
			Columns:     statsColumns,
			TimeColumns: statsTimeColumns,
			Targets: func(s *models.TradingStats) []any {
				return []any{&s.TotalTrades, &s.WinTrades, &s.TotalPnl, &s.StartTime, &s.LastUpdate}
			},
		},
		Decisions: Table[models.Decision]{
			Schema:      schema,
			Name:        names.Decisions,
			OrderColumn: "decision_time",
			Columns:     decisionColumns,
			TimeColumns: decisionTimeColumns,
			Targets: func(d *models.Decision) []any {
				return []any{&d.DecisionTime, &d.Action, &d.Coin, &d.Reason, &d.Confidence}
			},
		},
		Runtime: Table[models.RuntimeInfo]{
			Schema:      schema,
			Name:        names.Runtime,
			OrderColumn: "last_update",
			Columns:     runtimeColumns,
			TimeColumns: runtimeTimeColumns,
			Targets: func(r *models.RuntimeInfo) []any {
				return []any{&r.InvocationCount, &r.ProgramStartTime, &r.LastUpdate}
			},
		},
		Account: Table[models.AccountInfo]{
			Schema:      schema,
			Name:        names.Account,
			OrderColumn: "last_update",
			Columns:     accountColumns,
			TimeColumns: accountTimeColumns,
			Targets: func(a *models.AccountInfo) []any {
				return []any{&a.TotalBalance, &a.AvailableBalance, &a.UnrealizedPnl, &a.LastUpdate}
			},
		},
	}
}

// DefaultTables - таблицы с именами по умолчанию в схеме по умолчанию
func DefaultTables() Tables {
	return NewTables("", tableNamesOrDefault(config.TableNames{}))
}

// tableNamesOrDefault подставляет имена по умолчанию вместо пустых
func tableNamesOrDefault(names config.TableNames) config.TableNames {
	if names.Stats == "" {
		names.Stats = "trading_stats"
	}
	if names.Decisions == "" {
		names.Decisions = "ai_decisions"
	}
	if names.Runtime == "" {
		names.Runtime = "runtime_info"
	}
	if names.Account == "" {
		names.Account = "account_info"
	}
	return names
}
