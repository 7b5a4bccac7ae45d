package models

// AccountInfo - снимок баланса аккаунта (таблица account_info)
type AccountInfo struct {
	TotalBalance     *float64 `json:"total_balance"`
	AvailableBalance *float64 `json:"available_balance"`
	UnrealizedPnl    *float64 `json:"unrealized_pnl"`
	LastUpdate       *string  `json:"last_update"`
}

// AccountSummary - ответ /api/account, когда строки аккаунта нет.
//
// Ключи отличаются от AccountInfo: клиенты старого API ожидают именно их.
type AccountSummary struct {
	Total         float64 `json:"total"`
	Available     float64 `json:"available"`
	UnrealizedPnl float64 `json:"unrealized_pnl"`
}
