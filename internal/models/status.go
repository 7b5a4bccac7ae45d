package models

// StatusDocument - агрегированный ответ /api/status
//
// Каждое поле заполняется независимым запросом. Ошибка или отсутствие
// строки превращает поле в null (история - в {decisions: []}),
// остальные поля при этом не затрагиваются.
type StatusDocument struct {
	Stats          *TradingStats   `json:"stats"`
	LatestDecision *Decision       `json:"latest_decision"`
	Decisions      DecisionHistory `json:"decisions"`
	Runtime        *RuntimeInfo    `json:"runtime"`
	Account        *AccountInfo    `json:"account"`
}

// EmptyStatus возвращает документ, в котором нет ни одной строки
func EmptyStatus() *StatusDocument {
	return &StatusDocument{Decisions: NewDecisionHistory(nil)}
}
