package models

// Действия торгового движка
const (
	ActionBuyOpen  = "BUY_OPEN"
	ActionSellOpen = "SELL_OPEN"
	ActionClose    = "CLOSE"
	ActionHold     = "HOLD"
)

// Уровни уверенности движка
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// Decision - строка таблицы ai_decisions
//
// Action и Confidence не проверяются на принадлежность перечислению:
// неизвестное значение передается как есть и отображается без перевода.
type Decision struct {
	DecisionTime *string `json:"decision_time"`
	Action       *string `json:"action"`
	Coin         *string `json:"coin"`
	Reason       *string `json:"reason"`
	Confidence   *string `json:"confidence"`
}

// DecisionHistory - обертка истории решений {decisions: [...]}
//
// Decisions никогда не nil: пустая история сериализуется как [].
type DecisionHistory struct {
	Decisions []Decision `json:"decisions"`
}

// NewDecisionHistory создает историю; nil превращается в пустой список
func NewDecisionHistory(decisions []Decision) DecisionHistory {
	if decisions == nil {
		decisions = []Decision{}
	}
	return DecisionHistory{Decisions: decisions}
}

// Chronological возвращает копию истории от старых к новым.
//
// Хранилище отдает строки от новых к старым.
func (h DecisionHistory) Chronological() []Decision {
	out := make([]Decision, len(h.Decisions))
	for i, d := range h.Decisions {
		out[len(h.Decisions)-1-i] = d
	}
	return out
}
