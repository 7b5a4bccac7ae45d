package handlers

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"tradedash/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse - формат ответа об ошибке для всех API endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON сериализует v целиком до записи заголовков:
// при ошибке сериализации клиент получает 500, а не обрезанный JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		utils.Error("failed to encode response", utils.Err(err))
		writeError(w, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError отвечает {"error": msg} со статусом 500
func writeError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// WriteError - writeError для middleware
func WriteError(w http.ResponseWriter, msg string) {
	writeError(w, msg)
}
