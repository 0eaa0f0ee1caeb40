// Package handlers общие helpers для HTTP-ответов
package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse стандартный формат ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondBadRequest пишет ответ 400 с сообщением об ошибке
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// RespondNotFound пишет ответ 404 с сообщением об ошибке
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: message})
}

// RespondForbidden пишет ответ 403 с сообщением об ошибке
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusForbidden, ErrorResponse{Error: message})
}

// RespondConflict пишет ответ 409 с сообщением об ошибке
func RespondConflict(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{Error: message})
}

// RespondInternalError пишет ответ 500
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
