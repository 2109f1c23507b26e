package utils

import (
	"encoding/json"
	"net/http"
	"time"
)

// DefaultErrorMessage сообщение для ошибок без текста
const DefaultErrorMessage = "Internal error"

// JSONResponse стандартный JSON ответ
type JSONResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// InfoResponse ответ корневого маршрута
type InfoResponse struct {
	Message string `json:"message"`
	Example string `json:"ejemplo"`
}

// HealthCheckResponse ответ для health check
type HealthCheckResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// WriteJSON записывает JSON ответ
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data != nil {
		// & в ссылках отдается как есть, без \u0026
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.Encode(data)
	}
}

// WriteError ответ с ошибкой
func WriteError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = DefaultErrorMessage
	}

	response := JSONResponse{
		Success: false,
		Error:   message,
	}
	WriteJSON(w, status, response)
}

// WriteNotFound 404 ошибка
func WriteNotFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, "Route not found")
}

// WriteUnauthorized 401 ошибка
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteInternalError 500 ошибка, текст ошибки передается клиенту как есть
func WriteInternalError(w http.ResponseWriter, err error) {
	message := ""
	if err != nil {
		message = err.Error()
	}
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteHealthCheck записывает health check ответ
func WriteHealthCheck(w http.ResponseWriter, now time.Time) {
	response := HealthCheckResponse{
		Status: "ok",
		Time:   now.UTC().Format(time.RFC3339Nano),
	}
	WriteJSON(w, http.StatusOK, response)
}
