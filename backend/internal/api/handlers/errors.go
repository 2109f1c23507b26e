package handlers

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"jobrelay/backend/pkg/utils"
)

// HandlerFunc обработчик, возвращающий ошибку вместо записи ответа
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle единая точка преобразования ошибок обработчиков в ответ 500
func Handle(logger *zap.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			logger.Error("❌ Request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.Error(err))

			utils.WriteInternalError(w, err)
		}
	}
}

// NotFound 404 для любых неизвестных маршрутов и методов
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteNotFound(w)
}
