package handlers

import (
	"net/http"
	"time"

	"jobrelay/backend/pkg/utils"
)

// ExampleQuery пример запроса поиска для корневого маршрута
const ExampleQuery = "/api/search?keywords=react&location=remote"

// InfoHandler статические маршруты / и /health
type InfoHandler struct {
	now func() time.Time
}

// NewInfoHandler создает хендлер, now по умолчанию time.Now
func NewInfoHandler(now func() time.Time) *InfoHandler {
	if now == nil {
		now = time.Now
	}
	return &InfoHandler{now: now}
}

// Index GET /
func (h *InfoHandler) Index(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.InfoResponse{
		Message: "✅ Job search API is running",
		Example: ExampleQuery,
	})
}

// Health GET /health
func (h *InfoHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteHealthCheck(w, h.now())
}
