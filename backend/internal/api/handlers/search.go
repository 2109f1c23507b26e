package handlers

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"jobrelay/backend/internal/api/middleware"
	"jobrelay/backend/internal/proxy"
	"jobrelay/backend/internal/services"
)

// ErrEmptyResult провайдер не вернул ни результата, ни ошибки
var ErrEmptyResult = errors.New("search provider returned no result")

// SearchHandler GET /api/search
type SearchHandler struct {
	searcher services.JobSearcher
	logger   *zap.Logger
}

// NewSearchHandler создает хендлер поиска
func NewSearchHandler(searcher services.JobSearcher, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// Search передает параметры запроса провайдеру и отдает его ответ без изменений
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) error {
	params := r.URL.Query()

	h.logger.Debug("Delegating job search",
		zap.String("query", params.Encode()),
		zap.String("subject", middleware.GetSubjectFromContext(r.Context())),
		zap.String("request_id", chimiddleware.GetReqID(r.Context())))

	result, err := h.searcher.SearchJobs(r.Context(), params)
	if err != nil {
		return err
	}
	if result == nil {
		return ErrEmptyResult
	}

	// Заголовки уже отправлены, ответить 500 нельзя
	if err := proxy.WriteResult(w, result); err != nil {
		h.logger.Warn("Failed to write search result", zap.Error(err))
	}
	return nil
}
