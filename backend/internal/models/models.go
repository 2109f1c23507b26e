package models

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SearchResult ответ провайдера поиска вакансий.
// Тело непрозрачно для релея и отдается клиенту без изменений.
type SearchResult struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Status код ответа, 0 трактуется как 200
func (r *SearchResult) Status() int {
	if r.StatusCode == 0 {
		return http.StatusOK
	}
	return r.StatusCode
}

// SearchAudit запись журнала поисковых запросов
type SearchAudit struct {
	ID         uuid.UUID `json:"id" db:"id"`
	RequestID  string    `json:"request_id" db:"request_id"`
	Provider   string    `json:"provider" db:"provider"`
	Query      string    `json:"query" db:"query"`
	StatusCode int       `json:"status_code" db:"status_code"`
	Error      string    `json:"error,omitempty" db:"error"`
	DurationMs int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Failed запрос завершился ошибкой провайдера
func (a *SearchAudit) Failed() bool {
	return a.Error != ""
}
