package services

import (
	"context"
	"errors"
	"net/url"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobrelay/backend/internal/models"
)

const auditWriteTimeout = 3 * time.Second

// AuditSink хранилище журнала поисковых запросов
type AuditSink interface {
	SaveSearchAudit(ctx context.Context, audit *models.SearchAudit) error
}

// NopSink журнал отключен
type NopSink struct{}

// SaveSearchAudit ничего не делает
func (NopSink) SaveSearchAudit(context.Context, *models.SearchAudit) error { return nil }

// MultiSink пишет запись во все хранилища
type MultiSink []AuditSink

// SaveSearchAudit возвращает объединенную ошибку всех хранилищ
func (m MultiSink) SaveSearchAudit(ctx context.Context, audit *models.SearchAudit) error {
	var errs []error
	for _, sink := range m {
		if err := sink.SaveSearchAudit(ctx, audit); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AuditedSearcher записывает каждый вызов провайдера в журнал.
// Ошибки журнала только логируются и не влияют на ответ.
type AuditedSearcher struct {
	provider string
	next     JobSearcher
	sink     AuditSink
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuditedSearcher оборачивает next
func NewAuditedSearcher(provider string, next JobSearcher, sink AuditSink, logger *zap.Logger) *AuditedSearcher {
	return &AuditedSearcher{
		provider: provider,
		next:     next,
		sink:     sink,
		logger:   logger,
		now:      time.Now,
	}
}

// SearchJobs вызывает провайдера и пишет запись журнала
func (s *AuditedSearcher) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	start := s.now()
	result, err := s.next.SearchJobs(ctx, params)

	audit := &models.SearchAudit{
		ID:         uuid.New(),
		RequestID:  chimiddleware.GetReqID(ctx),
		Provider:   s.provider,
		Query:      params.Encode(),
		DurationMs: s.now().Sub(start).Milliseconds(),
		CreatedAt:  start.UTC(),
	}
	if err != nil {
		audit.Error = err.Error()
	} else if result != nil {
		audit.StatusCode = result.Status()
	}

	// Запись журнала не должна прерываться при отключении клиента
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if saveErr := s.sink.SaveSearchAudit(auditCtx, audit); saveErr != nil {
		s.logger.Error("Failed to save search audit",
			zap.String("provider", s.provider),
			zap.String("request_id", audit.RequestID),
			zap.Error(saveErr))
	}

	return result, err
}
