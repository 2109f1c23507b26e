package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"jobrelay/backend/internal/config"
	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// JobSearcher внешний поиск вакансий. Параметры запроса передаются как есть,
// результат возвращается релею, ответ клиенту пишет сам релей.
type JobSearcher interface {
	SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error)
}

// SearchFunc адаптер функции к JobSearcher
type SearchFunc func(ctx context.Context, params url.Values) (*models.SearchResult, error)

// SearchJobs вызывает f
func (f SearchFunc) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	return f(ctx, params)
}

// NewJobSearcher создает провайдера по конфигурации
func NewJobSearcher(cfg config.SearchConfig, logger *zap.Logger) (JobSearcher, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderUpstream:
		return NewUpstreamSearcher(cfg.UpstreamURL, proxy.NewClient(httpClient))
	case config.ProviderJooble:
		return NewJoobleSearcher(cfg.JoobleAPIURL, cfg.JoobleAPIKey, proxy.NewClient(httpClient))
	case config.ProviderCareerjet:
		return NewCareerjetSearcher(cfg.CareerjetAPIURL, cfg.CareerjetDefaultLocation, proxy.NewClient(httpClient))
	case config.ProviderRapidAPI:
		return NewRapidAPISearcher(cfg.RapidAPIURL, cfg.RapidAPIKey, cfg.RapidAPIQueryParam, proxy.NewClient(httpClient))
	case config.ProviderCoreSignal:
		return NewCoreSignalSearcher(cfg.CoreSignalAPIURL, cfg.CoreSignalAPIKey, proxy.NewClient(httpClient))
	case config.ProviderHH:
		return NewHHService(&cfg.HH, cfg.Timeout, logger)
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.Provider)
	}
}
