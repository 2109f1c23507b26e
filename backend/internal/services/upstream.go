package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// UpstreamSearcher пересылает запрос во внешний сервис поиска
// (например, сайдкар linkedin-jobs-api) и возвращает его ответ без изменений
type UpstreamSearcher struct {
	target *url.URL
	client *proxy.Client
}

// NewUpstreamSearcher создает провайдера для target
func NewUpstreamSearcher(target string, client *proxy.Client) (*UpstreamSearcher, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}

	return &UpstreamSearcher{
		target: parsed,
		client: client,
	}, nil
}

// SearchJobs передает параметры запроса в upstream
func (s *UpstreamSearcher) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	u := *s.target
	q := u.Query()
	for key, values := range params {
		q[key] = values
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return s.client.Do(req)
}
