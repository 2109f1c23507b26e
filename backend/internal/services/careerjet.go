package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// CareerjetSearcher поиск через API Careerjet
type CareerjetSearcher struct {
	endpoint        *url.URL
	defaultLocation string
	client          *proxy.Client
}

// NewCareerjetSearcher создает провайдера Careerjet
func NewCareerjetSearcher(endpoint, defaultLocation string, client *proxy.Client) (*CareerjetSearcher, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid careerjet URL: %w", err)
	}

	return &CareerjetSearcher{
		endpoint:        parsed,
		defaultLocation: defaultLocation,
		client:          client,
	}, nil
}

// SearchJobs запрашивает страницу выдачи, по умолчанию первую
func (s *CareerjetSearcher) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	q := make(url.Values, len(params)+2)
	for key, values := range params {
		q[key] = values
	}
	if q.Get("location") == "" && s.defaultLocation != "" {
		q.Set("location", s.defaultLocation)
	}
	if q.Get("page") == "" {
		q.Set("page", "1")
	}

	u := *s.endpoint
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create careerjet request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return s.client.Do(req)
}
