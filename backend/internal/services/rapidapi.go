package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// RapidAPISearcher поиск через API маркетплейса RapidAPI (JSearch, LinkedIn Job Search)
type RapidAPISearcher struct {
	endpoint   *url.URL
	apiKey     string
	queryParam string
	client     *proxy.Client
}

// NewRapidAPISearcher создает провайдера. queryParam имя параметра, в который
// переносится keywords: query для JSearch, title_filter для LinkedIn Job Search.
func NewRapidAPISearcher(endpoint, apiKey, queryParam string, client *proxy.Client) (*RapidAPISearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RapidAPI key is required")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid RapidAPI URL: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("RapidAPI URL must include a host")
	}

	if queryParam == "" {
		queryParam = "query"
	}

	return &RapidAPISearcher{
		endpoint:   parsed,
		apiKey:     apiKey,
		queryParam: queryParam,
		client:     client,
	}, nil
}

// SearchJobs выполняет GET запрос. x-rapidapi-host совпадает с хостом endpoint
func (s *RapidAPISearcher) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	q := make(url.Values, len(params))
	for key, values := range params {
		q[key] = values
	}
	if s.queryParam != "keywords" {
		if keywords := q.Get("keywords"); keywords != "" && q.Get(s.queryParam) == "" {
			q.Set(s.queryParam, keywords)
		}
		q.Del("keywords")
	}

	u := *s.endpoint
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RapidAPI request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", s.apiKey)
	req.Header.Set("x-rapidapi-host", s.endpoint.Hostname())
	req.Header.Set("Accept", "application/json")

	return s.client.Do(req)
}
