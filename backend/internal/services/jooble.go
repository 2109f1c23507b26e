package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// JoobleSearcher поиск через REST API jooble.org
type JoobleSearcher struct {
	endpoint string
	client   *proxy.Client
}

// NewJoobleSearcher создает провайдера Jooble
func NewJoobleSearcher(baseURL, apiKey string, client *proxy.Client) (*JoobleSearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("jooble API key is required")
	}

	return &JoobleSearcher{
		endpoint: strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(apiKey),
		client:   client,
	}, nil
}

// SearchJobs отправляет параметры запроса телом POST запроса.
// Каждый параметр становится полем JSON, берется первое значение.
func (s *JoobleSearcher) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	body := make(map[string]string, len(params))
	for key := range params {
		body[key] = params.Get(key)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jooble request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create jooble request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return s.client.Do(req)
}
