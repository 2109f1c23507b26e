package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// CoreSignalSearcher поиск по базе вакансий CoreSignal (job_base/search/filter)
type CoreSignalSearcher struct {
	endpoint string
	apiKey   string
	client   *proxy.Client
}

// NewCoreSignalSearcher создает провайдера CoreSignal
func NewCoreSignalSearcher(endpoint, apiKey string, client *proxy.Client) (*CoreSignalSearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("CoreSignal API key is required")
	}

	return &CoreSignalSearcher{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
	}, nil
}

// SearchJobs отправляет фильтр POST запросом. keywords становится полем title,
// остальные параметры передаются полями фильтра (первое значение).
// Ответ API (список ID вакансий) возвращается без изменений.
func (s *CoreSignalSearcher) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	filter := make(map[string]string, len(params))
	for key := range params {
		if key == "keywords" {
			continue
		}
		filter[key] = params.Get(key)
	}
	if keywords := params.Get("keywords"); keywords != "" && filter["title"] == "" {
		filter["title"] = keywords
	}

	payload, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal CoreSignal filter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create CoreSignal request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return s.client.Do(req)
}
