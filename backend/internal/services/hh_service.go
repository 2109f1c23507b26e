package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"jobrelay/backend/internal/config"
	"jobrelay/backend/internal/models"
	"jobrelay/backend/internal/proxy"
)

// HHUserAgent HH.ru требует HH-User-Agent с контактом приложения
const HHUserAgent = "JobRelay/1.0 (jobrelay@localhost)"

// HHService поиск вакансий через API HH.ru
type HHService struct {
	config *config.HHConfig
	client *proxy.Client
	logger *zap.Logger
}

// NewHHService создает сервис HH.ru. Если заданы ClientID и ClientSecret,
// запросы подписываются токеном приложения (client_credentials).
func NewHHService(cfg *config.HHConfig, timeout time.Duration, logger *zap.Logger) (*HHService, error) {
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid HH.ru API URL: %w", err)
	}

	httpClient := &http.Client{Timeout: timeout}

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		ccConfig := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		}

		// Токен кэшируется и обновляется внутри oauth2.Transport
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: 30 * time.Second})
		httpClient = ccConfig.Client(ctx)
		httpClient.Timeout = timeout

		logger.Info("HH.ru application credentials configured",
			zap.String("token_url", cfg.TokenURL))
	}

	return &HHService{
		config: cfg,
		client: proxy.NewClient(httpClient),
		logger: logger,
	}, nil
}

// SearchJobs поиск вакансий. keywords переводится в параметр text,
// остальные параметры передаются в /vacancies без изменений.
func (s *HHService) SearchJobs(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	apiURL := strings.TrimRight(s.config.APIBaseURL, "/") + "/vacancies"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := make(url.Values, len(params))
	for key, values := range params {
		if key == "keywords" {
			continue
		}
		q[key] = values
	}
	if keywords := params.Get("keywords"); keywords != "" && q.Get("text") == "" {
		q.Set("text", keywords)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", HHUserAgent)
	req.Header.Set("HH-User-Agent", HHUserAgent)
	req.Header.Set("Accept", "application/json")

	result, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search vacancies: %w", err)
	}

	if result.StatusCode != http.StatusOK {
		s.logger.Warn("HH.ru API returned non-OK status",
			zap.Int("status", result.StatusCode),
			zap.String("query", req.URL.RawQuery))
	}

	return result, nil
}
