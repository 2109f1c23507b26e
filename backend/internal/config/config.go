package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
)

// Поддерживаемые провайдеры поиска вакансий
const (
	ProviderUpstream   = "upstream"
	ProviderJooble     = "jooble"
	ProviderCareerjet  = "careerjet"
	ProviderHH         = "hh"
	ProviderRapidAPI   = "rapidapi"
	ProviderCoreSignal = "coresignal"
)

// Config конфигурация приложения
type Config struct {
	Environment string `env:"ENVIRONMENT,default=production"`
	Host        string `env:"HOST"`
	Port        int    `env:"PORT,default=3000"`

	Search SearchConfig
	Audit  AuditConfig

	JWTSecret          string `env:"JWT_SECRET"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
}

// SearchConfig настройки провайдера поиска
type SearchConfig struct {
	Provider    string        `env:"SEARCH_PROVIDER,default=upstream"`
	UpstreamURL string        `env:"SEARCH_UPSTREAM_URL,default=http://localhost:3001/api/search"`
	Timeout     time.Duration `env:"SEARCH_TIMEOUT,default=0s"`

	JoobleAPIURL string `env:"JOOBLE_API_URL,default=https://jooble.org/api"`
	JoobleAPIKey string `env:"JOOBLE_API_KEY"`

	CareerjetAPIURL          string `env:"CAREERJET_API_URL,default=https://api.careerjet.com/jobs"`
	CareerjetDefaultLocation string `env:"CAREERJET_DEFAULT_LOCATION"`

	// RapidAPI: JSearch по умолчанию, для linkedin-job-search-api
	// RAPIDAPI_URL=https://linkedin-job-search-api.p.rapidapi.com/active-jb-7d и RAPIDAPI_QUERY_PARAM=title_filter
	RapidAPIURL        string `env:"RAPIDAPI_URL,default=https://jsearch.p.rapidapi.com/search"`
	RapidAPIKey        string `env:"RAPIDAPI_KEY"`
	RapidAPIQueryParam string `env:"RAPIDAPI_QUERY_PARAM,default=query"`

	CoreSignalAPIURL string `env:"CORESIGNAL_API_URL,default=https://api.coresignal.com/cdapi/v2/job_base/search/filter"`
	CoreSignalAPIKey string `env:"CORESIGNAL_API_KEY"`

	HH HHConfig
}

// HHConfig настройки доступа к API HH.ru
type HHConfig struct {
	APIBaseURL   string `env:"HH_API_URL,default=https://api.hh.ru"`
	TokenURL     string `env:"HH_TOKEN_URL,default=https://hh.ru/oauth/token"`
	ClientID     string `env:"HH_CLIENT_ID"`
	ClientSecret string `env:"HH_CLIENT_SECRET"`
}

// AuditConfig настройки журнала поисковых запросов
type AuditConfig struct {
	RedisAddress  string        `env:"REDIS_ADDRESS"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB,default=0"`
	RedisTTL      time.Duration `env:"AUDIT_REDIS_TTL,default=24h"`

	DatabaseURL   string        `env:"DATABASE_URL"`
	Retention     time.Duration `env:"AUDIT_RETENTION,default=720h"`
	PruneSchedule string        `env:"AUDIT_PRUNE_SCHEDULE,default=@hourly"`
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	if c.Search.Timeout < 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must not be negative")
	}

	switch c.Search.Provider {
	case ProviderUpstream:
		if err := validateURL("SEARCH_UPSTREAM_URL", c.Search.UpstreamURL); err != nil {
			return err
		}
	case ProviderJooble:
		if c.Search.JoobleAPIKey == "" {
			return fmt.Errorf("JOOBLE_API_KEY is required for the jooble provider")
		}
		if err := validateURL("JOOBLE_API_URL", c.Search.JoobleAPIURL); err != nil {
			return err
		}
	case ProviderCareerjet:
		if err := validateURL("CAREERJET_API_URL", c.Search.CareerjetAPIURL); err != nil {
			return err
		}
	case ProviderHH:
		if err := validateURL("HH_API_URL", c.Search.HH.APIBaseURL); err != nil {
			return err
		}
		if (c.Search.HH.ClientID == "") != (c.Search.HH.ClientSecret == "") {
			return fmt.Errorf("HH_CLIENT_ID and HH_CLIENT_SECRET must be set together")
		}
	case ProviderRapidAPI:
		if c.Search.RapidAPIKey == "" {
			return fmt.Errorf("RAPIDAPI_KEY is required for the rapidapi provider")
		}
		if strings.TrimSpace(c.Search.RapidAPIQueryParam) == "" {
			return fmt.Errorf("RAPIDAPI_QUERY_PARAM must not be empty")
		}
		if err := validateURL("RAPIDAPI_URL", c.Search.RapidAPIURL); err != nil {
			return err
		}
	case ProviderCoreSignal:
		if c.Search.CoreSignalAPIKey == "" {
			return fmt.Errorf("CORESIGNAL_API_KEY is required for the coresignal provider")
		}
		if err := validateURL("CORESIGNAL_API_URL", c.Search.CoreSignalAPIURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown SEARCH_PROVIDER %q", c.Search.Provider)
	}

	if c.Audit.DatabaseURL != "" {
		if c.Audit.Retention <= 0 {
			return fmt.Errorf("AUDIT_RETENTION must be greater than 0")
		}
		if strings.TrimSpace(c.Audit.PruneSchedule) == "" {
			return fmt.Errorf("AUDIT_PRUNE_SCHEDULE is required when DATABASE_URL is set")
		}
	}

	if c.Audit.RedisTTL < 0 {
		return fmt.Errorf("AUDIT_REDIS_TTL must not be negative")
	}

	return nil
}

// Address адрес для http.Server
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDevelopment режим разработки
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins разбирает CORS_ALLOWED_ORIGINS
func (c *Config) AllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func validateURL(name, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", name)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}
