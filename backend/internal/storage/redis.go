package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"jobrelay/backend/internal/models"
)

// RedisClient обертка над redis.Client
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisClient создает нового Redis клиента, ttl задает срок хранения записей журнала
func NewRedisClient(addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		// Настройки пула
		PoolSize:     10,
		MinIdleConns: 2,
		PoolTimeout:  30 * time.Second,
		IdleTimeout:  5 * time.Minute,

		// Таймауты
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Проверка соединения
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established",
		zap.String("addr", addr),
		zap.Int("db", db))

	return &RedisClient{
		client: client,
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Close закрывает соединение с Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// SetWithExpiry сохраняет значение с TTL
func (r *RedisClient) SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// AuditKey ключ записи журнала поиска. ID различает запросы с одинаковым временем
func AuditKey(audit *models.SearchAudit) string {
	return fmt.Sprintf("audit:search:%s:%d:%s", audit.Provider, audit.CreatedAt.UnixNano(), audit.ID)
}

// SaveSearchAudit сохраняет запись журнала поиска с TTL клиента
func (r *RedisClient) SaveSearchAudit(ctx context.Context, audit *models.SearchAudit) error {
	payload, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("failed to marshal search audit: %w", err)
	}

	if err := r.SetWithExpiry(ctx, AuditKey(audit), string(payload), r.ttl); err != nil {
		return fmt.Errorf("failed to save search audit to Redis: %w", err)
	}
	return nil
}
