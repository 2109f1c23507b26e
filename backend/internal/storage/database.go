package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"jobrelay/backend/internal/models"
)

const searchAuditSchema = `
    CREATE TABLE IF NOT EXISTS search_audit (
        id          UUID PRIMARY KEY,
        request_id  TEXT NOT NULL DEFAULT '',
        provider    TEXT NOT NULL,
        query       TEXT NOT NULL DEFAULT '',
        status_code INTEGER NOT NULL DEFAULT 0,
        error       TEXT NOT NULL DEFAULT '',
        duration_ms BIGINT NOT NULL DEFAULT 0,
        created_at  TIMESTAMPTZ NOT NULL
    );
    CREATE INDEX IF NOT EXISTS search_audit_created_at_idx ON search_audit (created_at)
`

// Database обертка над sqlx.DB
type Database struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewDatabase создает новое подключение к БД
func NewDatabase(dsn string, logger *zap.Logger) (*Database, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("Database connection established")

	return NewDatabaseFromDB(db, logger), nil
}

// NewDatabaseFromDB оборачивает готовое подключение
func NewDatabaseFromDB(db *sqlx.DB, logger *zap.Logger) *Database {
	return &Database{
		db:     db,
		logger: logger,
	}
}

// Close закрывает подключение к БД
func (d *Database) Close() error {
	return d.db.Close()
}

// EnsureSchema создает таблицу журнала, если ее нет
func (d *Database) EnsureSchema(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, searchAuditSchema); err != nil {
		return fmt.Errorf("failed to create search_audit table: %w", err)
	}
	return nil
}

// Search audit operations

// SaveSearchAudit сохраняет запись журнала поиска
func (d *Database) SaveSearchAudit(ctx context.Context, audit *models.SearchAudit) error {
	query := `
        INSERT INTO search_audit (id, request_id, provider, query, status_code, error, duration_ms, created_at)
        VALUES (:id, :request_id, :provider, :query, :status_code, :error, :duration_ms, :created_at)
    `

	if _, err := d.db.NamedExecContext(ctx, query, audit); err != nil {
		return fmt.Errorf("failed to save search audit: %w", err)
	}
	return nil
}

// GetRecentSearchAudits получает последние записи журнала
func (d *Database) GetRecentSearchAudits(ctx context.Context, limit int) ([]models.SearchAudit, error) {
	var audits []models.SearchAudit
	query := `SELECT * FROM search_audit ORDER BY created_at DESC LIMIT $1`

	if err := d.db.SelectContext(ctx, &audits, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get search audits: %w", err)
	}

	return audits, nil
}

// DeleteSearchAuditsBefore удаляет записи журнала старше before
func (d *Database) DeleteSearchAuditsBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM search_audit WHERE created_at < $1`
	result, err := d.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete search audits: %w", err)
	}

	return result.RowsAffected()
}
