package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AuditPruner удаляет устаревшие записи журнала
type AuditPruner interface {
	DeleteSearchAuditsBefore(ctx context.Context, before time.Time) (int64, error)
}

// AuditRetention периодическая очистка журнала поиска по cron расписанию
type AuditRetention struct {
	store     AuditPruner
	retention time.Duration
	logger    *zap.Logger
	cron      *cron.Cron
	now       func() time.Time
}

// NewAuditRetention создает задачу очистки журнала
func NewAuditRetention(store AuditPruner, retention time.Duration, logger *zap.Logger) *AuditRetention {
	return &AuditRetention{
		store:     store,
		retention: retention,
		logger:    logger,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:       time.Now,
	}
}

// Start регистрирует задачу и запускает планировщик
func (r *AuditRetention) Start(schedule string) error {
	entryID, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := r.Prune(ctx); err != nil {
			r.logger.Error("Search audit pruning failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit pruning: %w", err)
	}

	r.cron.Start()

	r.logger.Info("Search audit retention scheduled",
		zap.String("schedule", schedule),
		zap.Duration("retention", r.retention),
		zap.Time("next_run", r.cron.Entry(entryID).Next))

	return nil
}

// Stop останавливает планировщик и ждет завершения текущей очистки
func (r *AuditRetention) Stop() {
	<-r.cron.Stop().Done()
}

// Prune удаляет записи старше срока хранения
func (r *AuditRetention) Prune(ctx context.Context) (int64, error) {
	before := r.now().Add(-r.retention)

	deleted, err := r.store.DeleteSearchAuditsBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune search audits: %w", err)
	}

	r.logger.Info("Search audits pruned",
		zap.Int64("deleted", deleted),
		zap.Time("before", before))

	return deleted, nil
}
