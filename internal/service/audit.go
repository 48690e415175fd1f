package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sparkslearn/console/internal/ctxutil"
	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/metrics"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
	Find(ctx context.Context, action string, limit int) ([]domain.AuditEntry, error)
}

type AuditLog struct {
	repo AuditRepository
	now  func() time.Time
}

func NewAuditLog(repo AuditRepository) *AuditLog {
	return &AuditLog{
		repo: repo,
		now:  time.Now,
	}
}

// Record stores one audit entry. It never fails the caller: a write error is logged and counted.
// The entry is written even when ctx is already cancelled.
func (a *AuditLog) Record(ctx context.Context, action string, status domain.AuditStatus, details map[string]string, cause error) {
	entry := domain.AuditEntry{
		ID:          uuid.NewString(),
		Action:      action,
		Timestamp:   a.now().UTC(),
		Details:     make(map[string]string, len(details)+1),
		Status:      status,
		PerformedBy: ctxutil.PerformedBy(ctx, domain.DefaultPerformedBy),
	}
	for k, v := range details {
		entry.Details[k] = v
	}
	if requestID, ok := ctxutil.RequestID(ctx); ok {
		entry.Details[domain.AuditDetailRequestID] = requestID
	}
	if cause != nil {
		entry.Error = cause.Error()
	}

	writeCtx, cancel := ctxutil.WithStoreTimeout(context.WithoutCancel(ctx))
	defer cancel()

	if err := a.repo.Append(writeCtx, entry); err != nil {
		metrics.AuditWriteErrors.Inc()
		zap.L().Error("failed to write audit entry",
			zap.String("action", action),
			zap.String("status", string(status)),
			zap.Any("details", entry.Details),
			zap.Error(err),
		)
	}
}

// List returns the newest entries first. An empty action matches every action.
func (a *AuditLog) List(ctx context.Context, action string, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	entries, err := a.repo.Find(ctx, action, limit)
	if err != nil {
		return nil, fmt.Errorf("a.repo.Find -> %w", err)
	}

	return entries, nil
}
