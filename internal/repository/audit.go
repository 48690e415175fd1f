package repository

import (
	"context"
	"fmt"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/repository/dao"
)

type AuditDAO interface {
	Insert(ctx context.Context, entry dao.AuditEntry) error
	Find(ctx context.Context, action string, limit int) ([]dao.AuditEntry, error)
}

type AuditRepository struct {
	dao AuditDAO
}

func NewAuditRepository(dao AuditDAO) *AuditRepository {
	return &AuditRepository{
		dao: dao,
	}
}

func (r *AuditRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	err := r.dao.Insert(ctx, dao.AuditEntry{
		ID:          entry.ID,
		Action:      entry.Action,
		Timestamp:   entry.Timestamp,
		Details:     entry.Details,
		Status:      string(entry.Status),
		Error:       entry.Error,
		PerformedBy: entry.PerformedBy,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

func (r *AuditRepository) Find(ctx context.Context, action string, limit int) ([]domain.AuditEntry, error) {
	found, err := r.dao.Find(ctx, action, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, domain.AuditEntry{
			ID:          e.ID,
			Action:      e.Action,
			Timestamp:   e.Timestamp,
			Details:     e.Details,
			Status:      domain.AuditStatus(e.Status),
			Error:       e.Error,
			PerformedBy: e.PerformedBy,
		})
	}

	return entries, nil
}
