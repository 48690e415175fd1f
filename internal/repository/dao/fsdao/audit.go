package fsdao

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/sparkslearn/console/internal/repository/dao"
)

type AuditDAO struct {
	client *firestore.Client
}

func NewAuditDAO(client *firestore.Client) *AuditDAO {
	return &AuditDAO{
		client: client,
	}
}

func (d *AuditDAO) Insert(ctx context.Context, entry dao.AuditEntry) error {
	if _, err := d.client.Collection(auditCollection).Doc(entry.ID).Set(ctx, entry); err != nil {
		return mapError(err, nil)
	}

	return nil
}

// Find filtering by action needs the composite index (action asc, timestamp desc).
func (d *AuditDAO) Find(ctx context.Context, action string, limit int) ([]dao.AuditEntry, error) {
	query := d.client.Collection(auditCollection).OrderBy("timestamp", firestore.Desc).Limit(limit)
	if action != "" {
		query = query.Where("action", "==", action)
	}

	return collect(query.Documents(ctx), func(e *dao.AuditEntry, id string) { e.ID = id })
}
