package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type AuditEntry struct {
	ID          string            `gorm:"primaryKey" firestore:"-"`
	Action      string            `gorm:"index;not null" firestore:"action"`
	Timestamp   time.Time         `gorm:"index;not null" firestore:"timestamp"`
	Details     map[string]string `gorm:"serializer:json" firestore:"details"`
	Status      string            `gorm:"not null" firestore:"status"`
	Error       string            `firestore:"error,omitempty"`
	PerformedBy string            `gorm:"not null" firestore:"performedBy"`
}

func (AuditEntry) TableName() string {
	return "audit_logs"
}

type AuditDAO struct {
	db *gorm.DB
}

func NewAuditDAO(db *gorm.DB) *AuditDAO {
	return &AuditDAO{
		db: db,
	}
}

func (d *AuditDAO) Insert(ctx context.Context, entry AuditEntry) error {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return mapError(result.Error)
	}

	return nil
}

// Find returns the newest entries first. An empty action matches every entry.
func (d *AuditDAO) Find(ctx context.Context, action string, limit int) ([]AuditEntry, error) {
	var entries []AuditEntry

	query := d.db.WithContext(ctx).Order("timestamp desc").Limit(limit)
	if action != "" {
		query = query.Where("action = ?", action)
	}

	result := query.Find(&entries)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return entries, nil
}
