package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type College struct {
	ID        string    `gorm:"primaryKey" firestore:"-"`
	Name      string    `gorm:"not null" firestore:"name"`
	Location  string    `firestore:"location"`
	AdminName string    `firestore:"adminName"`
	Status    string    `gorm:"not null" firestore:"status"`
	CreatedAt time.Time `gorm:"not null" firestore:"createdAt"`
}

type CollegeDAO struct {
	db *gorm.DB
}

func NewCollegeDAO(db *gorm.DB) *CollegeDAO {
	return &CollegeDAO{
		db: db,
	}
}

func (d *CollegeDAO) Insert(ctx context.Context, college College) (College, error) {
	result := d.db.WithContext(ctx).Create(&college)
	if result.Error != nil {
		return College{}, mapError(result.Error)
	}

	return college, nil
}

func (d *CollegeDAO) FindByID(ctx context.Context, id string) (College, error) {
	var college College

	result := d.db.WithContext(ctx).First(&college, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return College{}, ErrCollegeNotFound
		}

		return College{}, mapError(result.Error)
	}

	return college, nil
}

func (d *CollegeDAO) FindAll(ctx context.Context) ([]College, error) {
	var colleges []College

	result := d.db.WithContext(ctx).Order("name").Find(&colleges)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return colleges, nil
}

func (d *CollegeDAO) UpdateStatus(ctx context.Context, id, status string) (College, error) {
	result := d.db.WithContext(ctx).Model(&College{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return College{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return College{}, ErrCollegeNotFound
	}

	return d.FindByID(ctx, id)
}
