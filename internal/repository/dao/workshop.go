package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Workshop struct {
	ID        string    `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	CollegeID string    `gorm:"not null;index"`
	StartDate string
	EndDate   string
	Status    string    `gorm:"not null"`
	MaxPoints int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Submission struct {
	ID          string `gorm:"primaryKey"`
	WorkshopID  string `gorm:"not null;index"`
	StudentID   string `gorm:"not null;index"`
	Content     string
	Status      string `gorm:"not null;index"`
	Score       int
	Feedback    string
	SubmittedAt time.Time `gorm:"not null"`
	GradedAt    *time.Time
}

type WorkshopDAO struct {
	db *gorm.DB
}

func NewWorkshopDAO(db *gorm.DB) *WorkshopDAO {
	return &WorkshopDAO{
		db: db,
	}
}

func (d *WorkshopDAO) Insert(ctx context.Context, workshop Workshop) (Workshop, error) {
	result := d.db.WithContext(ctx).Create(&workshop)
	if result.Error != nil {
		return Workshop{}, mapError(result.Error)
	}

	return workshop, nil
}

func (d *WorkshopDAO) FindByID(ctx context.Context, id string) (Workshop, error) {
	var workshop Workshop

	result := d.db.WithContext(ctx).First(&workshop, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Workshop{}, ErrWorkshopNotFound
		}

		return Workshop{}, mapError(result.Error)
	}

	return workshop, nil
}

// FindAll lists workshops, newest first. An empty collegeID lists every college.
func (d *WorkshopDAO) FindAll(ctx context.Context, collegeID string) ([]Workshop, error) {
	var workshops []Workshop

	query := d.db.WithContext(ctx).Order("created_at DESC")
	if collegeID != "" {
		query = query.Where("college_id = ?", collegeID)
	}

	if result := query.Find(&workshops); result.Error != nil {
		return nil, mapError(result.Error)
	}

	return workshops, nil
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission) (Submission, error) {
	result := d.db.WithContext(ctx).Create(&submission)
	if result.Error != nil {
		return Submission{}, mapError(result.Error)
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id string) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).First(&submission, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, mapError(result.Error)
	}

	return submission, nil
}

// FindByWorkshop lists submissions oldest first. An empty status lists every status.
func (d *SubmissionDAO) FindByWorkshop(ctx context.Context, workshopID, status string) ([]Submission, error) {
	var submissions []Submission

	query := d.db.WithContext(ctx).Where("workshop_id = ?", workshopID).Order("submitted_at")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if result := query.Find(&submissions); result.Error != nil {
		return nil, mapError(result.Error)
	}

	return submissions, nil
}

// Grade moves a submission out of pendingStatus. Only one concurrent grader wins.
func (d *SubmissionDAO) Grade(ctx context.Context, id, pendingStatus, status string, score int, feedback string, gradedAt time.Time) (Submission, error) {
	result := d.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ? AND status = ?", id, pendingStatus).
		Updates(map[string]any{
			"status":    status,
			"score":     score,
			"feedback":  feedback,
			"graded_at": gradedAt,
		})
	if result.Error != nil {
		return Submission{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return Submission{}, err
		}
		return Submission{}, ErrSubmissionGraded
	}

	return d.FindByID(ctx, id)
}

// Reopen puts a graded submission back to pendingStatus.
func (d *SubmissionDAO) Reopen(ctx context.Context, id, pendingStatus string) error {
	result := d.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    pendingStatus,
			"score":     0,
			"feedback":  "",
			"graded_at": nil,
		})

	return mapError(result.Error)
}
