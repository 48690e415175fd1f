package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/repository/dao"
)

var (
	ErrWorkshopNotFound   = dao.ErrWorkshopNotFound
	ErrSubmissionNotFound = dao.ErrSubmissionNotFound
	ErrSubmissionGraded   = dao.ErrSubmissionGraded
)

type WorkshopDAO interface {
	Insert(ctx context.Context, workshop dao.Workshop) (dao.Workshop, error)
	FindByID(ctx context.Context, id string) (dao.Workshop, error)
	FindAll(ctx context.Context, collegeID string) ([]dao.Workshop, error)
}

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByID(ctx context.Context, id string) (dao.Submission, error)
	FindByWorkshop(ctx context.Context, workshopID, status string) ([]dao.Submission, error)
	Grade(ctx context.Context, id, pendingStatus, status string, score int, feedback string, gradedAt time.Time) (dao.Submission, error)
	Reopen(ctx context.Context, id, pendingStatus string) error
}

type WorkshopRepository struct {
	workshops   WorkshopDAO
	submissions SubmissionDAO
}

func NewWorkshopRepository(workshops WorkshopDAO, submissions SubmissionDAO) *WorkshopRepository {
	return &WorkshopRepository{
		workshops:   workshops,
		submissions: submissions,
	}
}

func (r *WorkshopRepository) CreateWorkshop(ctx context.Context, w domain.Workshop) (domain.Workshop, error) {
	created, err := r.workshops.Insert(ctx, dao.Workshop{
		ID:        w.ID,
		Title:     w.Title,
		CollegeID: w.CollegeID,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
		Status:    string(w.Status),
		MaxPoints: w.MaxPoints,
		CreatedAt: w.CreatedAt,
	})
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("r.workshops.Insert -> %w", err)
	}

	return workshopToDomain(created), nil
}

func (r *WorkshopRepository) FindWorkshop(ctx context.Context, id string) (domain.Workshop, error) {
	found, err := r.workshops.FindByID(ctx, id)
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("r.workshops.FindByID -> %w", err)
	}

	return workshopToDomain(found), nil
}

func (r *WorkshopRepository) FindWorkshops(ctx context.Context, collegeID string) ([]domain.Workshop, error) {
	found, err := r.workshops.FindAll(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("r.workshops.FindAll -> %w", err)
	}

	workshops := make([]domain.Workshop, 0, len(found))
	for _, w := range found {
		workshops = append(workshops, workshopToDomain(w))
	}

	return workshops, nil
}

func (r *WorkshopRepository) CreateSubmission(ctx context.Context, s domain.Submission) (domain.Submission, error) {
	created, err := r.submissions.Insert(ctx, dao.Submission{
		ID:          s.ID,
		WorkshopID:  s.WorkshopID,
		StudentID:   s.StudentID,
		Content:     s.Content,
		Status:      string(s.Status),
		SubmittedAt: s.SubmittedAt,
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.submissions.Insert -> %w", err)
	}

	return submissionToDomain(created), nil
}

func (r *WorkshopRepository) FindSubmission(ctx context.Context, id string) (domain.Submission, error) {
	found, err := r.submissions.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.submissions.FindByID -> %w", err)
	}

	return submissionToDomain(found), nil
}

func (r *WorkshopRepository) FindSubmissions(ctx context.Context, workshopID string, status domain.SubmissionStatus) ([]domain.Submission, error) {
	found, err := r.submissions.FindByWorkshop(ctx, workshopID, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.submissions.FindByWorkshop -> %w", err)
	}

	submissions := make([]domain.Submission, 0, len(found))
	for _, s := range found {
		submissions = append(submissions, submissionToDomain(s))
	}

	return submissions, nil
}

// GradeSubmission records status on a pending submission and fails with ErrSubmissionGraded otherwise.
func (r *WorkshopRepository) GradeSubmission(ctx context.Context, id string, status domain.SubmissionStatus, score int, feedback string, gradedAt time.Time) (domain.Submission, error) {
	graded, err := r.submissions.Grade(ctx, id, string(domain.SubmissionPending), string(status), score, feedback, gradedAt)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.submissions.Grade -> %w", err)
	}

	return submissionToDomain(graded), nil
}

func (r *WorkshopRepository) ReopenSubmission(ctx context.Context, id string) error {
	if err := r.submissions.Reopen(ctx, id, string(domain.SubmissionPending)); err != nil {
		return fmt.Errorf("r.submissions.Reopen -> %w", err)
	}

	return nil
}

func workshopToDomain(w dao.Workshop) domain.Workshop {
	return domain.Workshop{
		ID:        w.ID,
		Title:     w.Title,
		CollegeID: w.CollegeID,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
		Status:    domain.WorkshopStatus(w.Status),
		MaxPoints: w.MaxPoints,
		CreatedAt: w.CreatedAt,
	}
}

func submissionToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:          s.ID,
		WorkshopID:  s.WorkshopID,
		StudentID:   s.StudentID,
		Content:     s.Content,
		Status:      domain.SubmissionStatus(s.Status),
		Score:       s.Score,
		Feedback:    s.Feedback,
		SubmittedAt: s.SubmittedAt,
		GradedAt:    s.GradedAt,
	}
}
