package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sparkslearn/console/internal/domain"
)

const (
	workshopKeyPrefix   = "w-"
	submissionKeyPrefix = "s-"
)

type WorkshopRepository interface {
	CreateWorkshop(ctx context.Context, w domain.Workshop) (domain.Workshop, error)
	FindWorkshop(ctx context.Context, id string) (domain.Workshop, error)
	FindWorkshops(ctx context.Context, collegeID string) ([]domain.Workshop, error)
	CreateSubmission(ctx context.Context, s domain.Submission) (domain.Submission, error)
	FindSubmission(ctx context.Context, id string) (domain.Submission, error)
	FindSubmissions(ctx context.Context, workshopID string, status domain.SubmissionStatus) ([]domain.Submission, error)
	GradeSubmission(ctx context.Context, id string, status domain.SubmissionStatus, score int, feedback string, gradedAt time.Time) (domain.Submission, error)
	ReopenSubmission(ctx context.Context, id string) error
}

type StudentFinder interface {
	FindByID(ctx context.Context, id string) (domain.Student, error)
}

type PointsAwarder interface {
	AwardPoints(ctx context.Context, id string, points int, taskCompleted bool) (domain.Student, error)
}

// WorkshopService manages workshops and grades the work students submit for them.
// An approved submission awards its score to the student and counts as a completed task.
type WorkshopService struct {
	repo     WorkshopRepository
	colleges CollegeFinder
	students StudentFinder
	points   PointsAwarder
	audit    Auditor
	now      func() time.Time
}

func NewWorkshopService(repo WorkshopRepository, colleges CollegeFinder, students StudentFinder, points PointsAwarder, audit Auditor) *WorkshopService {
	return &WorkshopService{
		repo:     repo,
		colleges: colleges,
		students: students,
		points:   points,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *WorkshopService) CreateWorkshop(ctx context.Context, w domain.Workshop) (domain.Workshop, error) {
	w.Title = strings.TrimSpace(w.Title)
	if w.Title == "" {
		return domain.Workshop{}, fmt.Errorf("%w: workshop title is required", ErrValidationFailed)
	}
	if w.MaxPoints <= 0 {
		return domain.Workshop{}, fmt.Errorf("%w: max points must be positive", ErrValidationFailed)
	}
	switch w.Status {
	case "":
		w.Status = domain.WorkshopUpcoming
	case domain.WorkshopUpcoming, domain.WorkshopOngoing, domain.WorkshopCompleted:
	default:
		return domain.Workshop{}, fmt.Errorf("%w: unknown workshop status %q", ErrValidationFailed, w.Status)
	}

	if _, err := s.colleges.FindByID(ctx, w.CollegeID); err != nil {
		return domain.Workshop{}, fmt.Errorf("s.colleges.FindByID -> %w", err)
	}

	w.ID = workshopKeyPrefix + uuid.NewString()
	w.CreatedAt = s.now().UTC()

	created, err := s.repo.CreateWorkshop(ctx, w)
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("s.repo.CreateWorkshop -> %w", err)
	}

	s.audit.Record(ctx, domain.ActionWorkshopCreated, domain.AuditSuccess, map[string]string{
		"workshop_id": created.ID,
		"college_id":  created.CollegeID,
		"title":       created.Title,
	}, nil)

	return created, nil
}

func (s *WorkshopService) ListWorkshops(ctx context.Context, collegeID string) ([]domain.Workshop, error) {
	workshops, err := s.repo.FindWorkshops(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindWorkshops -> %w", err)
	}

	return workshops, nil
}

// Submit records pending work of a student for a workshop of the student's college.
func (s *WorkshopService) Submit(ctx context.Context, workshopID, studentID, content string) (domain.Submission, error) {
	workshop, err := s.repo.FindWorkshop(ctx, workshopID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.FindWorkshop -> %w", err)
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.students.FindByID -> %w", err)
	}
	if student.CollegeID != workshop.CollegeID {
		return domain.Submission{}, fmt.Errorf("%w: student %s is not enrolled in the workshop's college", ErrValidationFailed, studentID)
	}

	created, err := s.repo.CreateSubmission(ctx, domain.Submission{
		ID:          submissionKeyPrefix + uuid.NewString(),
		WorkshopID:  workshop.ID,
		StudentID:   student.ID,
		Content:     content,
		Status:      domain.SubmissionPending,
		SubmittedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.CreateSubmission -> %w", err)
	}

	return created, nil
}

func (s *WorkshopService) ListSubmissions(ctx context.Context, workshopID string, status domain.SubmissionStatus) ([]domain.Submission, error) {
	if _, err := s.repo.FindWorkshop(ctx, workshopID); err != nil {
		return nil, fmt.Errorf("s.repo.FindWorkshop -> %w", err)
	}

	submissions, err := s.repo.FindSubmissions(ctx, workshopID, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSubmissions -> %w", err)
	}

	return submissions, nil
}

// GradeSubmission approves or rejects a pending submission. Approval awards the score, capped
// by the workshop's MaxPoints, as a completed task. If awarding fails the submission is reopened.
func (s *WorkshopService) GradeSubmission(ctx context.Context, id string, grade domain.Grade) (domain.Submission, error) {
	sub, err := s.repo.FindSubmission(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.FindSubmission -> %w", err)
	}
	if sub.Status != domain.SubmissionPending {
		return domain.Submission{}, fmt.Errorf("%w: %s is %s", ErrSubmissionGraded, id, sub.Status)
	}

	workshop, err := s.repo.FindWorkshop(ctx, sub.WorkshopID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.FindWorkshop -> %w", err)
	}

	status, score := domain.SubmissionRejected, 0
	if grade.Approve {
		if grade.Score < 0 || grade.Score > workshop.MaxPoints {
			return domain.Submission{}, fmt.Errorf("%w: score must be between 0 and %d", ErrValidationFailed, workshop.MaxPoints)
		}
		status, score = domain.SubmissionApproved, grade.Score
	}

	graded, err := s.repo.GradeSubmission(ctx, id, status, score, grade.Feedback, s.now().UTC())
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.GradeSubmission -> %w", err)
	}

	details := map[string]string{
		"submission_id": id,
		"workshop_id":   workshop.ID,
		"student_id":    sub.StudentID,
		"status":        string(status),
		"score":         strconv.Itoa(score),
	}

	if grade.Approve {
		if _, err = s.points.AwardPoints(ctx, sub.StudentID, score, true); err != nil {
			if reopenErr := s.repo.ReopenSubmission(context.WithoutCancel(ctx), id); reopenErr != nil {
				zap.L().Error("reopening submission after failed award",
					zap.String("submission_id", id),
					zap.Error(reopenErr),
				)
			}
			s.audit.Record(ctx, domain.ActionSubmissionGraded, domain.AuditFailure, details, err)

			return domain.Submission{}, fmt.Errorf("s.points.AwardPoints -> %w", err)
		}
	}

	s.audit.Record(ctx, domain.ActionSubmissionGraded, domain.AuditSuccess, details, nil)

	return graded, nil
}
