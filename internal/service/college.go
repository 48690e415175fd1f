package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sparkslearn/console/internal/domain"
)

const collegeKeyPrefix = "c-"

type CollegeRepository interface {
	Create(ctx context.Context, college domain.College) (domain.College, error)
	FindByID(ctx context.Context, id string) (domain.College, error)
	FindAll(ctx context.Context) ([]domain.College, error)
	UpdateStatus(ctx context.Context, id string, status domain.CollegeStatus) (domain.College, error)
}

type StudentCounter interface {
	CountByCollege(ctx context.Context) (map[string]int, error)
}

type CollegeService struct {
	repo     CollegeRepository
	students StudentCounter
	audit    Auditor
	now      func() time.Time
}

func NewCollegeService(repo CollegeRepository, students StudentCounter, audit Auditor) *CollegeService {
	return &CollegeService{
		repo:     repo,
		students: students,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *CollegeService) CreateCollege(ctx context.Context, college domain.College) (domain.College, error) {
	college.ID = collegeKeyPrefix + uuid.NewString()
	college.CreatedAt = s.now().UTC()
	if college.Status == "" {
		college.Status = domain.CollegeActive
	}

	created, err := s.repo.Create(ctx, college)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Record(ctx, domain.ActionCollegeCreated, domain.AuditSuccess, map[string]string{
		"college_id": created.ID,
		"name":       created.Name,
	}, nil)

	return created, nil
}

// ListColleges returns every college with its current number of students.
func (s *CollegeService) ListColleges(ctx context.Context) ([]domain.College, error) {
	colleges, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	counts, err := s.students.CountByCollege(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.students.CountByCollege -> %w", err)
	}

	for i := range colleges {
		colleges[i].StudentCount = counts[colleges[i].ID]
	}

	return colleges, nil
}

func (s *CollegeService) GetCollege(ctx context.Context, id string) (domain.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return college, nil
}

func (s *CollegeService) UpdateCollegeStatus(ctx context.Context, id string, status domain.CollegeStatus) (domain.College, error) {
	if status != domain.CollegeActive && status != domain.CollegeInactive {
		return domain.College{}, fmt.Errorf("%w: unknown college status %q", ErrValidationFailed, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.College{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	s.audit.Record(ctx, domain.ActionCollegeStatus, domain.AuditSuccess, map[string]string{
		"college_id": id,
		"status":     string(status),
	}, nil)

	return updated, nil
}
