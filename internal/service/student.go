package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/sparkslearn/console/internal/domain"
)

const manualKeyPrefix = domain.LocalKeyPrefix + "manual-"

type StudentRepository interface {
	FindByID(ctx context.Context, id string) (domain.Student, error)
	FindByCollege(ctx context.Context, collegeID string) ([]domain.Student, error)
	FindAll(ctx context.Context) ([]domain.Student, error)
	AddPoints(ctx context.Context, id string, points, tasks int) (domain.Student, error)
	ResetSeason(ctx context.Context) (int, error)
}

type Writer interface {
	Register(ctx context.Context, student domain.Student) (RegistrationResult, error)
	Delete(ctx context.Context, key, email string) (DeleteResult, error)
}

// StudentRef identifies a student to delete. Email is needed for placeholder keys.
type StudentRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type BulkDeleteResult struct {
	Deleted int               `json:"deleted"`
	Failed  []domain.RowError `json:"failed"`
}

type StudentService struct {
	repo     StudentRepository
	colleges CollegeFinder
	writer   Writer
	audit    Auditor
}

func NewStudentService(repo StudentRepository, colleges CollegeFinder, writer Writer, audit Auditor) *StudentService {
	return &StudentService{
		repo:     repo,
		colleges: colleges,
		writer:   writer,
		audit:    audit,
	}
}

func (s *StudentService) ListStudents(ctx context.Context, collegeID string) ([]domain.Student, error) {
	if _, err := s.colleges.FindByID(ctx, collegeID); err != nil {
		return nil, fmt.Errorf("s.colleges.FindByID -> %w", err)
	}

	students, err := s.repo.FindByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCollege -> %w", err)
	}

	return students, nil
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return student, nil
}

// RegisterStudent registers a manually entered student of collegeID.
func (s *StudentService) RegisterStudent(ctx context.Context, collegeID string, student domain.Student) (RegistrationResult, error) {
	if _, err := s.colleges.FindByID(ctx, collegeID); err != nil {
		return RegistrationResult{}, fmt.Errorf("s.colleges.FindByID -> %w", err)
	}

	student.ID = manualKeyPrefix + uuid.NewString()
	student.CollegeID = collegeID
	student.TotalPoints = 0
	student.TasksCompleted = 0
	student.AttendancePercent = 0
	student.Badges = []string{}

	res, err := s.writer.Register(ctx, student)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("s.writer.Register -> %w", err)
	}

	return res, nil
}

// DeleteStudents deletes every referenced student and keeps going past failures.
func (s *StudentService) DeleteStudents(ctx context.Context, refs []StudentRef) BulkDeleteResult {
	res := BulkDeleteResult{Failed: []domain.RowError{}}
	for _, ref := range refs {
		deleted, err := s.writer.Delete(ctx, ref.ID, ref.Email)
		if err != nil {
			res.Failed = append(res.Failed, domain.RowError{
				Email:   ref.Email,
				Message: fmt.Sprintf("Failed to delete %s: %v", ref.ID, err),
			})
			continue
		}
		res.Deleted += deleted.Deleted
	}

	return res
}

// AwardPoints adds points to a student. Points never decrease outside a season archive.
func (s *StudentService) AwardPoints(ctx context.Context, id string, points int, taskCompleted bool) (domain.Student, error) {
	if points < 0 {
		return domain.Student{}, fmt.Errorf("%w: points must not be negative", ErrValidationFailed)
	}

	tasks := 0
	if taskCompleted {
		tasks = 1
	}

	updated, err := s.repo.AddPoints(ctx, id, points, tasks)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.AddPoints -> %w", err)
	}

	s.audit.Record(ctx, domain.ActionPointsAwarded, domain.AuditSuccess, map[string]string{
		"id":     id,
		"points": strconv.Itoa(points),
		"total":  strconv.Itoa(updated.TotalPoints),
	}, nil)

	return updated, nil
}

// Leaderboard ranks students by points, ties broken by name. An empty collegeID ranks every
// student; limit <= 0 returns the full ranking.
func (s *StudentService) Leaderboard(ctx context.Context, collegeID string, limit int) ([]domain.RankedStudent, error) {
	var (
		students []domain.Student
		err      error
	)
	if collegeID == "" {
		students, err = s.repo.FindAll(ctx)
	} else {
		students, err = s.ListStudents(ctx, collegeID)
	}
	if err != nil {
		return nil, err
	}

	return Rank(students, limit), nil
}

// RankedRoster returns the college and its full ranking, as exported.
func (s *StudentService) RankedRoster(ctx context.Context, collegeID string) (domain.College, []domain.RankedStudent, error) {
	college, err := s.colleges.FindByID(ctx, collegeID)
	if err != nil {
		return domain.College{}, nil, fmt.Errorf("s.colleges.FindByID -> %w", err)
	}

	students, err := s.repo.FindByCollege(ctx, collegeID)
	if err != nil {
		return domain.College{}, nil, fmt.Errorf("s.repo.FindByCollege -> %w", err)
	}

	return college, Rank(students, 0), nil
}

func Rank(students []domain.Student, limit int) []domain.RankedStudent {
	sorted := make([]domain.Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].Name < sorted[j].Name
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	ranked := make([]domain.RankedStudent, 0, len(sorted))
	for i, st := range sorted {
		ranked = append(ranked, domain.RankedStudent{Student: st, Rank: i + 1})
	}

	return ranked
}

// ArchiveSeason resets points and badges of every student.
func (s *StudentService) ArchiveSeason(ctx context.Context) (int, error) {
	n, err := s.repo.ResetSeason(ctx)
	if err != nil {
		s.audit.Record(ctx, domain.ActionSeasonArchived, domain.AuditFailure, nil, err)
		return 0, fmt.Errorf("s.repo.ResetSeason -> %w", err)
	}

	s.audit.Record(ctx, domain.ActionSeasonArchived, domain.AuditSuccess, map[string]string{
		"students": strconv.Itoa(n),
	}, nil)

	return n, nil
}
