package repository

import (
	"context"
	"fmt"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/repository/dao"
)

var (
	ErrPermissionDenied   = dao.ErrPermissionDenied
	ErrStudentEmailExists = dao.ErrStudentEmailExists
	ErrStudentNotFound    = dao.ErrStudentNotFound
)

type StudentDAO interface {
	Insert(ctx context.Context, student dao.Student) (dao.Student, error)
	FindByID(ctx context.Context, id string) (dao.Student, error)
	FindByEmail(ctx context.Context, email string) ([]dao.Student, error)
	FindByCollege(ctx context.Context, collegeID string) ([]dao.Student, error)
	FindAll(ctx context.Context) ([]dao.Student, error)
	Delete(ctx context.Context, id string) error
	AddPoints(ctx context.Context, id string, points, tasks int) (dao.Student, error)
	ResetSeason(ctx context.Context) (int, error)
	CountByCollege(ctx context.Context) (map[string]int, error)
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) Put(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(student))
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (domain.Student, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) ([]domain.Student, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StudentRepository) FindByCollege(ctx context.Context, collegeID string) ([]domain.Student, error) {
	found, err := r.dao.FindByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCollege -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *StudentRepository) AddPoints(ctx context.Context, id string, points, tasks int) (domain.Student, error) {
	updated, err := r.dao.AddPoints(ctx, id, points, tasks)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.AddPoints -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StudentRepository) ResetSeason(ctx context.Context) (int, error) {
	n, err := r.dao.ResetSeason(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.ResetSeason -> %w", err)
	}

	return n, nil
}

func (r *StudentRepository) CountByCollege(ctx context.Context) (map[string]int, error) {
	counts, err := r.dao.CountByCollege(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByCollege -> %w", err)
	}

	return counts, nil
}

func (r *StudentRepository) domainToDAO(s domain.Student) dao.Student {
	badges := s.Badges
	if badges == nil {
		badges = []string{}
	}

	return dao.Student{
		ID:                s.ID,
		AuthUID:           s.AuthUID,
		Name:              s.Name,
		RollNumber:        s.RollNumber,
		Email:             s.Email,
		DateOfBirth:       s.DateOfBirth,
		CollegeID:         s.CollegeID,
		TotalPoints:       s.TotalPoints,
		Badges:            badges,
		TasksCompleted:    s.TasksCompleted,
		AttendancePercent: s.AttendancePercent,
		CreatedAt:         s.CreatedAt,
	}
}

func (r *StudentRepository) daoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:                s.ID,
		AuthUID:           s.AuthUID,
		Name:              s.Name,
		RollNumber:        s.RollNumber,
		Email:             s.Email,
		DateOfBirth:       s.DateOfBirth,
		CollegeID:         s.CollegeID,
		TotalPoints:       s.TotalPoints,
		Badges:            s.Badges,
		TasksCompleted:    s.TasksCompleted,
		AttendancePercent: s.AttendancePercent,
		CreatedAt:         s.CreatedAt,
	}
}

func (r *StudentRepository) daosToDomain(students []dao.Student) []domain.Student {
	out := make([]domain.Student, 0, len(students))
	for _, s := range students {
		out = append(out, r.daoToDomain(s))
	}

	return out
}
