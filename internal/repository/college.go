package repository

import (
	"context"
	"fmt"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/repository/dao"
)

var (
	ErrCollegeNotFound = dao.ErrCollegeNotFound
)

type CollegeDAO interface {
	Insert(ctx context.Context, college dao.College) (dao.College, error)
	FindByID(ctx context.Context, id string) (dao.College, error)
	FindAll(ctx context.Context) ([]dao.College, error)
	UpdateStatus(ctx context.Context, id, status string) (dao.College, error)
}

type CollegeRepository struct {
	dao CollegeDAO
}

func NewCollegeRepository(dao CollegeDAO) *CollegeRepository {
	return &CollegeRepository{
		dao: dao,
	}
}

func (r *CollegeRepository) Create(ctx context.Context, college domain.College) (domain.College, error) {
	created, err := r.dao.Insert(ctx, dao.College{
		ID:        college.ID,
		Name:      college.Name,
		Location:  college.Location,
		AdminName: college.AdminName,
		Status:    string(college.Status),
		CreatedAt: college.CreatedAt,
	})
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CollegeRepository) FindByID(ctx context.Context, id string) (domain.College, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CollegeRepository) FindAll(ctx context.Context) ([]domain.College, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	colleges := make([]domain.College, 0, len(found))
	for _, c := range found {
		colleges = append(colleges, r.daoToDomain(c))
	}

	return colleges, nil
}

func (r *CollegeRepository) UpdateStatus(ctx context.Context, id string, status domain.CollegeStatus) (domain.College, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.College{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CollegeRepository) daoToDomain(c dao.College) domain.College {
	return domain.College{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		AdminName: c.AdminName,
		Status:    domain.CollegeStatus(c.Status),
		CreatedAt: c.CreatedAt,
	}
}
