package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/repository"
)

var (
	ErrOperatorEmailExists = repository.ErrOperatorEmailExists
	ErrOperatorNotFound    = repository.ErrOperatorNotFound
	ErrWrongPassword       = errors.New("wrong password")
)

type OperatorRepository interface {
	Create(ctx context.Context, operator domain.Operator) (domain.Operator, error)
	FindByID(ctx context.Context, id uint) (domain.Operator, error)
	FindByEmail(ctx context.Context, email string) (domain.Operator, error)
}

type AuthService struct {
	repo OperatorRepository
}

func NewAuthService(repo OperatorRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Signup(ctx context.Context, operator domain.Operator) (domain.Operator, error) {
	operator.Email = domain.NormalizeEmail(operator.Email)
	if err := s.checkEmailExists(ctx, operator.Email); err != nil {
		return domain.Operator{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(operator.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Operator{}, err
	}
	operator.Password = string(hash)

	created, err := s.repo.Create(ctx, operator)
	if err != nil {
		return domain.Operator{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Operator, error) {
	operator, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrOperatorNotFound) {
			return domain.Operator{}, ErrOperatorNotFound
		}

		return domain.Operator{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)); err != nil {
		return domain.Operator{}, ErrWrongPassword
	}

	return operator, nil
}

func (s *AuthService) GetOperator(ctx context.Context, id uint) (domain.Operator, error) {
	operator, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Operator{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return operator, nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrOperatorEmailExists
	}
	if !errors.Is(err, repository.ErrOperatorNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return nil
}
