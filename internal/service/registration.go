package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/identity"
	"github.com/sparkslearn/console/internal/metrics"
	"github.com/sparkslearn/console/internal/observability"
)

const (
	onboardingSecretPrefix = "Student@"
	defaultRollNumber      = "12345"

	NoteAlreadyRegistered = "already registered (identity key recovered)"
)

type StudentStore interface {
	Put(ctx context.Context, student domain.Student) (domain.Student, error)
	FindByID(ctx context.Context, id string) (domain.Student, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Student, error)
	Delete(ctx context.Context, id string) error
}

type Auditor interface {
	Record(ctx context.Context, action string, status domain.AuditStatus, details map[string]string, cause error)
}

type RegistrationResult struct {
	StudentID         string `json:"student_id"`
	AlreadyRegistered bool   `json:"already_registered"`
	Note              string `json:"note,omitempty"`
}

type DeleteResult struct {
	Deleted int `json:"deleted"`
	// IdentityRetained is set when a deleted profile had an identity account. That account is
	// not deleted: a client-scoped session can only delete the account it created.
	IdentityRetained bool `json:"identity_retained"`
}

// RegistrationService keeps identity accounts and student profiles in one-to-one correspondence.
type RegistrationService struct {
	provider identity.Provider
	store    StudentStore
	audit    Auditor
	now      func() time.Time
}

func NewRegistrationService(provider identity.Provider, store StudentStore, audit Auditor) *RegistrationService {
	return &RegistrationService{
		provider: provider,
		store:    store,
		audit:    audit,
		now:      time.Now,
	}
}

// OnboardingSecret is the initial password of a student account. It is derived from the roll
// number and is not a secret: students are expected to change it on first sign-in.
func OnboardingSecret(rollNumber string) string {
	if rollNumber == "" {
		rollNumber = defaultRollNumber
	}

	return onboardingSecretPrefix + rollNumber
}

// Register creates the identity account of student and then its profile keyed by the account key.
// If the profile cannot be written the account is deleted again.
func (s *RegistrationService) Register(ctx context.Context, student domain.Student) (RegistrationResult, error) {
	email := domain.NormalizeEmail(student.Email)

	session, err := s.provider.OpenSession(ctx)
	if err != nil {
		metrics.Registrations.WithLabelValues(metrics.OutcomeIdentityFailed).Inc()
		return RegistrationResult{}, fmt.Errorf("%w: s.provider.OpenSession -> %w", ErrIdentityCreationFailed, err)
	}
	defer func() {
		if err := session.SignOut(context.WithoutCancel(ctx)); err != nil {
			zap.L().Warn("failed to sign out identity session", zap.String("email", email), zap.Error(err))
		}
	}()

	uid, err := session.CreateAccount(ctx, email, OnboardingSecret(student.RollNumber))
	if err != nil {
		s.audit.Record(ctx, domain.ActionAccountCreate, domain.AuditFailure, map[string]string{
			"email": email,
		}, err)

		if errors.Is(err, identity.ErrAccountExists) {
			return s.recoverExisting(ctx, email)
		}

		metrics.Registrations.WithLabelValues(metrics.OutcomeIdentityFailed).Inc()
		return RegistrationResult{}, fmt.Errorf("%w: %w", ErrIdentityCreationFailed, err)
	}

	student.ID = uid
	student.AuthUID = uid
	student.Email = email
	student.CreatedAt = s.now().UTC()
	if student.Badges == nil {
		student.Badges = []string{}
	}

	if _, err = s.store.Put(ctx, student); err != nil {
		return RegistrationResult{}, s.rollback(ctx, session, uid, email, err)
	}

	s.audit.Record(ctx, domain.ActionAccountCreated, domain.AuditSuccess, map[string]string{
		"uid":        uid,
		"email":      email,
		"college_id": student.CollegeID,
	}, nil)
	metrics.Registrations.WithLabelValues(metrics.OutcomeRegistered).Inc()

	return RegistrationResult{StudentID: uid}, nil
}

// recoverExisting resolves an "account already exists" failure against the profile store.
func (s *RegistrationService) recoverExisting(ctx context.Context, email string) (RegistrationResult, error) {
	found, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		metrics.Registrations.WithLabelValues(metrics.OutcomeIdentityFailed).Inc()
		return RegistrationResult{}, fmt.Errorf("%w: account for %s exists and profile lookup failed: %w",
			ErrIdentityCreationFailed, email, err)
	}

	if len(found) == 0 {
		metrics.Registrations.WithLabelValues(metrics.OutcomeConsistency).Inc()
		zap.L().Error("identity account exists without a profile", zap.String("email", email))
		return RegistrationResult{}, fmt.Errorf("%w: %s", ErrConsistencyViolation, email)
	}

	key := found[0].ID
	if found[0].AuthUID != "" {
		key = found[0].AuthUID
	}
	metrics.Registrations.WithLabelValues(metrics.OutcomeAlreadyRegistered).Inc()

	return RegistrationResult{
		StudentID:         key,
		AlreadyRegistered: true,
		Note:              NoteAlreadyRegistered,
	}, nil
}

// rollback deletes the account created for a profile that could not be written.
// It runs detached from ctx cancellation.
func (s *RegistrationService) rollback(ctx context.Context, session identity.Session, uid, email string, writeErr error) error {
	ctx = context.WithoutCancel(ctx)
	details := map[string]string{
		"uid":   uid,
		"email": email,
	}

	if err := session.DeleteAccount(ctx); err != nil {
		s.audit.Record(ctx, domain.ActionRollback, domain.AuditFailure, details, err)
		s.audit.Record(ctx, domain.ActionOrphanedAccount, domain.AuditFailure, map[string]string{
			domain.AuditDetailOrphanedUID: uid,
			"email":                       email,
			"write_error":                 writeErr.Error(),
		}, err)

		metrics.Rollbacks.WithLabelValues("failure").Inc()
		metrics.OrphanedAccounts.Inc()
		metrics.Registrations.WithLabelValues(metrics.OutcomeRollbackFailed).Inc()

		orphaned := fmt.Errorf("%w: uid %s (%s): profile write: %w; rollback: %w",
			ErrRollbackFailed, uid, email, writeErr, err)
		zap.L().Error("orphaned identity account",
			zap.String("uid", uid),
			zap.String("email", email),
			zap.Error(orphaned),
		)
		observability.CaptureErrWithTags(orphaned, map[string]string{
			"action": domain.ActionOrphanedAccount,
			"uid":    uid,
		})

		return orphaned
	}

	s.audit.Record(ctx, domain.ActionRollback, domain.AuditSuccess, details, writeErr)
	metrics.Rollbacks.WithLabelValues("success").Inc()
	metrics.Registrations.WithLabelValues(metrics.OutcomeProfileFailed).Inc()

	return fmt.Errorf("%w: %w", ErrProfileWriteFailed, writeErr)
}

// Delete removes the profile of a student. A placeholder key means the student was never synced,
// so every profile carrying email is removed instead. Deleting a missing student succeeds.
func (s *RegistrationService) Delete(ctx context.Context, key, email string) (DeleteResult, error) {
	if domain.IsLocalKey(key) {
		return s.deleteByEmail(ctx, key, domain.NormalizeEmail(email))
	}

	found, err := s.store.FindByID(ctx, key)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			return DeleteResult{}, nil
		}

		return DeleteResult{}, s.deleteFailed(ctx, key, email, fmt.Errorf("s.store.FindByID -> %w", err))
	}

	if err = s.store.Delete(ctx, found.ID); err != nil {
		return DeleteResult{}, s.deleteFailed(ctx, key, email, fmt.Errorf("s.store.Delete -> %w", err))
	}
	s.audit.Record(ctx, domain.ActionProfileDeleted, domain.AuditSuccess, map[string]string{
		"id":                found.ID,
		"email":             found.Email,
		"identity_retained": "true",
	}, nil)

	return DeleteResult{Deleted: 1, IdentityRetained: true}, nil
}

func (s *RegistrationService) deleteByEmail(ctx context.Context, key, email string) (DeleteResult, error) {
	if email == "" {
		return DeleteResult{}, fmt.Errorf("%w: email is required to delete unsynced student %s", ErrValidationFailed, key)
	}

	found, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return DeleteResult{}, s.deleteFailed(ctx, key, email, fmt.Errorf("s.store.FindByEmail -> %w", err))
	}

	var res DeleteResult
	for _, student := range found {
		if err = s.store.Delete(ctx, student.ID); err != nil {
			return res, s.deleteFailed(ctx, student.ID, email, fmt.Errorf("s.store.Delete -> %w", err))
		}
		res.Deleted++
		if student.AuthUID != "" {
			res.IdentityRetained = true
		}

		s.audit.Record(ctx, domain.ActionProfileDeleted, domain.AuditSuccess, map[string]string{
			"id":    student.ID,
			"key":   key,
			"email": email,
		}, nil)
	}

	return res, nil
}

func (s *RegistrationService) deleteFailed(ctx context.Context, key, email string, err error) error {
	s.audit.Record(ctx, domain.ActionDeleteFailed, domain.AuditFailure, map[string]string{
		"id":    key,
		"email": email,
	}, err)

	return err
}
