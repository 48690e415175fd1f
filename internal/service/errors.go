package service

import (
	"errors"

	"github.com/sparkslearn/console/internal/reconcile"
	"github.com/sparkslearn/console/internal/repository"
)

var (
	ErrIdentityCreationFailed = errors.New("identity creation failed")
	ErrAlreadyRegistered      = errors.New("already registered")
	ErrConsistencyViolation   = errors.New("consistency violation: identity account exists without a profile")
	ErrProfileWriteFailed     = errors.New("profile write failed")
	ErrRollbackFailed         = errors.New("rollback failed: orphaned identity account")

	ErrPermissionDenied = repository.ErrPermissionDenied
	ErrValidationFailed = reconcile.ErrValidationFailed

	ErrStudentNotFound = repository.ErrStudentNotFound
	ErrCollegeNotFound = repository.ErrCollegeNotFound

	ErrWorkshopNotFound   = repository.ErrWorkshopNotFound
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrSubmissionGraded   = repository.ErrSubmissionGraded
)
