package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/identity"
	"github.com/sparkslearn/console/internal/observability"
	"github.com/sparkslearn/console/internal/service"
)

// renderServiceErr maps an error returned by a service call to its HTTP rendering.
// op is the call path prefix of the handler, e.g. "HandleImport -> h.svc.Import".
func renderServiceErr(ctx *gin.Context, op string, err error) {
	wrapped := fmt.Errorf("%s -> %w", op, err)

	// An orphaned account outranks any cause it wraps.
	switch {
	case errors.Is(err, service.ErrRollbackFailed):
		response.RenderErr(ctx, response.ErrOrphanedIdentity(err))
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrWeakSecret):
		response.RenderErr(ctx, response.ErrValidation(err))
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(wrapped))
	case errors.Is(err, service.ErrStudentNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound("student", err))
	case errors.Is(err, service.ErrCollegeNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound("college", err))
	case errors.Is(err, service.ErrWorkshopNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound("workshop", err))
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.RenderErr(ctx, response.ErrResourceNotFound("submission", err))
	case errors.Is(err, service.ErrSubmissionGraded):
		response.RenderErr(ctx, response.ErrConflict("SUBMISSION_GRADED", err))
	case errors.Is(err, service.ErrAlreadyRegistered):
		response.RenderErr(ctx, response.ErrConflict("ALREADY_REGISTERED", err))
	case errors.Is(err, service.ErrConsistencyViolation):
		response.RenderErr(ctx, response.ErrConflict("CONSISTENCY_VIOLATION", err))
	case errors.Is(err, service.ErrProfileWriteFailed):
		response.RenderErr(ctx, response.ErrUnprocessable("PROFILE_WRITE_FAILED", err))
	case errors.Is(err, service.ErrIdentityCreationFailed):
		response.RenderErr(ctx, response.ErrBadGateway("IDENTITY_CREATION_FAILED", err))
	default:
		observability.CaptureErr(wrapped)
		response.RenderErr(ctx, response.ErrInternalServerError(wrapped))
	}
}
