package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CodeOrphanedIdentity marks a registration that left an identity account without a profile.
// It needs manual cleanup by an operator.
const CodeOrphanedIdentity = "ORPHANED_IDENTITY_ACCOUNT"

type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	Code       string `json:"code,omitempty"`
	ErrorMsg   string `json:"error,omitempty"`
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("code", e.Code),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, code string, err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Code:           code,
	}
	if err != nil {
		e.ErrorMsg = err.Error()
	}

	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, "BAD_REQUEST", err)
}

func ErrValidation(err error) *Err {
	return newErr(http.StatusBadRequest, "VALIDATION_FAILED", err)
}

func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, "WRONG_CREDENTIALS", err)
	e.ErrorMsg = "wrong email or password"

	return e
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "UNAUTHORIZED", err)
}

func ErrPermissionDenied(err error) *Err {
	e := newErr(http.StatusForbidden, "PERMISSION_DENIED", err)
	e.ErrorMsg = "the console is not allowed to change this record; check the store permissions of the operator account"

	return e
}

func ErrForbidden(code string, err error) *Err {
	return newErr(http.StatusForbidden, code, err)
}

func ErrNotFound(resource, field string, value any) *Err {
	return newErr(http.StatusNotFound, "NOT_FOUND", fmt.Errorf("%s with %s %v not found", resource, field, value))
}

func ErrResourceNotFound(resource string, err error) *Err {
	e := newErr(http.StatusNotFound, "NOT_FOUND", err)
	e.ErrorMsg = resource + " not found"

	return e
}

func ErrConflict(code string, err error) *Err {
	return newErr(http.StatusConflict, code, err)
}

func ErrUnprocessable(code string, err error) *Err {
	return newErr(http.StatusUnprocessableEntity, code, err)
}

func ErrBadGateway(code string, err error) *Err {
	return newErr(http.StatusBadGateway, code, err)
}

func ErrOrphanedIdentity(err error) *Err {
	return newErr(http.StatusInternalServerError, CodeOrphanedIdentity, err)
}

func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err)
	e.ErrorMsg = "internal server error"

	return e
}
