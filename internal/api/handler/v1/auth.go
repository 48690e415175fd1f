package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/request"
	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/config"
	"github.com/sparkslearn/console/internal/ctxutil"
	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/pkg/jwthelper"
	"github.com/sparkslearn/console/internal/service"
)

var errSignupDisabled = errors.New("operator signup is disabled; ask an existing operator to create your account")

type AuthService interface {
	Signup(ctx context.Context, operator domain.Operator) (domain.Operator, error)
	Login(ctx context.Context, email, password string) (domain.Operator, error)
	GetOperator(ctx context.Context, id uint) (domain.Operator, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSignup godoc
// @Summary      Signup a new console operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   domain.Operator
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	if !h.conf.AllowSignup {
		response.RenderErr(ctx, response.ErrForbidden("SIGNUP_DISABLED", errSignupDisabled))
		return
	}

	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	operator, err := h.svc.Signup(ctx.Request.Context(), domain.Operator{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrOperatorEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOperatorEmailExists))
			return
		}

		err = fmt.Errorf("HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, operator)
}

// HandleLogin godoc
// @Summary      Login a console operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	operator, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), operator.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:    token,
		Operator: operator,
	})
}

// HandleMe godoc
// @Summary      Get the signed-in operator
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.Operator
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	id, ok := ctxutil.OperatorID(ctx.Request.Context())
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("no operator in request")))
		return
	}

	operator, err := h.svc.GetOperator(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		err = fmt.Errorf("HandleMe -> h.svc.GetOperator -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, operator)
}
