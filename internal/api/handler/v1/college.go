package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/request"
	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/service"
)

type CollegeService interface {
	CreateCollege(ctx context.Context, college domain.College) (domain.College, error)
	ListColleges(ctx context.Context) ([]domain.College, error)
	GetCollege(ctx context.Context, id string) (domain.College, error)
	UpdateCollegeStatus(ctx context.Context, id string, status domain.CollegeStatus) (domain.College, error)
}

type CollegeHandler struct {
	svc CollegeService
}

func NewCollegeHandler(svc CollegeService) *CollegeHandler {
	return &CollegeHandler{
		svc: svc,
	}
}

// HandleListColleges godoc
// @Summary      List colleges with their student counts
// @Tags         colleges
// @Produce      json
// @Success      200      {array}    domain.College
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges [get]
// @Security     BearerAuth
func (h *CollegeHandler) HandleListColleges(ctx *gin.Context) {
	colleges, err := h.svc.ListColleges(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleListColleges -> h.svc.ListColleges", err)
		return
	}

	ctx.JSON(http.StatusOK, colleges)
}

// HandleGetCollege godoc
// @Summary      Get a college
// @Tags         colleges
// @Produce      json
// @Param        collegeID   path      string  true  "College ID"
// @Success      200      {object}   domain.College
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges/{collegeID} [get]
// @Security     BearerAuth
func (h *CollegeHandler) HandleGetCollege(ctx *gin.Context) {
	collegeID := ctx.Param("collegeID")

	college, err := h.svc.GetCollege(ctx.Request.Context(), collegeID)
	if err != nil {
		if errors.Is(err, service.ErrCollegeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("college", "ID", collegeID))
			return
		}

		renderServiceErr(ctx, "HandleGetCollege -> h.svc.GetCollege", err)
		return
	}

	ctx.JSON(http.StatusOK, college)
}

// HandleCreateCollege godoc
// @Summary      Create a college
// @Tags         colleges
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateCollegeRequest true "request body"
// @Success      201      {object}   domain.College
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges [post]
// @Security     BearerAuth
func (h *CollegeHandler) HandleCreateCollege(ctx *gin.Context) {
	var req request.CreateCollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	college, err := h.svc.CreateCollege(ctx.Request.Context(), domain.College{
		Name:      req.Name,
		Location:  req.Location,
		AdminName: req.AdminName,
	})
	if err != nil {
		renderServiceErr(ctx, "HandleCreateCollege -> h.svc.CreateCollege", err)
		return
	}

	ctx.JSON(http.StatusCreated, college)
}

// HandleUpdateCollegeStatus godoc
// @Summary      Activate or deactivate a college
// @Tags         colleges
// @Accept       json
// @Produce      json
// @Param        collegeID   path      string  true  "College ID"
// @Param        request   body      request.UpdateCollegeStatusRequest true "request body"
// @Success      200      {object}   domain.College
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges/{collegeID}/status [patch]
// @Security     BearerAuth
func (h *CollegeHandler) HandleUpdateCollegeStatus(ctx *gin.Context) {
	var req request.UpdateCollegeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	college, err := h.svc.UpdateCollegeStatus(ctx.Request.Context(), ctx.Param("collegeID"), domain.CollegeStatus(req.Status))
	if err != nil {
		renderServiceErr(ctx, "HandleUpdateCollegeStatus -> h.svc.UpdateCollegeStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, college)
}
