package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/request"
	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/domain"
)

type WorkshopService interface {
	CreateWorkshop(ctx context.Context, w domain.Workshop) (domain.Workshop, error)
	ListWorkshops(ctx context.Context, collegeID string) ([]domain.Workshop, error)
	Submit(ctx context.Context, workshopID, studentID, content string) (domain.Submission, error)
	ListSubmissions(ctx context.Context, workshopID string, status domain.SubmissionStatus) ([]domain.Submission, error)
	GradeSubmission(ctx context.Context, id string, grade domain.Grade) (domain.Submission, error)
}

type WorkshopHandler struct {
	svc WorkshopService
}

func NewWorkshopHandler(svc WorkshopService) *WorkshopHandler {
	return &WorkshopHandler{
		svc: svc,
	}
}

// HandleCreateWorkshop godoc
// @Summary      Create a workshop for a college
// @Tags         workshops
// @Accept       json
// @Produce      json
// @Param        collegeID   path      string  true  "College ID"
// @Param        request   body      request.CreateWorkshopRequest true "request body"
// @Success      201      {object}   domain.Workshop
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges/{collegeID}/workshops [post]
// @Security     BearerAuth
func (h *WorkshopHandler) HandleCreateWorkshop(ctx *gin.Context) {
	var req request.CreateWorkshopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	workshop, err := h.svc.CreateWorkshop(ctx.Request.Context(), domain.Workshop{
		Title:     req.Title,
		CollegeID: ctx.Param("collegeID"),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.WorkshopStatus(req.Status),
		MaxPoints: req.MaxPoints,
	})
	if err != nil {
		renderServiceErr(ctx, "HandleCreateWorkshop -> h.svc.CreateWorkshop", err)
		return
	}

	ctx.JSON(http.StatusCreated, workshop)
}

// HandleListWorkshops godoc
// @Summary      List workshops, optionally of one college
// @Tags         workshops
// @Produce      json
// @Param        college_id   query      string  false  "College ID"
// @Success      200      {array}    domain.Workshop
// @Failure      500      {object}   response.Err
// @Router       /workshops [get]
// @Security     BearerAuth
func (h *WorkshopHandler) HandleListWorkshops(ctx *gin.Context) {
	workshops, err := h.svc.ListWorkshops(ctx.Request.Context(), ctx.Query("college_id"))
	if err != nil {
		renderServiceErr(ctx, "HandleListWorkshops -> h.svc.ListWorkshops", err)
		return
	}

	ctx.JSON(http.StatusOK, workshops)
}

// HandleSubmitWork godoc
// @Summary      Record a student's submission for a workshop
// @Tags         workshops
// @Accept       json
// @Produce      json
// @Param        workshopID   path      string  true  "Workshop ID"
// @Param        request   body      request.SubmitWorkRequest true "request body"
// @Success      201      {object}   domain.Submission
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /workshops/{workshopID}/submissions [post]
// @Security     BearerAuth
func (h *WorkshopHandler) HandleSubmitWork(ctx *gin.Context) {
	var req request.SubmitWorkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	submission, err := h.svc.Submit(ctx.Request.Context(), ctx.Param("workshopID"), req.StudentID, req.Content)
	if err != nil {
		renderServiceErr(ctx, "HandleSubmitWork -> h.svc.Submit", err)
		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// HandleListSubmissions godoc
// @Summary      List submissions of a workshop
// @Tags         workshops
// @Produce      json
// @Param        workshopID   path      string  true  "Workshop ID"
// @Param        status   query      string  false  "Pending, Approved or Rejected"
// @Success      200      {array}    domain.Submission
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /workshops/{workshopID}/submissions [get]
// @Security     BearerAuth
func (h *WorkshopHandler) HandleListSubmissions(ctx *gin.Context) {
	status := domain.SubmissionStatus(ctx.Query("status"))

	submissions, err := h.svc.ListSubmissions(ctx.Request.Context(), ctx.Param("workshopID"), status)
	if err != nil {
		renderServiceErr(ctx, "HandleListSubmissions -> h.svc.ListSubmissions", err)
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandleGradeSubmission godoc
// @Summary      Approve or reject a pending submission
// @Description  Approval awards the score to the student as a completed task.
// @Tags         workshops
// @Accept       json
// @Produce      json
// @Param        submissionID   path      string  true  "Submission ID"
// @Param        request   body      request.GradeSubmissionRequest true "request body"
// @Success      200      {object}   domain.Submission
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /submissions/{submissionID}/grade [post]
// @Security     BearerAuth
func (h *WorkshopHandler) HandleGradeSubmission(ctx *gin.Context) {
	var req request.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	submission, err := h.svc.GradeSubmission(ctx.Request.Context(), ctx.Param("submissionID"), domain.Grade{
		Approve:  req.Decision == request.DecisionApprove,
		Score:    req.Score,
		Feedback: req.Feedback,
	})
	if err != nil {
		renderServiceErr(ctx, "HandleGradeSubmission -> h.svc.GradeSubmission", err)
		return
	}

	ctx.JSON(http.StatusOK, submission)
}
