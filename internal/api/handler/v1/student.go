package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/request"
	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/export"
	"github.com/sparkslearn/console/internal/service"
)

const defaultLeaderboardLimit = 10

type StudentService interface {
	ListStudents(ctx context.Context, collegeID string) ([]domain.Student, error)
	GetStudent(ctx context.Context, id string) (domain.Student, error)
	RegisterStudent(ctx context.Context, collegeID string, student domain.Student) (service.RegistrationResult, error)
	DeleteStudents(ctx context.Context, refs []service.StudentRef) service.BulkDeleteResult
	AwardPoints(ctx context.Context, id string, points int, taskCompleted bool) (domain.Student, error)
	Leaderboard(ctx context.Context, collegeID string, limit int) ([]domain.RankedStudent, error)
	RankedRoster(ctx context.Context, collegeID string) (domain.College, []domain.RankedStudent, error)
	ArchiveSeason(ctx context.Context) (int, error)
}

type StudentDeleter interface {
	Delete(ctx context.Context, key, email string) (service.DeleteResult, error)
}

type StudentHandler struct {
	svc     StudentService
	deleter StudentDeleter
}

func NewStudentHandler(svc StudentService, deleter StudentDeleter) *StudentHandler {
	return &StudentHandler{
		svc:     svc,
		deleter: deleter,
	}
}

// HandleListStudents godoc
// @Summary      List the students of a college
// @Tags         students
// @Produce      json
// @Param        collegeID   path      string  true  "College ID"
// @Success      200      {array}    domain.Student
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges/{collegeID}/students [get]
// @Security     BearerAuth
func (h *StudentHandler) HandleListStudents(ctx *gin.Context) {
	students, err := h.svc.ListStudents(ctx.Request.Context(), ctx.Param("collegeID"))
	if err != nil {
		renderServiceErr(ctx, "HandleListStudents -> h.svc.ListStudents", err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetStudent godoc
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        studentID   path      string  true  "Student key"
// @Success      200      {object}   domain.Student
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID} [get]
// @Security     BearerAuth
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	studentID := ctx.Param("studentID")

	student, err := h.svc.GetStudent(ctx.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "ID", studentID))
			return
		}

		renderServiceErr(ctx, "HandleGetStudent -> h.svc.GetStudent", err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleRegisterStudent godoc
// @Summary      Register a student with an identity account
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        collegeID   path      string  true  "College ID"
// @Param        request   body      request.CreateStudentRequest true "request body"
// @Success      201      {object}   service.RegistrationResult
// @Success      200      {object}   service.RegistrationResult "already registered"
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /colleges/{collegeID}/students [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleRegisterStudent(ctx *gin.Context) {
	var req request.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	res, err := h.svc.RegisterStudent(ctx.Request.Context(), ctx.Param("collegeID"), domain.Student{
		Name:        req.Name,
		RollNumber:  req.RollNumber,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		renderServiceErr(ctx, "HandleRegisterStudent -> h.svc.RegisterStudent", err)
		return
	}

	status := http.StatusCreated
	if res.AlreadyRegistered {
		status = http.StatusOK
	}

	ctx.JSON(status, res)
}

// HandleDeleteStudent godoc
// @Summary      Delete a student profile
// @Description  Placeholder keys are resolved through the email query parameter.
// @Tags         students
// @Produce      json
// @Param        studentID   path      string  true  "Student key"
// @Param        email       query     string  false "Student email, required for placeholder keys"
// @Success      200      {object}   service.DeleteResult
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID} [delete]
// @Security     BearerAuth
func (h *StudentHandler) HandleDeleteStudent(ctx *gin.Context) {
	res, err := h.deleter.Delete(ctx.Request.Context(), ctx.Param("studentID"), ctx.Query("email"))
	if err != nil {
		renderServiceErr(ctx, "HandleDeleteStudent -> h.deleter.Delete", err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// HandleBulkDeleteStudents godoc
// @Summary      Delete several students
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        request   body      request.BulkDeleteRequest true "request body"
// @Success      200      {object}   service.BulkDeleteResult
// @Failure      400      {object}   response.Err
// @Router       /students/bulk-delete [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleBulkDeleteStudents(ctx *gin.Context) {
	var req request.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	refs := make([]service.StudentRef, 0, len(req.Students))
	for _, s := range req.Students {
		refs = append(refs, service.StudentRef{ID: s.ID, Email: s.Email})
	}

	ctx.JSON(http.StatusOK, h.svc.DeleteStudents(ctx.Request.Context(), refs))
}

// HandleAwardPoints godoc
// @Summary      Award points to a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        studentID   path      string  true  "Student key"
// @Param        request   body      request.AwardPointsRequest true "request body"
// @Success      200      {object}   response.PointsAwardedResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID}/points [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleAwardPoints(ctx *gin.Context) {
	var req request.AwardPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	studentID := ctx.Param("studentID")
	student, err := h.svc.AwardPoints(ctx.Request.Context(), studentID, req.Points, req.TaskCompleted)
	if err != nil {
		renderServiceErr(ctx, "HandleAwardPoints -> h.svc.AwardPoints", err)
		return
	}

	ctx.JSON(http.StatusOK, response.PointsAwardedResponse{
		Message:        "Points awarded successfully",
		StudentID:      student.ID,
		PointsAwarded:  req.Points,
		TotalPoints:    student.TotalPoints,
		TasksCompleted: student.TasksCompleted,
	})
}

// HandleLeaderboard godoc
// @Summary      Rank students by points
// @Tags         students
// @Produce      json
// @Param        college_id  query     string  false "Restrict to one college"
// @Param        limit       query     int     false "Number of entries, 0 for all" default(10)
// @Success      200      {array}    domain.RankedStudent
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /leaderboard [get]
// @Security     BearerAuth
func (h *StudentHandler) HandleLeaderboard(ctx *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit %q", raw)))
			return
		}
		limit = n
	}

	ranked, err := h.svc.Leaderboard(ctx.Request.Context(), ctx.Query("college_id"), limit)
	if err != nil {
		renderServiceErr(ctx, "HandleLeaderboard -> h.svc.Leaderboard", err)
		return
	}

	ctx.JSON(http.StatusOK, ranked)
}

// HandleArchiveSeason godoc
// @Summary      Reset points and badges of every student
// @Tags         students
// @Produce      json
// @Success      200      {object}   response.ArchiveSeasonResponse
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /season/archive [post]
// @Security     BearerAuth
func (h *StudentHandler) HandleArchiveSeason(ctx *gin.Context) {
	n, err := h.svc.ArchiveSeason(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "HandleArchiveSeason -> h.svc.ArchiveSeason", err)
		return
	}

	ctx.JSON(http.StatusOK, response.ArchiveSeasonResponse{
		Message:  "Season archived",
		Students: n,
	})
}

// HandleExportRoster godoc
// @Summary      Download the ranked roster of a college
// @Tags         students
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        collegeID   path      string  true  "College ID"
// @Param        format      query     string  false "csv or xlsx" default(csv)
// @Success      200      {file}     file
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges/{collegeID}/students/export [get]
// @Security     BearerAuth
func (h *StudentHandler) HandleExportRoster(ctx *gin.Context) {
	format, err := export.ParseFormat(ctx.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	college, ranked, err := h.svc.RankedRoster(ctx.Request.Context(), ctx.Param("collegeID"))
	if err != nil {
		renderServiceErr(ctx, "HandleExportRoster -> h.svc.RankedRoster", err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, college, ranked); err != nil {
		err = fmt.Errorf("HandleExportRoster -> export.Write -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", college.ID, time.Now().UTC().Format("20060102"), format)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
