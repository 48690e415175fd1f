package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/domain"
)

const importFormField = "file"

var errEmptyUpload = errors.New("no CSV content uploaded")

type ImportService interface {
	Import(ctx context.Context, collegeID, text string) (domain.ImportReport, error)
	Preview(ctx context.Context, collegeID, text string) (domain.ImportBatch, error)
}

type ImportHandler struct {
	svc      ImportService
	maxBytes int64
}

func NewImportHandler(svc ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{
		svc:      svc,
		maxBytes: maxBytes,
	}
}

// HandleImport godoc
// @Summary      Import a CSV roster into a college
// @Description  Accepts a multipart form with a "file" field or a raw text/csv body.
// @Tags         import
// @Accept       multipart/form-data
// @Accept       text/csv
// @Produce      json
// @Param        collegeID   path      string  true  "College ID"
// @Param        file        formData  file    false "CSV roster"
// @Param        dry_run     query     bool    false "Only reconcile, returning the batch"
// @Success      200      {object}   domain.ImportReport
// @Success      202      {object}   domain.ImportBatch "dry run"
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      413      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /colleges/{collegeID}/students/import [post]
// @Security     BearerAuth
func (h *ImportHandler) HandleImport(ctx *gin.Context) {
	text, err := h.readUpload(ctx)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RenderErr(ctx, &response.Err{
				Err:            err,
				HTTPStatusCode: http.StatusRequestEntityTooLarge,
				StatusText:     http.StatusText(http.StatusRequestEntityTooLarge),
				Code:           "UPLOAD_TOO_LARGE",
				ErrorMsg:       fmt.Sprintf("upload exceeds %d bytes", h.maxBytes),
			})
			return
		}

		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if ctx.Query("dry_run") == "true" {
		batch, err := h.svc.Preview(ctx.Request.Context(), ctx.Param("collegeID"), text)
		if err != nil {
			renderServiceErr(ctx, "HandleImport -> h.svc.Preview", err)
			return
		}

		ctx.JSON(http.StatusAccepted, batch)
		return
	}

	report, err := h.svc.Import(ctx.Request.Context(), ctx.Param("collegeID"), text)
	if err != nil {
		renderServiceErr(ctx, "HandleImport -> h.svc.Import", err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

func (h *ImportHandler) readUpload(ctx *gin.Context) (string, error) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxBytes)

	var r io.Reader = ctx.Request.Body
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fh, err := ctx.FormFile(importFormField)
		if err != nil {
			return "", fmt.Errorf("ctx.FormFile -> %w", err)
		}

		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("fh.Open -> %w", err)
		}
		defer f.Close()
		r = f
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll -> %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return "", errEmptyUpload
	}

	return string(b), nil
}
