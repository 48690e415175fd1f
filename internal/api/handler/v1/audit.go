package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/domain"
)

type AuditService interface {
	List(ctx context.Context, action string, limit int) ([]domain.AuditEntry, error)
}

type AuditHandler struct {
	svc AuditService
}

func NewAuditHandler(svc AuditService) *AuditHandler {
	return &AuditHandler{
		svc: svc,
	}
}

// HandleListAudit godoc
// @Summary      List audit entries, newest first
// @Tags         audit
// @Produce      json
// @Param        action   query     string  false "Filter by action, e.g. AUTH_ORPHANED_ACCOUNT"
// @Param        limit    query     int     false "Number of entries" default(100)
// @Success      200      {array}    domain.AuditEntry
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /audit [get]
// @Security     BearerAuth
func (h *AuditHandler) HandleListAudit(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit %q", raw)))
			return
		}
		limit = n
	}

	entries, err := h.svc.List(ctx.Request.Context(), ctx.Query("action"), limit)
	if err != nil {
		renderServiceErr(ctx, "HandleListAudit -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
