package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/application/admin"
)

// AdminHandler serves cross-tenant aggregation for platform operators. The
// route group is behind the admin guard; the service checks the role again.
type AdminHandler struct {
	svc *admin.Service
}

// NewAdminHandler creates the admin handler
func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// SearchLeads aggregates leads across the allow-listed tenants
func (h *AdminHandler) SearchLeads(c *gin.Context) {
	var q admin.LeadQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		respondValidation(c, err)
		return
	}
	result, err := h.svc.AggregateLeads(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type overviewRequest struct {
	TenantIDs []uuid.UUID `json:"tenant_ids" binding:"required"`
}

// Overview returns headline numbers for the allow-listed tenants
func (h *AdminHandler) Overview(c *gin.Context) {
	var req overviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	summaries, err := h.svc.Overview(c.Request.Context(), req.TenantIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenants": summaries})
}
