package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/vendorhub/backend/internal/application/catalog"
	domaincatalog "github.com/vendorhub/backend/internal/domain/catalog"
)

// CategoryHandler serves shared category reference data through the cached
// category service
type CategoryHandler struct {
	svc *appcatalog.CategoryService
}

// NewCategoryHandler creates the category handler
func NewCategoryHandler(svc *appcatalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// List returns global categories plus the caller's own
func (h *CategoryHandler) List(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	categories, err := h.svc.ListForTenant(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Create creates a tenant-authored category
func (h *CategoryHandler) Create(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	category, err := h.svc.Create(c.Request.Context(), domaincatalog.CategoryPayload{
		Name:      req.Name,
		CreatedBy: &tenantID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete removes a category. Deleting a missing one still answers 204.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if _, ok := callerTenant(c); !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	if _, err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
