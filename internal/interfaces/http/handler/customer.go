package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vendorhub/backend/internal/domain/partner"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/domain/storage"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
)

// CustomerHandler serves the customer CRUD vertical. The tenant always
// comes from the authenticated security context, never from the request
// body or path.
type CustomerHandler struct {
	store storage.Store
}

// NewCustomerHandler creates the customer handler
func NewCustomerHandler(store storage.Store) *CustomerHandler {
	return &CustomerHandler{store: store}
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

type updateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
	Email *string `json:"email" binding:"omitempty,email"`
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// callerTenant resolves the tenant id from the authenticated context
func callerTenant(c *gin.Context) (uuid.UUID, bool) {
	sc, ok := tenant.FromContext(c.Request.Context())
	if !ok || sc.TenantID == "" {
		c.JSON(http.StatusForbidden, errorBody{Code: "FORBIDDEN", Message: "tenant scope required"})
		return uuid.Nil, false
	}
	tenantID, err := uuid.Parse(sc.TenantID)
	if err != nil {
		c.JSON(http.StatusForbidden, errorBody{Code: "FORBIDDEN", Message: "tenant scope required"})
		return uuid.Nil, false
	}
	return tenantID, true
}

// parseFilter reads pagination and search query parameters
func parseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		filter.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		filter.PageSize = v
	}
	if v := c.Query("order_by"); v != "" {
		filter.OrderBy = v
	}
	if v := c.Query("order_dir"); v != "" {
		filter.OrderDir = v
	}
	filter.Search = c.Query("search")
	return filter
}

// List returns the caller's customers, paginated
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	filter := parseFilter(c)

	ctx := c.Request.Context()
	customers, err := h.store.ListCustomersByTenant(ctx, tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.store.CountCustomersByTenant(ctx, tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shared.NewPaginated(customers, total, filter.Page, filter.PageSize))
}

// Get returns one of the caller's customers
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	customer, err := h.store.GetCustomer(c.Request.Context(), tenantID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Create creates a customer for the caller's tenant
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	customer, err := h.store.CreateCustomer(c.Request.Context(), partner.CustomerPayload{
		TenantID: tenantID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// Update partially updates one of the caller's customers
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	customer, err := h.store.UpdateCustomer(c.Request.Context(), tenantID, id, partner.CustomerUpdate{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Delete removes one of the caller's customers. Deleting a missing customer
// still answers 204.
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID, ok := callerTenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	if _, err := h.store.DeleteCustomer(c.Request.Context(), tenantID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
