package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *crmapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *crmapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/crm/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.Search)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a new customer
// @Description  Create a new customer. The (company_name, contact_name) pair must be unique among non-deleted customers.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body crmapp.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} APIResponse[crmapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req crmapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	setVersionHeader(c, customer.UpdatedAt)
	h.Created(c, customer)
}

// Get godoc
// @ID           getCustomer
// @Summary      Get a customer by ID
// @Description  Fetch one customer. Soft-deleted customers answer 404.
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[crmapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	setVersionHeader(c, customer.UpdatedAt)
	h.Success(c, customer)
}

// Search godoc
// @ID           searchCustomers
// @Summary      Search customers
// @Description  Paged customer search. The keyword matches company or contact name case-insensitively; out-of-range paging values are clamped.
// @Tags         customers
// @Produce      json
// @Param        keyword query string false "Substring matched against company and contact name"
// @Param        status query string false "Pipeline status filter"
// @Param        industry query string false "Industry filter"
// @Param        source query string false "Acquisition source filter"
// @Param        sort_by query string false "Sort key: createdAt, updatedAt or lastInteractionAt"
// @Param        sort_dir query string false "Sort direction: asc or desc"
// @Param        page query int false "Page number, starting at 1"
// @Param        page_size query int false "Page size, 1 to 100"
// @Success      200 {object} APIResponse[[]crmapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	var req crmapp.SearchCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customers, total, err := h.customerService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizedPaging(req.Page, req.PageSize)
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Full update guarded by the version token. The expected token comes from the If-Match header or the original_updated_at body field; a stale token answers 409 carrying the current token.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        If-Match header string false "Version token from a previous read"
// @Param        request body crmapp.UpdateCustomerRequest true "Customer update request"
// @Success      200 {object} APIResponse[crmapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req crmapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	headerVersion, err := parseVersionHeader(c)
	if err != nil {
		h.BadRequest(c, "Invalid If-Match header")
		return
	}
	if headerVersion != nil {
		req.OriginalUpdatedAt = headerVersion
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	setVersionHeader(c, customer.UpdatedAt)
	h.Success(c, customer)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Soft delete guarded by the version token from the If-Match header. The customer disappears from reads and frees its name pair; its interaction history stays in place.
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        If-Match header string false "Version token from a previous read"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	version, err := parseVersionHeader(c)
	if err != nil {
		h.BadRequest(c, "Invalid If-Match header")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id, version); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// normalizedPaging mirrors the clamping the application layer applies, so
// the response meta reflects the page actually served
func normalizedPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
