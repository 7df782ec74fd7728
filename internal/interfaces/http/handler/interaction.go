package handler

import (
	crmapp "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// InteractionHandler handles interaction API endpoints
type InteractionHandler struct {
	BaseHandler
	interactionService *crmapp.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(interactionService *crmapp.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
	}
}

// RegisterRoutes registers interaction routes
func (h *InteractionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	nested := rg.Group("/crm/customers/:id/interactions")
	{
		nested.POST("", h.Create)
		nested.GET("", h.ListByCustomer)
	}

	interactions := rg.Group("/crm/interactions")
	{
		interactions.GET("/:id", h.Get)
		interactions.PUT("/:id", h.Update)
		interactions.DELETE("/:id", h.Delete)
	}
}

type listInteractionsQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Create godoc
// @ID           createInteraction
// @Summary      Record an interaction
// @Description  Record an interaction for a customer. The customer's last interaction time advances when the new record is the latest one.
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        request body crmapp.CreateInteractionRequest true "Interaction creation request"
// @Success      201 {object} APIResponse[crmapp.InteractionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers/{id}/interactions [post]
func (h *InteractionHandler) Create(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req crmapp.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	interaction, err := h.interactionService.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	setVersionHeader(c, interaction.UpdatedAt)
	h.Created(c, interaction)
}

// ListByCustomer godoc
// @ID           listCustomerInteractions
// @Summary      List a customer's interactions
// @Description  Interactions for one customer, newest first. Out-of-range paging values are clamped.
// @Tags         interactions
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        page query int false "Page number, starting at 1"
// @Param        page_size query int false "Page size, 1 to 100"
// @Success      200 {object} APIResponse[[]crmapp.InteractionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/customers/{id}/interactions [get]
func (h *InteractionHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var query listInteractionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	interactions, total, err := h.interactionService.ListByCustomer(c.Request.Context(), customerID, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizedPaging(query.Page, query.PageSize)
	h.SuccessWithMeta(c, interactions, total, page, pageSize)
}

// Get godoc
// @ID           getInteraction
// @Summary      Get an interaction by ID
// @Tags         interactions
// @Produce      json
// @Param        id path string true "Interaction ID"
// @Success      200 {object} APIResponse[crmapp.InteractionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/interactions/{id} [get]
func (h *InteractionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid interaction ID")
		return
	}

	interaction, err := h.interactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	setVersionHeader(c, interaction.UpdatedAt)
	h.Success(c, interaction)
}

// Update godoc
// @ID           updateInteraction
// @Summary      Update an interaction
// @Description  Full update guarded by the version token from the If-Match header or the original_updated_at body field. The owning customer's last interaction time is recomputed afterwards.
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Interaction ID"
// @Param        If-Match header string false "Version token from a previous read"
// @Param        request body crmapp.UpdateInteractionRequest true "Interaction update request"
// @Success      200 {object} APIResponse[crmapp.InteractionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/interactions/{id} [put]
func (h *InteractionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid interaction ID")
		return
	}

	var req crmapp.UpdateInteractionRequest
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

	interaction, err := h.interactionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	setVersionHeader(c, interaction.UpdatedAt)
	h.Success(c, interaction)
}

// Delete godoc
// @ID           deleteInteraction
// @Summary      Delete an interaction
// @Description  Remove an interaction for good, guarded by the version token from the If-Match header. The owning customer's last interaction time is recomputed afterwards.
// @Tags         interactions
// @Produce      json
// @Param        id path string true "Interaction ID"
// @Param        If-Match header string false "Version token from a previous read"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /crm/interactions/{id} [delete]
func (h *InteractionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid interaction ID")
		return
	}

	version, err := parseVersionHeader(c)
	if err != nil {
		h.BadRequest(c, "Invalid If-Match header")
		return
	}

	if err := h.interactionService.Delete(c.Request.Context(), id, version); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
