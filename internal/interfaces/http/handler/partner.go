package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/orders/backend/internal/application/catalog"
	orderapp "github.com/orders/backend/internal/application/order"
	"github.com/orders/backend/internal/interfaces/http/middleware"
)

// PartnerHandler serves shop accounts: feed imports, the accepting-orders
// switch and the orders containing the shop's offers.
type PartnerHandler struct {
	BaseHandler
	partnerService *catalogapp.PartnerService
	orderService   *orderapp.Service
}

// NewPartnerHandler creates a partner handler
func NewPartnerHandler(partnerService *catalogapp.PartnerService, orderService *orderapp.Service) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		orderService:   orderService,
	}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner", middleware.RequireShop())
	{
		partner.POST("/update", h.Update)
		partner.GET("/state", h.GetState)
		partner.POST("/state", h.SetState)
		partner.GET("/orders", h.Orders)
	}
}

// updateRequest carries the feed URL to import
type updateRequest struct {
	URL string `json:"url"`
}

// Update queues a catalog import from the partner's feed URL
func (h *PartnerHandler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	userID, _ := h.currentUser(c)
	if err := h.partnerService.QueueImport(c.Request.Context(), req.URL, userID); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}

// GetState returns the partner's shop record
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, _ := h.currentUser(c)
	shop, err := h.partnerService.GetState(c.Request.Context(), userID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, shop)
}

// setStateRequest carries the accepting-orders flag
type setStateRequest struct {
	State string `json:"state"`
}

// SetState toggles whether the shop accepts orders
func (h *PartnerHandler) SetState(c *gin.Context) {
	var req setStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	userID, _ := h.currentUser(c)
	if err := h.partnerService.SetState(c.Request.Context(), userID, req.State); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}

// Orders returns placed orders containing the shop's offers
func (h *PartnerHandler) Orders(c *gin.Context) {
	userID, _ := h.currentUser(c)
	orders, err := h.orderService.PartnerOrders(c.Request.Context(), userID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, orders)
}
