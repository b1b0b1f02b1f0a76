package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/orders/backend/internal/application/order"
	"github.com/orders/backend/internal/interfaces/http/middleware"
)

// BasketHandler serves the caller's basket
type BasketHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewBasketHandler creates a basket handler
func NewBasketHandler(orderService *orderapp.Service) *BasketHandler {
	return &BasketHandler{orderService: orderService}
}

// RegisterRoutes registers basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket", middleware.RequireAuth())
	{
		basket.GET("", h.Get)
		basket.POST("", h.AddItems)
		basket.PUT("", h.UpdateQuantities)
		basket.DELETE("", h.RemoveItems)
	}
}

// Get returns the caller's basket, as a list for client compatibility
func (h *BasketHandler) Get(c *gin.Context) {
	userID, _ := h.currentUser(c)
	baskets, err := h.orderService.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, baskets)
}

// addItemsRequest carries the basket lines to create
type addItemsRequest struct {
	Items []orderapp.AddItemInput `json:"items"`
}

// AddItems adds offers to the basket, reporting per-line failures
func (h *BasketHandler) AddItems(c *gin.Context) {
	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	userID, _ := h.currentUser(c)
	result, err := h.orderService.AddItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.Fail(c, err)
		return
	}

	extra := map[string]any{"objects_created": result.Created}
	if len(result.Errors) > 0 {
		extra["errors"] = result.Errors
	}
	h.OK(c, extra)
}

// updateQuantitiesRequest carries the basket line quantity changes
type updateQuantitiesRequest struct {
	Items []orderapp.QuantityUpdate `json:"items"`
}

// UpdateQuantities sets quantities of basket lines
func (h *BasketHandler) UpdateQuantities(c *gin.Context) {
	var req updateQuantitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	userID, _ := h.currentUser(c)
	updated, err := h.orderService.UpdateQuantities(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, map[string]any{"objects_updated": updated})
}

// removeItemsRequest carries the offers to drop from the basket
type removeItemsRequest struct {
	Items []orderapp.RemoveItemInput `json:"items"`
}

// RemoveItems deletes basket lines by offer id
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	var req removeItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	userID, _ := h.currentUser(c)
	deleted, err := h.orderService.RemoveItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, map[string]any{"deleted_count": deleted})
}
