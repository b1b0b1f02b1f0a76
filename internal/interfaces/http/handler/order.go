package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/orders/backend/internal/application/order"
	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves placed orders: the customer listing, checkout and
// the admin state transition.
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", middleware.RequireAuth())
	{
		orders.GET("", h.List)
		orders.POST("", h.Confirm)
		orders.PUT("", middleware.RequireStaff(), h.UpdateState)
	}
}

// List returns the caller's placed orders, optionally filtered by id and state
func (h *OrderHandler) List(c *gin.Context) {
	var filter order.ListFilter

	if raw := c.Query("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.Fail(c, shared.ErrNotFound)
			return
		}
		filter.OrderID = id
	}
	if raw := c.Query("state"); raw != "" {
		state := order.State(raw)
		if !state.IsValid() {
			h.Fail(c, shared.ErrInvalidState)
			return
		}
		filter.State = state
	}

	userID, _ := h.currentUser(c)
	orders, err := h.orderService.ListOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, orders)
}

// confirmRequest carries the checkout arguments
type confirmOrderRequest struct {
	OrderID   string `json:"id"`
	ContactID string `json:"contact"`
}

// Confirm places the caller's basket as a new order
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req confirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}
	if req.OrderID == "" || req.ContactID == "" {
		h.Fail(c, shared.ErrMissingArguments)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.Fail(c, shared.ErrNotFound)
		return
	}
	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		h.Fail(c, shared.ErrInvalidContact)
		return
	}

	userID, _ := h.currentUser(c)
	if err := h.orderService.Confirm(c.Request.Context(), userID, orderID, contactID); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}

// updateStateRequest carries the admin state transition
type updateStateRequest struct {
	OrderID string `json:"id"`
	State   string `json:"state"`
}

// UpdateState moves an order along the fulfilment pipeline
func (h *OrderHandler) UpdateState(c *gin.Context) {
	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}
	if req.OrderID == "" || req.State == "" {
		h.Fail(c, shared.ErrMissingArguments)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.Fail(c, shared.ErrNotFound)
		return
	}

	if err := h.orderService.UpdateState(c.Request.Context(), orderID, req.State); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}
