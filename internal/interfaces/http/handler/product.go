package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/orders/backend/internal/application/catalog"
	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

// ProductHandler serves the public offer search
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.Search)
	rg.GET("/products/:id", h.Get)
}

// Search returns offers of active shops filtered by shop, category and a
// free-text query over name and model.
func (h *ProductHandler) Search(c *gin.Context) {
	var filter catalog.ProductFilter

	if raw := c.Query("shop_id"); raw != "" {
		shopID, err := uuid.Parse(raw)
		if err != nil {
			h.Fail(c, shared.ErrInvalidInput)
			return
		}
		filter.ShopID = shopID
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			h.Fail(c, shared.ErrInvalidInput)
			return
		}
		filter.CategoryID = categoryID
	}
	filter.Search = c.Query("search")

	offers, err := h.productService.SearchOffers(c.Request.Context(), filter)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, offers)
}

// Get returns one offer by id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Fail(c, shared.ErrNotFound)
		return
	}

	offer, err := h.productService.GetOffer(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, offer)
}
