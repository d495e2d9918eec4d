package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopfront/internal/cart"
	"shopfront/internal/repository"
)

type CartHandler struct {
	service *cart.Service
	logger  *zap.Logger
}

func NewCartHandler(service *cart.Service, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{service: service, logger: logger}
}

// CreateCart crea un carrito vacío
// POST /v1/carts
func (h *CartHandler) CreateCart(c *gin.Context) {
	cartID := h.service.CreateCart()
	c.JSON(http.StatusCreated, CartCreatedResponse{CartID: cartID})
}

// GetCart devuelve el carrito
// GET /v1/carts/:id
func (h *CartHandler) GetCart(c *gin.Context) {
	found, err := h.service.GetCart(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "cart not found"})
		return
	}
	c.JSON(http.StatusOK, found)
}

// AddItem agrega un producto al carrito
// POST /v1/carts/:id/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	cartID := c.Param("id")
	updated, err := h.service.AddItem(c.Request.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCartNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "cart not found"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		case errors.Is(err, cart.ErrInsufficientStock):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "insufficient stock"})
		case errors.Is(err, cart.ErrProductInactive):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "product is not purchasable"})
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.logger.Error("failed to add cart item",
				zap.String("cart_id", cartID),
				zap.Int64("product_id", req.ProductID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to add item"})
		}
		return
	}

	c.JSON(http.StatusCreated, updated)
}
