package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/http/handlers/common"
	"github.com/ignatzorin/bookstore-backend/internal/http/response"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/service"
)

// CartHandler предоставляет HTTP слой корзины.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler создаёт хэндлер.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get обрабатывает GET /api/cart/ — корзина текущего пользователя.
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	cart, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// AddItem обрабатывает POST /api/cart/items/.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Quantity  int       `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поля product_id и quantity обязательны", apperror.ErrCodeValidationFailed)
		return
	}

	item, err := h.carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// RemoveItem обрабатывает DELETE /api/cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "идентификатор должен быть UUID", apperror.ErrCodeValidationFailed)
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "позиция удалена из корзины"})
}

// ListAll обрабатывает GET /api/carts_admin/. Только для администраторов.
func (h *CartHandler) ListAll(c *gin.Context) {
	carts, err := h.carts.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, carts)
}
