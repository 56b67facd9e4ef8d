package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/http/handlers/common"
	"github.com/ignatzorin/bookstore-backend/internal/http/response"
	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/service"
)

// OrderHandler предоставляет HTTP слой заказов и платежей.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler создаёт хэндлер.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List обрабатывает GET /api/order/ — заказы текущего пользователя.
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	orders, err := h.orders.ListOwn(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, orders)
}

// Create обрабатывает POST /api/order/.
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	var req struct {
		Items []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required"`
		} `json:"items" binding:"required"`
		Method models.PaymentMethod `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле items обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	in := service.CreateOrderInput{Method: req.Method}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Create(c.Request.Context(), userID, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

// Get обрабатывает GET /api/order/:id — только собственный заказ.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "идентификатор должен быть UUID", apperror.ErrCodeValidationFailed)
		return
	}

	order, err := h.orders.GetOwn(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// UpdateStatus обрабатывает PATCH /api/order/:id.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "идентификатор должен быть UUID", apperror.ErrCodeValidationFailed)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поле status обязательно", apperror.ErrCodeValidationFailed)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, userID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// ListAll обрабатывает GET /api/orders_admin/. Только для администраторов.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, orders)
}

// ListAllItems обрабатывает GET /api/order_items_admin/. Только для администраторов.
func (h *OrderHandler) ListAllItems(c *gin.Context) {
	items, err := h.orders.ListAllItems(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ListPayments обрабатывает GET /api/payments_admin/. Только для администраторов.
func (h *OrderHandler) ListPayments(c *gin.Context) {
	payments, err := h.orders.ListPayments(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}
