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

// ReviewHandler предоставляет HTTP слой отзывов.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler создаёт хэндлер.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List обрабатывает GET /api/review/.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

// Create обрабатывает POST /api/review/.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error(), apperror.ErrCodeUnauthorized)
		return
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Comment   string    `json:"comment"`
		Rating    int       `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поля product_id и rating обязательны", apperror.ErrCodeValidationFailed)
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), userID, service.ReviewInput{
		ProductID: req.ProductID,
		Comment:   req.Comment,
		Rating:    req.Rating,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, review)
}

// Update обрабатывает PUT /api/review/:id. Чужой отзыв изменить нельзя.
func (h *ReviewHandler) Update(c *gin.Context) {
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
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Comment   string    `json:"comment"`
		Rating    int       `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "поля product_id и rating обязательны", apperror.ErrCodeValidationFailed)
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), id, userID, service.ReviewInput{
		ProductID: req.ProductID,
		Comment:   req.Comment,
		Rating:    req.Rating,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, review)
}
