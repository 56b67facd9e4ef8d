package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/http/response"
	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
	"github.com/ignatzorin/bookstore-backend/internal/service"
)

// CatalogHandler предоставляет HTTP слой каталога.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler создаёт хэндлер.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories обрабатывает GET /api/category/.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// ListSubCategories обрабатывает GET /api/subcategory/.
func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	subCategories, err := h.catalog.SubCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, subCategories)
}

// ListAuthors обрабатывает GET /api/author/.
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	authors, err := h.catalog.Authors(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, authors)
}

// ListProducts обрабатывает GET /api/product/.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// GetProduct обрабатывает GET /api/product/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "идентификатор должен быть UUID", apperror.ErrCodeValidationFailed)
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// FilterProducts обрабатывает GET /api/product_filter/.
// Параметры: min_price, max_price, category_id, subcategory_id.
func (h *CatalogHandler) FilterProducts(c *gin.Context) {
	var filter models.ProductFilter

	if raw := c.Query("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "min_price должна быть числом", apperror.ErrCodeValidationFailed)
			return
		}
		filter.MinPrice = &value
	}
	if raw := c.Query("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "max_price должна быть числом", apperror.ErrCodeValidationFailed)
			return
		}
		filter.MaxPrice = &value
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "category_id должен быть UUID", apperror.ErrCodeValidationFailed)
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("subcategory_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "subcategory_id должен быть UUID", apperror.ErrCodeValidationFailed)
			return
		}
		filter.SubCategoryID = &id
	}

	products, err := h.catalog.FilterProducts(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// CreateProduct обрабатывает POST /api/product/. Только для администраторов.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name          string     `json:"name" binding:"required"`
		Price         float64    `json:"price"`
		Description   string     `json:"description"`
		StockQuantity int        `json:"stock_quantity"`
		CategoryID    *uuid.UUID `json:"category_id"`
		SubCategoryID *uuid.UUID `json:"sub_category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "некорректное тело запроса", apperror.ErrCodeValidationFailed)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &models.Product{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, product)
}

// UpdateProduct обрабатывает PATCH /api/product/:id. Только для администраторов.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "идентификатор должен быть UUID", apperror.ErrCodeValidationFailed)
		return
	}

	var req struct {
		Name          *string    `json:"name"`
		Price         *float64   `json:"price"`
		Description   *string    `json:"description"`
		StockQuantity *int       `json:"stock_quantity"`
		CategoryID    *uuid.UUID `json:"category_id"`
		SubCategoryID *uuid.UUID `json:"sub_category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "некорректное тело запроса", apperror.ErrCodeValidationFailed)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, repository.ProductUpdate{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, product)
}
