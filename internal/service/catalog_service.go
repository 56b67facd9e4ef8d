package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
)

// CatalogRepository описывает зависимости CatalogService от хранилища.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListSubCategories(ctx context.Context) ([]models.SubCategory, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	FilterProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, upd repository.ProductUpdate) (*models.Product, error)
}

// CatalogService отвечает за справочники каталога и товары.
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) SubCategories(ctx context.Context) ([]models.SubCategory, error) {
	return s.repo.ListSubCategories(ctx)
}

func (s *CatalogService) Authors(ctx context.Context) ([]models.Author, error) {
	return s.repo.ListAuthors(ctx)
}

func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// FilterProducts отбирает товары по цене и категории.
func (s *CatalogService) FilterProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "min_price не может быть отрицательной")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "max_price не может быть отрицательной")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "min_price не может превышать max_price")
	}
	return s.repo.FilterProducts(ctx, filter)
}

// Product возвращает товар по идентификатору.
func (s *CatalogService) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "товар не найден")
		}
		return nil, fmt.Errorf("catalog service: загрузка товара: %w", err)
	}
	return product, nil
}

// CreateProduct добавляет товар в каталог.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Name == "" {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "название товара обязательно")
	}
	if product.Price < 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "цена не может быть отрицательной")
	}
	if product.StockQuantity < 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "остаток не может быть отрицательным")
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("catalog service: создание товара: %w", err)
	}
	return product, nil
}

// UpdateProduct частично обновляет товар.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, upd repository.ProductUpdate) (*models.Product, error) {
	if upd.Price != nil && *upd.Price < 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "цена не может быть отрицательной")
	}
	if upd.StockQuantity != nil && *upd.StockQuantity < 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "остаток не может быть отрицательным")
	}

	product, err := s.repo.UpdateProduct(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "товар не найден")
		}
		return nil, fmt.Errorf("catalog service: обновление товара: %w", err)
	}
	return product, nil
}
