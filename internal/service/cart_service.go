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

// CartRepository описывает зависимости CartService от хранилища.
type CartRepository interface {
	GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	List(ctx context.Context) ([]models.Cart, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
}

// CartService отвечает за корзину пользователя.
type CartService struct {
	repo    CartRepository
	catalog CatalogRepository
}

// NewCartService создаёт сервис корзины.
func NewCartService(repo CartRepository, catalog CatalogRepository) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

// Get возвращает корзину пользователя, создавая её при первом обращении.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.repo.GetOrCreateByUser(ctx, userID)
}

// ListAll возвращает все корзины. Только для администраторов.
func (s *CartService) ListAll(ctx context.Context) ([]models.Cart, error) {
	return s.repo.List(ctx)
}

// AddItem кладёт товар в корзину; повторное добавление увеличивает количество.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "количество должно быть не меньше 1")
	}

	if _, err := s.catalog.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "товар не найден")
		}
		return nil, fmt.Errorf("cart service: проверка товара: %w", err)
	}

	cart, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart service: загрузка корзины: %w", err)
	}

	item, err := s.repo.AddItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("cart service: добавление в корзину: %w", err)
	}
	return item, nil
}

// RemoveItem убирает позицию из корзины пользователя.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	cart, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("cart service: загрузка корзины: %w", err)
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return apperror.NewWithMessage(apperror.ErrCodeNotFound, "позиция корзины не найдена")
		}
		return fmt.Errorf("cart service: удаление из корзины: %w", err)
	}
	return nil
}
