package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/bookstore-backend/internal/models"
)

// ErrCartItemNotFound возвращается, когда позиция корзины не найдена.
var ErrCartItemNotFound = errors.New("позиция корзины не найдена")

// CartRepository отвечает за корзины и их позиции.
type CartRepository struct {
	db *sqlx.DB
}

func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreateByUser возвращает корзину пользователя, создавая при отсутствии.
func (r *CartRepository) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.GetContext(ctx, &cart, `
		SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.db.GetContext(ctx, &cart, `
			INSERT INTO carts (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
			RETURNING id, user_id, created_at, updated_at
		`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("cart repository: get or create %w", err)
	}

	if err := r.db.SelectContext(ctx, &cart.Items, `
		SELECT id, cart_id, product_id, quantity, created_at
		FROM cart_items WHERE cart_id = $1 ORDER BY created_at
	`, cart.ID); err != nil {
		return nil, fmt.Errorf("cart repository: list items %w", err)
	}

	return &cart, nil
}

// List возвращает все корзины (для администраторов).
func (r *CartRepository) List(ctx context.Context) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.db.SelectContext(ctx, &carts, `
		SELECT id, user_id, created_at, updated_at FROM carts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("cart repository: list %w", err)
	}
	return carts, nil
}

// AddItem добавляет товар в корзину, увеличивая количество при повторе.
func (r *CartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.GetContext(ctx, &item, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, product_id, quantity, created_at
	`, cartID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("cart repository: add item %w", err)
	}
	return &item, nil
}

// RemoveItem удаляет позицию из корзины пользователя.
func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE id = $1 AND cart_id = $2
	`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("cart repository: remove item %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cart repository: remove item rows affected %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}
