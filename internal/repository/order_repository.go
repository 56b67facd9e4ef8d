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

// ErrOrderNotFound возвращается, когда заказ не найден.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository отвечает за заказы и их позиции.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create создаёт заказ вместе с позициями в одной транзакции.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("order repository: begin tx %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowxContext(ctx, `
		INSERT INTO orders (user_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, order.UserID, order.TotalPrice, order.Status).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("order repository: create order %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowxContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID, &item.CreatedAt); err != nil {
			return fmt.Errorf("order repository: create order item %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("order repository: commit %w", err)
	}

	return nil
}

// List возвращает все заказы (для администраторов).
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, total_price, status, created_at, updated_at
		FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("order repository: list %w", err)
	}
	return orders, nil
}

// ListByUser возвращает заказы пользователя.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, total_price, status, created_at, updated_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("order repository: list by user %w", err)
	}
	return orders, nil
}

// GetOwned возвращает заказ с позициями, если он принадлежит пользователю.
func (r *OrderRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.GetContext(ctx, &order, `
		SELECT id, user_id, total_price, status, created_at, updated_at
		FROM orders WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: get owned %w", err)
	}

	if err := r.db.SelectContext(ctx, &order.Items, `
		SELECT id, order_id, product_id, quantity, price, created_at
		FROM order_items WHERE order_id = $1
	`, order.ID); err != nil {
		return nil, fmt.Errorf("order repository: get order items %w", err)
	}

	return &order, nil
}

// UpdateStatus обновляет статус заказа пользователя.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := r.db.GetContext(ctx, &order, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, total_price, status, created_at, updated_at
	`, status, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: update status %w", err)
	}
	return &order, nil
}

// ListItems возвращает все позиции заказов (для администраторов).
func (r *OrderRepository) ListItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, order_id, product_id, quantity, price, created_at
		FROM order_items ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("order repository: list items %w", err)
	}
	return items, nil
}
