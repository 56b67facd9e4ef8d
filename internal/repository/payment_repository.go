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

// ErrPaymentNotFound возвращается, когда платёж не найден.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository отвечает за таблицу payments.
type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create создаёт платёж по заказу.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (user_id, order_id, amount, status, method, gateway_response)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		payment.UserID, payment.OrderID, payment.Amount,
		payment.Status, payment.Method, payment.GatewayResponse,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return fmt.Errorf("payment repository: create %w", err)
	}

	return nil
}

// List возвращает все платежи (для администраторов).
func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.SelectContext(ctx, &payments, `
		SELECT id, user_id, order_id, amount, status, method, gateway_response, created_at, updated_at
		FROM payments ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("payment repository: list %w", err)
	}
	return payments, nil
}

// GetByOrderID возвращает платёж по заказу.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.GetContext(ctx, &payment, `
		SELECT id, user_id, order_id, amount, status, method, gateway_response, created_at, updated_at
		FROM payments WHERE order_id = $1
	`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("payment repository: get by order id %w", err)
	}
	return &payment, nil
}

// UpdateStatus обновляет статус платежа.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("payment repository: update status %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("payment repository: update status rows affected %w", err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
