package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus — статус платежа.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentMethod — способ оплаты.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCashOnDelivery || m == PaymentMethodCreditCard
}

// Payment — платёж, один на заказ.
type Payment struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          *uuid.UUID      `db:"user_id" json:"user_id,omitempty"`
	OrderID         uuid.UUID       `db:"order_id" json:"order_id"`
	Amount          float64         `db:"amount" json:"amount"`
	Status          PaymentStatus   `db:"status" json:"status"`
	Method          PaymentMethod   `db:"method" json:"method"`
	GatewayResponse json.RawMessage `db:"gateway_response" json:"gateway_response,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
