package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusPaid      OrderStatus = "paid"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusShipped, OrderStatusDelivered, OrderStatusPaid:
		return true
	}
	return false
}

// Order — заказ пользователя.
type Order struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	UserID     uuid.UUID   `db:"user_id" json:"user_id"`
	TotalPrice float64     `db:"total_price" json:"total_price"`
	Status     OrderStatus `db:"status" json:"status"`
	Items      []OrderItem `db:"-" json:"items,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}

// OrderItem — позиция заказа.
type OrderItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OrderID   uuid.UUID `db:"order_id" json:"order_id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Cart — корзина, одна на пользователя.
type Cart struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Items     []CartItem `db:"-" json:"items,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// CartItem — позиция корзины.
type CartItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CartID    uuid.UUID `db:"cart_id" json:"cart_id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
