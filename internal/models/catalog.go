package models

import (
	"time"

	"github.com/google/uuid"
)

// Category — категория каталога.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SubCategory — подкатегория, принадлежит категории.
type SubCategory struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	CategoryID  *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Author — автор товара (книги).
type Author struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Biography *string   `db:"biography" json:"biography,omitempty"`
}

// Product — товар каталога.
type Product struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Picture       *string    `db:"picture" json:"picture,omitempty"`
	CategoryID    *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	SubCategoryID *uuid.UUID `db:"sub_category_id" json:"sub_category_id,omitempty"`
	Price         float64    `db:"price" json:"price"`
	Description   string     `db:"description" json:"description"`
	StockQuantity int        `db:"stock_quantity" json:"stock_quantity"`
	Authors       []Author   `db:"-" json:"authors,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Review — отзыв пользователя о товаре.
type Review struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	ProductID *uuid.UUID `db:"product_id" json:"product_id,omitempty"`
	Comment   string     `db:"comment" json:"comment"`
	Rating    int        `db:"rating" json:"rating"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// ProductFilter — параметры фильтрации товаров.
type ProductFilter struct {
	MinPrice      *float64
	MaxPrice      *float64
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
}
