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

// ErrProductNotFound возвращается, когда товар не найден.
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository отвечает за категории, подкатегории, авторов и товары.
type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories возвращает все категории.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, name, description, created_at, updated_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list categories %w", err)
	}
	return categories, nil
}

// ListSubCategories возвращает все подкатегории.
func (r *CatalogRepository) ListSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	err := r.db.SelectContext(ctx, &subCategories, `
		SELECT id, name, description, category_id, created_at, updated_at
		FROM sub_categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list subcategories %w", err)
	}
	return subCategories, nil
}

// ListAuthors возвращает всех авторов.
func (r *CatalogRepository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	err := r.db.SelectContext(ctx, &authors, `
		SELECT id, first_name, last_name, biography FROM authors ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list authors %w", err)
	}
	return authors, nil
}

// ListProducts возвращает все товары.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.SelectContext(ctx, &products, `
		SELECT id, name, picture, category_id, sub_category_id, price, description, stock_quantity, created_at, updated_at
		FROM products ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list products %w", err)
	}
	return products, nil
}

// FilterProducts возвращает товары, подходящие под фильтр по цене и категориям.
func (r *CatalogRepository) FilterProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := `
		SELECT id, name, picture, category_id, sub_category_id, price, description, stock_quantity, created_at, updated_at
		FROM products WHERE TRUE
	`
	args := []interface{}{}
	argNum := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(` AND category_id = $%d`, argNum)
		args = append(args, *filter.CategoryID)
		argNum++
	}
	if filter.SubCategoryID != nil {
		query += fmt.Sprintf(` AND sub_category_id = $%d`, argNum)
		args = append(args, *filter.SubCategoryID)
		argNum++
	}
	if filter.MinPrice != nil {
		query += fmt.Sprintf(` AND price >= $%d`, argNum)
		args = append(args, *filter.MinPrice)
		argNum++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(` AND price <= $%d`, argNum)
		args = append(args, *filter.MaxPrice)
		argNum++
	}

	query += ` ORDER BY created_at DESC`

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("catalog repository: filter products %w", err)
	}
	return products, nil
}

// GetProductByID возвращает товар по идентификатору.
func (r *CatalogRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.GetContext(ctx, &product, `
		SELECT id, name, picture, category_id, sub_category_id, price, description, stock_quantity, created_at, updated_at
		FROM products WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog repository: get product %w", err)
	}
	return &product, nil
}

// CreateProduct создаёт товар.
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, picture, category_id, sub_category_id, price, description, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		product.Name, product.Picture, product.CategoryID, product.SubCategoryID,
		product.Price, product.Description, product.StockQuantity,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return fmt.Errorf("catalog repository: create product %w", err)
	}

	return nil
}

// ProductUpdate описывает частичное обновление товара. nil поле не меняется.
type ProductUpdate struct {
	Name          *string
	Price         *float64
	Description   *string
	StockQuantity *int
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
}

// UpdateProduct обновляет заполненные поля товара одним запросом.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, id uuid.UUID, upd ProductUpdate) (*models.Product, error) {
	var product models.Product
	err := r.db.GetContext(ctx, &product, `
		UPDATE products SET
			name = COALESCE($1, name),
			price = COALESCE($2, price),
			description = COALESCE($3, description),
			stock_quantity = COALESCE($4, stock_quantity),
			category_id = COALESCE($5, category_id),
			sub_category_id = COALESCE($6, sub_category_id),
			updated_at = NOW()
		WHERE id = $7
		RETURNING id, name, picture, category_id, sub_category_id, price, description, stock_quantity, created_at, updated_at
	`, upd.Name, upd.Price, upd.Description, upd.StockQuantity, upd.CategoryID, upd.SubCategoryID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog repository: update product %w", err)
	}
	return &product, nil
}
