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

// ErrReviewNotFound возвращается, когда отзыв не найден.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository отвечает за таблицу reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// List возвращает все отзывы.
func (r *ReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT id, user_id, product_id, comment, rating, created_at, updated_at
		FROM reviews ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("review repository: list %w", err)
	}
	return reviews, nil
}

// Create создаёт отзыв.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, product_id, comment, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		review.UserID, review.ProductID, review.Comment, review.Rating,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt); err != nil {
		return fmt.Errorf("review repository: create %w", err)
	}

	return nil
}

// GetOwned возвращает отзыв по id, если он принадлежит пользователю.
func (r *ReviewRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, `
		SELECT id, user_id, product_id, comment, rating, created_at, updated_at
		FROM reviews WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("review repository: get owned %w", err)
	}
	return &review, nil
}

// Update обновляет комментарий и рейтинг отзыва.
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reviews SET comment = $1, rating = $2, updated_at = NOW() WHERE id = $3
	`, review.Comment, review.Rating, review.ID)
	if err != nil {
		return fmt.Errorf("review repository: update %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("review repository: update rows affected %w", err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
