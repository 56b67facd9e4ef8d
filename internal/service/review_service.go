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

// ReviewRepository описывает зависимости ReviewService от хранилища.
type ReviewRepository interface {
	List(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
}

// ReviewService отвечает за отзывы о товарах.
type ReviewService struct {
	repo    ReviewRepository
	catalog CatalogRepository
}

// ReviewInput — данные нового или обновляемого отзыва.
type ReviewInput struct {
	ProductID uuid.UUID
	Comment   string
	Rating    int
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(repo ReviewRepository, catalog CatalogRepository) *ReviewService {
	return &ReviewService{repo: repo, catalog: catalog}
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.repo.List(ctx)
}

// Create добавляет отзыв от имени пользователя.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, in ReviewInput) (*models.Review, error) {
	if err := validateReview(in); err != nil {
		return nil, err
	}

	if _, err := s.catalog.GetProductByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "товар не найден")
		}
		return nil, fmt.Errorf("review service: проверка товара: %w", err)
	}

	review := &models.Review{
		UserID:    &userID,
		ProductID: &in.ProductID,
		Comment:   in.Comment,
		Rating:    in.Rating,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("review service: создание отзыва: %w", err)
	}
	return review, nil
}

// Update меняет отзыв. Чужой отзыв редактировать нельзя.
func (s *ReviewService) Update(ctx context.Context, id, userID uuid.UUID, in ReviewInput) (*models.Review, error) {
	if err := validateReview(in); err != nil {
		return nil, err
	}

	review, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "отзыв не найден")
		}
		return nil, fmt.Errorf("review service: загрузка отзыва: %w", err)
	}

	review.ProductID = &in.ProductID
	review.Comment = in.Comment
	review.Rating = in.Rating

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("review service: обновление отзыва: %w", err)
	}
	return review, nil
}

func validateReview(in ReviewInput) error {
	if in.ProductID == uuid.Nil {
		return apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "не указан товар")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "оценка должна быть от 1 до 5")
	}
	return nil
}
