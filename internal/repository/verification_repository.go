package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/bookstore-backend/internal/models"
)

// VerificationRepository отвечает за таблицу verification_codes.
type VerificationRepository struct {
	db *sqlx.DB
}

func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// CreateCode сохраняет новый код подтверждения.
func (r *VerificationRepository) CreateCode(ctx context.Context, userID uuid.UUID, codeType models.AuthType, code string, expiresAt time.Time) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.GetContext(ctx, &vc, `
		INSERT INTO verification_codes (user_id, type, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, type, code, expires_at, is_confirmed, created_at
	`, userID, codeType, code, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("verification repository: create code %w", err)
	}
	return &vc, nil
}

// ConsumeCode атомарно помечает подтверждённым живой неподтверждённый код.
// Возвращает true, если ровно такой код нашёлся. Один UPDATE с условием
// вместо read-then-write: двойная отправка той же формы из двух вкладок
// подтвердит код ровно один раз.
func (r *VerificationRepository) ConsumeCode(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE verification_codes
		SET is_confirmed = TRUE
		WHERE user_id = $1 AND code = $2 AND is_confirmed = FALSE AND expires_at >= NOW()
	`, userID, code)
	if err != nil {
		return false, fmt.Errorf("verification repository: consume code %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("verification repository: consume code rows affected %w", err)
	}

	return affected > 0, nil
}

// HasLiveCode сообщает, есть ли у пользователя живой неподтверждённый код.
func (r *VerificationRepository) HasLiveCode(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM verification_codes
		WHERE user_id = $1 AND is_confirmed = FALSE AND expires_at >= NOW()
	`, userID)
	if err != nil {
		return false, fmt.Errorf("verification repository: has live code %w", err)
	}
	return count > 0, nil
}
