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

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound возвращается, когда сессия по refresh токену не найдена.
var ErrSessionNotFound = errors.New("session not found")

const userColumns = `id, email, phone_number, username, first_name, last_name, photo_path,
	password_hash, auth_type, auth_status, role, last_login_at, created_at, updated_at`

// UserRepository отвечает за таблицы users и user_sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя в статусе new без пароля.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, phone_number, auth_type, auth_status, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Email, user.PhoneNumber, user.AuthType, user.AuthStatus, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}

	return &user, nil
}

// GetByIdentifier ищет пользователя по точному совпадению email или телефона
// без учёта регистра.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1) OR LOWER(phone_number) = LOWER($1)
	`
	if err := r.db.GetContext(ctx, &user, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by identifier %w", err)
	}

	return &user, nil
}

// GetByUsername возвращает пользователя по username без учёта регистра.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by username %w", err)
	}

	return &user, nil
}

// ExistsByIdentifier проверяет, занят ли идентификатор (email или телефон).
func (r *UserRepository) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM users
		WHERE LOWER(email) = LOWER($1) OR LOWER(phone_number) = LOWER($1)
	`
	if err := r.db.GetContext(ctx, &count, query, identifier); err != nil {
		return false, fmt.Errorf("user repository: exists by identifier %w", err)
	}
	return count > 0, nil
}

// AdvanceStatus атомарно переводит пользователя из fromStatus в toStatus.
// Возвращает true, если переход состоялся; false — если статус уже другой.
// Условный UPDATE защищает от гонки при двойной отправке запроса.
func (r *UserRepository) AdvanceStatus(ctx context.Context, userID uuid.UUID, fromStatus, toStatus models.AuthStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET auth_status = $1, updated_at = NOW()
		WHERE id = $2 AND auth_status = $3
	`, toStatus, userID, fromStatus)
	if err != nil {
		return false, fmt.Errorf("user repository: advance status %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("user repository: advance status rows affected %w", err)
	}

	return affected > 0, nil
}

// ProfileUpdate описывает частичное обновление профиля.
// nil поле означает «не менять».
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Username     *string
	PasswordHash *string
}

// UpdateProfile обновляет заполненные поля профиля одним запросом.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			username = COALESCE($3, username),
			password_hash = COALESCE($4, password_hash),
			updated_at = NOW()
		WHERE id = $5
	`, upd.FirstName, upd.LastName, upd.Username, upd.PasswordHash, userID)
	if err != nil {
		return fmt.Errorf("user repository: update profile %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: update profile rows affected %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword сохраняет новый хеш пароля.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("user repository: update password %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: update password rows affected %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePhoto сохраняет путь к фото и переводит статус в photo_step.
func (r *UserRepository) UpdatePhoto(ctx context.Context, userID uuid.UUID, photoPath string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET photo_path = $1, auth_status = $2, updated_at = NOW() WHERE id = $3
	`, photoPath, models.AuthStatusPhotoStep, userID)
	if err != nil {
		return fmt.Errorf("user repository: update photo %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: update photo rows affected %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLoginAt обновляет время последнего входа пользователя.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("user repository: update last login at %w", err)
	}

	return nil
}

// CreateSession сохраняет новую сессию пользователя.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		session.UserID,
		session.RefreshToken,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// SessionExists сообщает, жива ли сессия по refresh токену.
func (r *UserRepository) SessionExists(ctx context.Context, refreshToken string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_sessions WHERE refresh_token = $1 AND expires_at > NOW()`
	if err := r.db.GetContext(ctx, &count, query, refreshToken); err != nil {
		return false, fmt.Errorf("user repository: session exists %w", err)
	}
	return count > 0, nil
}

// DeleteSession удаляет сессию по refresh токену. Отсутствие строки — ошибка:
// повторный logout по тому же токену должен завершаться неуспехом.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE refresh_token = $1`, refreshToken)
	if err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("user repository: delete session rows affected %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
