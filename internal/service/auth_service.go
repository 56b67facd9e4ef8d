package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/notify"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
	"github.com/ignatzorin/bookstore-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByIdentifier(ctx context.Context, identifier string) (bool, error)
	AdvanceStatus(ctx context.Context, userID uuid.UUID, fromStatus, toStatus models.AuthStatus) (bool, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd repository.ProfileUpdate) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdatePhoto(ctx context.Context, userID uuid.UUID, photoPath string) error
	UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error
	CreateSession(ctx context.Context, session *models.Session) error
	SessionExists(ctx context.Context, refreshToken string) (bool, error)
	DeleteSession(ctx context.Context, refreshToken string) error
}

// VerificationStore описывает хранилище одноразовых кодов.
type VerificationStore interface {
	CreateCode(ctx context.Context, userID uuid.UUID, codeType models.AuthType, code string, expiresAt time.Time) (*models.VerificationCode, error)
	ConsumeCode(ctx context.Context, userID uuid.UUID, code string) (bool, error)
	HasLiveCode(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Notifier ставит отправку кода в очередь, не блокируя запрос.
type Notifier interface {
	Dispatch(task notify.Task)
}

// AuthService инкапсулирует жизненный цикл аккаунта: регистрацию,
// подтверждение кода, заполнение профиля, вход и работу с токенами.
type AuthService struct {
	repo         AuthRepository
	codes        VerificationStore
	notifier     Notifier
	tokenManager *TokenManager

	emailCodeTTL time.Duration
	phoneCodeTTL time.Duration
}

// ProfileInput содержит изменяемые поля профиля. Nil-поле не трогается
// при частичном обновлении и считается пропущенным при полном.
type ProfileInput struct {
	FirstName       *string
	LastName        *string
	Username        *string
	Password        *string
	ConfirmPassword *string
}

// AuthResult возвращает итог операции аутентификации.
type AuthResult struct {
	User      *models.User
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(
	repo AuthRepository,
	codes VerificationStore,
	notifier Notifier,
	tokenManager *TokenManager,
	emailCodeTTL, phoneCodeTTL time.Duration,
) *AuthService {
	return &AuthService{
		repo:         repo,
		codes:        codes,
		notifier:     notifier,
		tokenManager: tokenManager,
		emailCodeTTL: emailCodeTTL,
		phoneCodeTTL: phoneCodeTTL,
	}
}

// SignUp регистрирует пользователя по email или телефону и отправляет
// код подтверждения через соответствующий канал.
func (s *AuthService) SignUp(ctx context.Context, identifier string, meta map[string]string) (*AuthResult, error) {
	identifier = validation.Normalize(identifier)

	kind := validation.ClassifyIdentifier(identifier)
	if kind == validation.KindUnknown {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed,
			"введите корректный email или номер телефона")
	}

	exists, err := s.repo.ExistsByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("auth service: проверка идентификатора: %w", err)
	}
	if exists {
		return nil, apperror.ErrUserAlreadyExists
	}

	user := &models.User{
		AuthStatus: models.AuthStatusNew,
		Role:       models.RoleOrdinaryUser,
	}
	if kind == validation.KindEmail {
		user.AuthType = models.AuthTypeEmail
		user.Email = &identifier
	} else {
		user.AuthType = models.AuthTypePhone
		user.PhoneNumber = &identifier
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: создание пользователя: %w", err)
	}

	if err := s.issueCode(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// VerifyCode гасит одноразовый код и переводит аккаунт из new в code_verified.
// Повторная верификация уже подтверждённого аккаунта статус не меняет.
func (s *AuthService) VerifyCode(ctx context.Context, userID uuid.UUID, code string, meta map[string]string) (*AuthResult, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	consumed, err := s.codes.ConsumeCode(ctx, userID, code)
	if err != nil {
		return nil, fmt.Errorf("auth service: погашение кода: %w", err)
	}
	if !consumed {
		return nil, apperror.ErrExpiredOrInvalidCode
	}

	if _, err := s.repo.AdvanceStatus(ctx, userID, models.AuthStatusNew, models.AuthStatusCodeVerified); err != nil {
		return nil, fmt.Errorf("auth service: смена статуса: %w", err)
	}
	user.AuthStatus = user.AuthStatus.Next(models.EventCodeVerified)

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// RequestNewCode выпускает новый код, если предыдущий уже истёк.
func (s *AuthService) RequestNewCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	live, err := s.codes.HasLiveCode(ctx, userID)
	if err != nil {
		return fmt.Errorf("auth service: проверка кода: %w", err)
	}
	if live {
		return apperror.ErrNotExpired
	}

	return s.issueCode(ctx, user)
}

// CompleteProfile заполняет профиль и переводит аккаунт из code_verified в done.
// При partial=true проверяются и обновляются только переданные поля.
func (s *AuthService) CompleteProfile(ctx context.Context, userID uuid.UUID, in ProfileInput, partial bool) (*models.User, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	if !partial {
		if in.FirstName == nil || in.LastName == nil || in.Username == nil ||
			in.Password == nil || in.ConfirmPassword == nil {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed,
				"необходимо заполнить все поля профиля")
		}
	}

	upd := repository.ProfileUpdate{}

	if in.FirstName != nil {
		if err := validation.ValidateName("имя", *in.FirstName); err != nil {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, err.Error())
		}
		upd.FirstName = in.FirstName
	}
	if in.LastName != nil {
		if err := validation.ValidateName("фамилия", *in.LastName); err != nil {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, err.Error())
		}
		upd.LastName = in.LastName
	}
	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, err.Error())
		}
		upd.Username = in.Username
	}
	if in.Password != nil {
		if in.ConfirmPassword == nil || *in.Password != *in.ConfirmPassword {
			return nil, apperror.NewWithMessage(apperror.ErrCodeInvalidInput, "пароли не совпадают")
		}
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth service: хеширование пароля: %w", err)
		}
		hashStr := string(hash)
		upd.PasswordHash = &hashStr
	}

	if err := s.repo.UpdateProfile(ctx, userID, upd); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserDoesNotExist
		}
		return nil, fmt.Errorf("auth service: обновление профиля: %w", err)
	}

	if _, err := s.repo.AdvanceStatus(ctx, userID, models.AuthStatusCodeVerified, models.AuthStatusDone); err != nil {
		return nil, fmt.Errorf("auth service: смена статуса: %w", err)
	}

	updated, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetPhoto сохраняет путь к фото и переводит аккаунт в статус photo_step.
// Возвращает обновлённого пользователя и путь к прежнему фото, чтобы
// вызывающий код мог убрать устаревший файл. Проверка содержимого файла
// выполняется на уровне HTTP-обработчика.
func (s *AuthService) SetPhoto(ctx context.Context, userID uuid.UUID, photoPath string) (*models.User, string, error) {
	current, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	oldPath := ""
	if current.PhotoPath != nil {
		oldPath = *current.PhotoPath
	}

	if err := s.repo.UpdatePhoto(ctx, userID, photoPath); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", apperror.ErrUserDoesNotExist
		}
		return nil, "", fmt.Errorf("auth service: сохранение фото: %w", err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	return user, oldPath, nil
}

// Login проверяет учётные данные и возвращает пару токенов.
// На вход принимается username, email или телефон.
func (s *AuthService) Login(ctx context.Context, input, password string, meta map[string]string) (*AuthResult, error) {
	input = validation.Normalize(input)

	var (
		user *models.User
		err  error
	)

	switch validation.ClassifyLoginInput(input) {
	case validation.KindUsername:
		user, err = s.repo.GetByUsername(ctx, input)
	case validation.KindEmail, validation.KindPhone:
		user, err = s.repo.GetByIdentifier(ctx, input)
	default:
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed,
			"введите корректный логин, email или номер телефона")
	}

	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserDoesNotExist
		}
		return nil, fmt.Errorf("auth service: поиск пользователя: %w", err)
	}

	if user.AuthStatus == models.AuthStatusNew || user.AuthStatus == models.AuthStatusCodeVerified {
		return nil, apperror.ErrNotRegisteredYet
	}
	if !user.AuthStatus.CanLogin() {
		return nil, apperror.ErrForbidden
	}

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, apperror.NewWithMessage(apperror.ErrCodeInvalidInput, "неверный логин или пароль")
	}

	s.touchLastLogin(ctx, user.ID)

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Refresh меняет refresh токен на новую пару. Отозванный токен
// (разлогиненная сессия) не принимается.
func (s *AuthService) Refresh(ctx context.Context, oldToken string, meta map[string]string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(oldToken)
	if err != nil {
		return nil, tokenError(err)
	}

	alive, err := s.repo.SessionExists(ctx, oldToken)
	if err != nil {
		return nil, fmt.Errorf("auth service: проверка сессии: %w", err)
	}
	if !alive {
		return nil, apperror.NewWithMessage(apperror.ErrCodeInvalidToken, "токен отозван")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeInvalidToken)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSession(ctx, oldToken); err != nil &&
		!errors.Is(err, repository.ErrSessionNotFound) {
		return nil, fmt.Errorf("auth service: ротация сессии: %w", err)
	}

	s.touchLastLogin(ctx, user.ID)

	return s.issueSession(ctx, user, meta)
}

// Logout отзывает refresh токен. Повторный выход по тому же токену — ошибка.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.tokenManager.ParseRefresh(refreshToken); err != nil {
		return tokenError(err)
	}

	if err := s.repo.DeleteSession(ctx, refreshToken); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return apperror.NewWithMessage(apperror.ErrCodeInvalidToken, "токен уже отозван")
		}
		return fmt.Errorf("auth service: выход: %w", err)
	}
	return nil
}

// ForgotPassword отправляет код восстановления на email или телефон.
func (s *AuthService) ForgotPassword(ctx context.Context, identifier string, meta map[string]string) (*AuthResult, error) {
	identifier = validation.Normalize(identifier)

	if validation.ClassifyIdentifier(identifier) == validation.KindUnknown {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed,
			"введите корректный email или номер телефона")
	}

	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserDoesNotExist
		}
		return nil, fmt.Errorf("auth service: поиск пользователя: %w", err)
	}

	if err := s.issueCode(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// ResetPassword устанавливает новый пароль после подтверждения кода.
func (s *AuthService) ResetPassword(ctx context.Context, userID uuid.UUID, password, confirm string, meta map[string]string) (*AuthResult, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if password != confirm {
		return nil, apperror.NewWithMessage(apperror.ErrCodeInvalidInput, "пароли не совпадают")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: хеширование пароля: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserDoesNotExist
		}
		return nil, fmt.Errorf("auth service: смена пароля: %w", err)
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// getUser загружает пользователя, переводя "не найден" в доменную ошибку.
func (s *AuthService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserDoesNotExist
		}
		return nil, fmt.Errorf("auth service: загрузка пользователя: %w", err)
	}
	return user, nil
}

// issueCode создаёт одноразовый код и ставит его отправку в очередь.
func (s *AuthService) issueCode(ctx context.Context, user *models.User) error {
	if !user.AuthType.IsValid() {
		return apperror.NewWithMessage(apperror.ErrCodeValidationFailed,
			"неизвестный канал подтверждения")
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("auth service: генерация кода: %w", err)
	}

	ttl := s.emailCodeTTL
	if user.AuthType == models.AuthTypePhone {
		ttl = s.phoneCodeTTL
	}

	if _, err := s.codes.CreateCode(ctx, user.ID, user.AuthType, code, time.Now().Add(ttl)); err != nil {
		return fmt.Errorf("auth service: сохранение кода: %w", err)
	}

	s.notifier.Dispatch(notify.Task{
		Channel:    user.AuthType,
		Identifier: user.Identifier(),
		Code:       code,
	})
	return nil
}

// issueSession выпускает пару токенов и регистрирует refresh-сессию.
func (s *AuthService) issueSession(ctx context.Context, user *models.User, meta map[string]string) (*TokenPair, error) {
	tokenPair, _, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: выпуск токенов: %w", err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	if meta != nil {
		if ua, ok := meta["user_agent"]; ok {
			session.UserAgent = &ua
		}
		if ip, ok := meta["ip"]; ok {
			session.IPAddress = &ip
		}
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("auth service: создание сессии: %w", err)
	}

	return tokenPair, nil
}

// touchLastLogin обновляет last_login_at, не прерывая основную операцию.
func (s *AuthService) touchLastLogin(ctx context.Context, userID uuid.UUID) {
	if err := s.repo.UpdateLastLoginAt(ctx, userID); err != nil {
		logger.Log.WithField("user_id", userID).WithError(err).
			Warn("auth service: не удалось обновить last_login_at")
	}
}

// tokenError переводит ошибку парсинга JWT в доменную.
func tokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperror.New(apperror.ErrCodeExpiredToken)
	}
	return apperror.New(apperror.ErrCodeInvalidToken)
}

// generateCode выпускает шестизначный числовой код.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
