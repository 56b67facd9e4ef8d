package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/notify"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository в памяти.
type mockAuthRepository struct {
	users    map[uuid.UUID]*models.User
	sessions map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		users:    make(map[uuid.UUID]*models.User),
		sessions: make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	lowered := strings.ToLower(identifier)
	for _, user := range m.users {
		if user.Email != nil && strings.ToLower(*user.Email) == lowered {
			return user, nil
		}
		if user.PhoneNumber != nil && strings.ToLower(*user.PhoneNumber) == lowered {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	lowered := strings.ToLower(username)
	for _, user := range m.users {
		if user.Username != nil && strings.ToLower(*user.Username) == lowered {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	_, err := m.GetByIdentifier(ctx, identifier)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *mockAuthRepository) AdvanceStatus(ctx context.Context, userID uuid.UUID, fromStatus, toStatus models.AuthStatus) (bool, error) {
	user, ok := m.users[userID]
	if !ok || user.AuthStatus != fromStatus {
		return false, nil
	}
	user.AuthStatus = toStatus
	return true, nil
}

func (m *mockAuthRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, upd repository.ProfileUpdate) error {
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if upd.FirstName != nil {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = upd.LastName
	}
	if upd.Username != nil {
		user.Username = upd.Username
	}
	if upd.PasswordHash != nil {
		user.PasswordHash = upd.PasswordHash
	}
	return nil
}

func (m *mockAuthRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = &passwordHash
	return nil
}

func (m *mockAuthRepository) UpdatePhoto(ctx context.Context, userID uuid.UUID, photoPath string) error {
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PhotoPath = &photoPath
	user.AuthStatus = models.AuthStatusPhotoStep
	return nil
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.users[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) SessionExists(ctx context.Context, refreshToken string) (bool, error) {
	session, ok := m.sessions[refreshToken]
	return ok && session.ExpiresAt.After(time.Now()), nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, ok := m.sessions[refreshToken]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.sessions, refreshToken)
	return nil
}

// mockVerificationStore хранит коды в памяти.
type mockVerificationStore struct {
	codes []*models.VerificationCode
}

func (m *mockVerificationStore) CreateCode(ctx context.Context, userID uuid.UUID, codeType models.AuthType, code string, expiresAt time.Time) (*models.VerificationCode, error) {
	vc := &models.VerificationCode{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      codeType,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.codes = append(m.codes, vc)
	return vc, nil
}

func (m *mockVerificationStore) ConsumeCode(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	for _, vc := range m.codes {
		if vc.UserID == userID && vc.Code == code && !vc.IsConfirmed && vc.ExpiresAt.After(time.Now()) {
			vc.IsConfirmed = true
			return true, nil
		}
	}
	return false, nil
}

func (m *mockVerificationStore) HasLiveCode(ctx context.Context, userID uuid.UUID) (bool, error) {
	for _, vc := range m.codes {
		if vc.UserID == userID && !vc.IsConfirmed && vc.ExpiresAt.After(time.Now()) {
			return true, nil
		}
	}
	return false, nil
}

// lastCode возвращает последний выпущенный код пользователя.
func (m *mockVerificationStore) lastCode(userID uuid.UUID) string {
	for i := len(m.codes) - 1; i >= 0; i-- {
		if m.codes[i].UserID == userID {
			return m.codes[i].Code
		}
	}
	return ""
}

// mockNotifier запоминает отправленные задания.
type mockNotifier struct {
	tasks []notify.Task
}

func (m *mockNotifier) Dispatch(task notify.Task) {
	m.tasks = append(m.tasks, task)
}

func newTestAuthService() (*AuthService, *mockAuthRepository, *mockVerificationStore, *mockNotifier) {
	logger.Init("error")
	repo := newMockAuthRepository()
	codes := &mockVerificationStore{}
	notifier := &mockNotifier{}
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := NewAuthService(repo, codes, notifier, tokenManager, 5*time.Minute, 2*time.Minute)
	return svc, repo, codes, notifier
}

func strPtr(s string) *string { return &s }

func TestAuthService_FullEmailLifecycle(t *testing.T) {
	svc, repo, codes, notifier := newTestAuthService()
	ctx := context.Background()

	// Регистрация по email.
	res, err := svc.SignUp(ctx, "Ann.Lee@Example.com", map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("SignUp вернул ошибку: %v", err)
	}
	if res.User.AuthType != models.AuthTypeEmail {
		t.Fatalf("ожидали auth_type email, получили %s", res.User.AuthType)
	}
	if res.User.AuthStatus != models.AuthStatusNew {
		t.Fatalf("ожидали статус new, получили %s", res.User.AuthStatus)
	}
	if res.User.Email == nil || *res.User.Email != "ann.lee@example.com" {
		t.Fatal("идентификатор должен храниться в нижнем регистре")
	}
	if res.TokenPair.AccessToken == "" || res.TokenPair.RefreshToken == "" {
		t.Fatal("ожидалась пара токенов")
	}
	if len(notifier.tasks) != 1 || notifier.tasks[0].Channel != models.AuthTypeEmail {
		t.Fatal("код должен уйти через email канал")
	}

	userID := res.User.ID

	// Подтверждение кода.
	code := codes.lastCode(userID)
	verifyRes, err := svc.VerifyCode(ctx, userID, code, nil)
	if err != nil {
		t.Fatalf("VerifyCode вернул ошибку: %v", err)
	}
	if verifyRes.User.AuthStatus != models.AuthStatusCodeVerified {
		t.Fatalf("ожидали статус code_verified, получили %s", verifyRes.User.AuthStatus)
	}

	// Вход до заполнения профиля запрещён.
	if _, err := svc.Login(ctx, "ann.lee@example.com", "whatever", nil); !apperror.IsCode(err, apperror.ErrCodeNotRegisteredYet) {
		t.Fatalf("ожидали NOT_REGISTERED_YET, получили %v", err)
	}

	// Заполнение профиля.
	user, err := svc.CompleteProfile(ctx, userID, ProfileInput{
		FirstName:       strPtr("Ann"),
		LastName:        strPtr("Lee"),
		Username:        strPtr("annlee"),
		Password:        strPtr("Str0ng!Pass"),
		ConfirmPassword: strPtr("Str0ng!Pass"),
	}, false)
	if err != nil {
		t.Fatalf("CompleteProfile вернул ошибку: %v", err)
	}
	if user.AuthStatus != models.AuthStatusDone {
		t.Fatalf("ожидали статус done, получили %s", user.AuthStatus)
	}

	// Вход по username.
	loginRes, err := svc.Login(ctx, "annlee", "Str0ng!Pass", nil)
	if err != nil {
		t.Fatalf("Login вернул ошибку: %v", err)
	}
	if loginRes.User.ID != userID {
		t.Fatal("вход должен вернуть того же пользователя")
	}
	if loginRes.User.LastLoginAt == nil {
		t.Fatal("last_login_at должен обновиться при входе")
	}

	// Вход по email.
	if _, err := svc.Login(ctx, "Ann.Lee@Example.com", "Str0ng!Pass", nil); err != nil {
		t.Fatalf("вход по email вернул ошибку: %v", err)
	}

	// Неверный пароль.
	if _, err := svc.Login(ctx, "annlee", "WrongPass1", nil); !apperror.IsCode(err, apperror.ErrCodeInvalidInput) {
		t.Fatalf("ожидали INVALID_INPUT, получили %v", err)
	}

	// Фото переводит аккаунт в photo_step.
	photoUser, oldPath, err := svc.SetPhoto(ctx, userID, "photos/ann.png")
	if err != nil {
		t.Fatalf("SetPhoto вернул ошибку: %v", err)
	}
	if photoUser.AuthStatus != models.AuthStatusPhotoStep {
		t.Fatalf("ожидали статус photo_step, получили %s", photoUser.AuthStatus)
	}
	if oldPath != "" {
		t.Fatalf("у нового аккаунта не должно быть прежнего фото, получили %q", oldPath)
	}

	// Замена фото возвращает путь к прежнему файлу.
	if _, oldPath, err = svc.SetPhoto(ctx, userID, "photos/ann_v2.png"); err != nil {
		t.Fatalf("повторный SetPhoto вернул ошибку: %v", err)
	}
	if oldPath != "photos/ann.png" {
		t.Fatalf("ожидали прежний путь photos/ann.png, получили %q", oldPath)
	}

	// Повторная регистрация того же email.
	if _, err := svc.SignUp(ctx, "ann.lee@example.com", nil); !apperror.IsCode(err, apperror.ErrCodeUserAlreadyExists) {
		t.Fatalf("ожидали USER_ALREADY_EXISTS, получили %v", err)
	}

	_ = repo
}

func TestAuthService_SignUpPhone(t *testing.T) {
	svc, _, _, notifier := newTestAuthService()

	res, err := svc.SignUp(context.Background(), "+998901234567", nil)
	if err != nil {
		t.Fatalf("SignUp вернул ошибку: %v", err)
	}
	if res.User.AuthType != models.AuthTypePhone {
		t.Fatalf("ожидали auth_type phone, получили %s", res.User.AuthType)
	}
	if res.User.Role != models.RoleOrdinaryUser {
		t.Fatalf("новый пользователь должен получать роль ordinary_user")
	}
	if len(notifier.tasks) != 1 || notifier.tasks[0].Channel != models.AuthTypePhone {
		t.Fatal("код должен уйти через SMS канал")
	}
}

func TestAuthService_SignUpRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.SignUp(context.Background(), "not-an-identifier", nil)
	if !apperror.IsCode(err, apperror.ErrCodeValidationFailed) {
		t.Fatalf("ожидали VALIDATION_FAILED, получили %v", err)
	}
}

func TestAuthService_VerifyCodeFailures(t *testing.T) {
	svc, _, codes, _ := newTestAuthService()
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "user@example.com", nil)
	if err != nil {
		t.Fatalf("SignUp вернул ошибку: %v", err)
	}
	userID := res.User.ID
	code := codes.lastCode(userID)

	// Неверный код.
	if _, err := svc.VerifyCode(ctx, userID, "000000", nil); !apperror.IsCode(err, apperror.ErrCodeExpiredOrInvalidCode) {
		t.Fatalf("ожидали EXPIRED_OR_INVALID_CODE, получили %v", err)
	}

	// Верный код проходит один раз.
	if _, err := svc.VerifyCode(ctx, userID, code, nil); err != nil {
		t.Fatalf("VerifyCode вернул ошибку: %v", err)
	}
	if _, err := svc.VerifyCode(ctx, userID, code, nil); !apperror.IsCode(err, apperror.ErrCodeExpiredOrInvalidCode) {
		t.Fatalf("погашенный код должен быть отклонён, получили %v", err)
	}

	// Просроченный код.
	expired, _ := codes.CreateCode(ctx, userID, models.AuthTypeEmail, "111111", time.Now().Add(-time.Minute))
	if _, err := svc.VerifyCode(ctx, userID, expired.Code, nil); !apperror.IsCode(err, apperror.ErrCodeExpiredOrInvalidCode) {
		t.Fatalf("просроченный код должен быть отклонён, получили %v", err)
	}

	// Несуществующий пользователь.
	if _, err := svc.VerifyCode(ctx, uuid.New(), "123456", nil); !apperror.IsCode(err, apperror.ErrCodeUserDoesNotExist) {
		t.Fatalf("ожидали USER_DOES_NOT_EXISTS, получили %v", err)
	}
}

func TestAuthService_RequestNewCode(t *testing.T) {
	svc, _, codes, notifier := newTestAuthService()
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "user@example.com", nil)
	if err != nil {
		t.Fatalf("SignUp вернул ошибку: %v", err)
	}
	userID := res.User.ID

	// Живой код ещё не истёк.
	if err := svc.RequestNewCode(ctx, userID); !apperror.IsCode(err, apperror.ErrCodeNotExpired) {
		t.Fatalf("ожидали NOT_EXPIRED, получили %v", err)
	}

	// После истечения кода выпускается новый.
	for _, vc := range codes.codes {
		vc.ExpiresAt = time.Now().Add(-time.Minute)
	}
	if err := svc.RequestNewCode(ctx, userID); err != nil {
		t.Fatalf("RequestNewCode вернул ошибку: %v", err)
	}
	if len(notifier.tasks) != 2 {
		t.Fatalf("ожидали две отправки, получили %d", len(notifier.tasks))
	}
}

func TestAuthService_RequestNewCodeUnknownChannel(t *testing.T) {
	svc, repo, _, notifier := newTestAuthService()
	ctx := context.Background()

	// Аккаунт с повреждённым каналом подтверждения не должен получать код.
	email := "broken@example.com"
	broken := &models.User{
		AuthType:   models.AuthType("telegram"),
		AuthStatus: models.AuthStatusNew,
		Role:       models.RoleOrdinaryUser,
		Email:      &email,
	}
	if err := repo.Create(ctx, broken); err != nil {
		t.Fatalf("Create вернул ошибку: %v", err)
	}

	if err := svc.RequestNewCode(ctx, broken.ID); !apperror.IsCode(err, apperror.ErrCodeValidationFailed) {
		t.Fatalf("ожидали VALIDATION_FAILED, получили %v", err)
	}
	if len(notifier.tasks) != 0 {
		t.Fatalf("отправка не должна ставиться в очередь, получили %d", len(notifier.tasks))
	}
}

func TestAuthService_CompleteProfileValidation(t *testing.T) {
	svc, _, codes, _ := newTestAuthService()
	ctx := context.Background()

	res, _ := svc.SignUp(ctx, "user@example.com", nil)
	userID := res.User.ID
	if _, err := svc.VerifyCode(ctx, userID, codes.lastCode(userID), nil); err != nil {
		t.Fatalf("VerifyCode вернул ошибку: %v", err)
	}

	// Неизвестный пользователь отклоняется до каких-либо проверок полей.
	_, err := svc.CompleteProfile(ctx, uuid.New(), ProfileInput{FirstName: strPtr("Ann")}, true)
	if !apperror.IsCode(err, apperror.ErrCodeUserDoesNotExist) {
		t.Fatalf("ожидали USER_DOES_NOT_EXISTS, получили %v", err)
	}

	// Полное обновление требует все поля.
	_, err = svc.CompleteProfile(ctx, userID, ProfileInput{FirstName: strPtr("Ann")}, false)
	if !apperror.IsCode(err, apperror.ErrCodeValidationFailed) {
		t.Fatalf("ожидали VALIDATION_FAILED, получили %v", err)
	}

	// Пароли должны совпадать.
	_, err = svc.CompleteProfile(ctx, userID, ProfileInput{
		FirstName:       strPtr("Ann"),
		LastName:        strPtr("Lee"),
		Username:        strPtr("annlee"),
		Password:        strPtr("Str0ng!Pass"),
		ConfirmPassword: strPtr("Other1Pass"),
	}, false)
	if !apperror.IsCode(err, apperror.ErrCodeInvalidInput) {
		t.Fatalf("ожидали INVALID_INPUT, получили %v", err)
	}

	// Слабый пароль.
	_, err = svc.CompleteProfile(ctx, userID, ProfileInput{
		FirstName:       strPtr("Ann"),
		LastName:        strPtr("Lee"),
		Username:        strPtr("annlee"),
		Password:        strPtr("weakpass"),
		ConfirmPassword: strPtr("weakpass"),
	}, false)
	if !apperror.IsCode(err, apperror.ErrCodeValidationFailed) {
		t.Fatalf("ожидали VALIDATION_FAILED, получили %v", err)
	}

	// Частичное обновление проверяет только переданные поля.
	user, err := svc.CompleteProfile(ctx, userID, ProfileInput{FirstName: strPtr("Ann")}, true)
	if err != nil {
		t.Fatalf("частичное обновление вернуло ошибку: %v", err)
	}
	if user.FirstName == nil || *user.FirstName != "Ann" {
		t.Fatal("имя должно обновиться")
	}
	// Частичное обновление тоже завершает регистрацию: переход
	// code_verified -> done выполняется при любом изменении профиля.
	if user.AuthStatus != models.AuthStatusDone {
		t.Fatalf("ожидали статус done, получили %s", user.AuthStatus)
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, repo, codes, _ := newTestAuthService()
	ctx := context.Background()

	res, _ := svc.SignUp(ctx, "user@example.com", nil)
	userID := res.User.ID
	if _, err := svc.VerifyCode(ctx, userID, codes.lastCode(userID), nil); err != nil {
		t.Fatalf("VerifyCode вернул ошибку: %v", err)
	}
	if _, err := svc.CompleteProfile(ctx, userID, ProfileInput{
		FirstName:       strPtr("Ann"),
		LastName:        strPtr("Lee"),
		Username:        strPtr("annlee"),
		Password:        strPtr("Str0ng!Pass"),
		ConfirmPassword: strPtr("Str0ng!Pass"),
	}, false); err != nil {
		t.Fatalf("CompleteProfile вернул ошибку: %v", err)
	}

	loginRes, err := svc.Login(ctx, "annlee", "Str0ng!Pass", nil)
	if err != nil {
		t.Fatalf("Login вернул ошибку: %v", err)
	}
	oldRefresh := loginRes.TokenPair.RefreshToken

	// Ротация: новая пара, старый токен умирает.
	newPair, err := svc.Refresh(ctx, oldRefresh, nil)
	if err != nil {
		t.Fatalf("Refresh вернул ошибку: %v", err)
	}
	if newPair.RefreshToken == oldRefresh {
		t.Fatal("refresh токен должен ротироваться")
	}
	if _, err := svc.Refresh(ctx, oldRefresh, nil); !apperror.IsCode(err, apperror.ErrCodeInvalidToken) {
		t.Fatalf("использованный refresh токен должен быть отклонён, получили %v", err)
	}

	// Выход отзывает токен, повторный выход — ошибка.
	if err := svc.Logout(ctx, newPair.RefreshToken); err != nil {
		t.Fatalf("Logout вернул ошибку: %v", err)
	}
	if err := svc.Logout(ctx, newPair.RefreshToken); !apperror.IsCode(err, apperror.ErrCodeInvalidToken) {
		t.Fatalf("повторный выход должен вернуть ошибку, получили %v", err)
	}

	// Отозванный токен не проходит refresh.
	if _, err := svc.Refresh(ctx, newPair.RefreshToken, nil); !apperror.IsCode(err, apperror.ErrCodeInvalidToken) {
		t.Fatalf("отозванный токен должен быть отклонён, получили %v", err)
	}

	// Мусорный токен.
	if err := svc.Logout(ctx, "garbage"); !apperror.IsCode(err, apperror.ErrCodeInvalidToken) {
		t.Fatalf("мусорный токен должен быть отклонён, получили %v", err)
	}

	_ = repo
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	svc, repo, codes, notifier := newTestAuthService()
	ctx := context.Background()

	res, _ := svc.SignUp(ctx, "user@example.com", nil)
	userID := res.User.ID
	if _, err := svc.VerifyCode(ctx, userID, codes.lastCode(userID), nil); err != nil {
		t.Fatalf("VerifyCode вернул ошибку: %v", err)
	}
	if _, err := svc.CompleteProfile(ctx, userID, ProfileInput{
		FirstName:       strPtr("Ann"),
		LastName:        strPtr("Lee"),
		Username:        strPtr("annlee"),
		Password:        strPtr("Str0ng!Pass"),
		ConfirmPassword: strPtr("Str0ng!Pass"),
	}, false); err != nil {
		t.Fatalf("CompleteProfile вернул ошибку: %v", err)
	}

	// Старый код погашен, забытый пароль выпускает новый.
	sent := len(notifier.tasks)
	forgotRes, err := svc.ForgotPassword(ctx, "user@example.com", nil)
	if err != nil {
		t.Fatalf("ForgotPassword вернул ошибку: %v", err)
	}
	if len(notifier.tasks) != sent+1 {
		t.Fatal("код восстановления должен быть отправлен")
	}
	if forgotRes.TokenPair.AccessToken == "" {
		t.Fatal("ожидалась свежая пара токенов")
	}

	// Неизвестный идентификатор.
	if _, err := svc.ForgotPassword(ctx, "ghost@example.com", nil); !apperror.IsCode(err, apperror.ErrCodeUserDoesNotExist) {
		t.Fatalf("ожидали USER_DOES_NOT_EXISTS, получили %v", err)
	}

	// Смена пароля.
	if _, err := svc.ResetPassword(ctx, userID, "N3w!Password", "N3w!Password", nil); err != nil {
		t.Fatalf("ResetPassword вернул ошибку: %v", err)
	}

	user := repo.users[userID]
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("N3w!Password")) != nil {
		t.Fatal("новый пароль должен быть захеширован и сохранён")
	}
	if _, err := svc.Login(ctx, "annlee", "Str0ng!Pass", nil); err == nil {
		t.Fatal("старый пароль больше не должен работать")
	}
	if _, err := svc.Login(ctx, "annlee", "N3w!Password", nil); err != nil {
		t.Fatalf("вход с новым паролем вернул ошибку: %v", err)
	}

	// Несовпадающие пароли.
	if _, err := svc.ResetPassword(ctx, userID, "N3w!Password", "Other1Pass", nil); !apperror.IsCode(err, apperror.ErrCodeInvalidInput) {
		t.Fatalf("ожидали INVALID_INPUT, получили %v", err)
	}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "Str0ng!Pass", nil)
	if !apperror.IsCode(err, apperror.ErrCodeUserDoesNotExist) {
		t.Fatalf("ожидали USER_DOES_NOT_EXISTS, получили %v", err)
	}
}
