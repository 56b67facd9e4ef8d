package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthType — канал, через который пользователь получает коды подтверждения.
type AuthType string

const (
	AuthTypeEmail AuthType = "email"
	AuthTypePhone AuthType = "phone"
)

func (t AuthType) IsValid() bool {
	return t == AuthTypeEmail || t == AuthTypePhone
}

// Role — роль пользователя в системе, задаётся при создании.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleOrdinaryUser Role = "ordinary_user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOrdinaryUser
}

// AuthStatus — этап регистрации пользователя.
type AuthStatus string

const (
	AuthStatusNew          AuthStatus = "new"
	AuthStatusCodeVerified AuthStatus = "code_verified"
	AuthStatusDone         AuthStatus = "done"
	AuthStatusPhotoStep    AuthStatus = "photo_step"
)

func (s AuthStatus) IsValid() bool {
	switch s {
	case AuthStatusNew, AuthStatusCodeVerified, AuthStatusDone, AuthStatusPhotoStep:
		return true
	}
	return false
}

// CanLogin сообщает, допущен ли пользователь к входу по паролю.
func (s AuthStatus) CanLogin() bool {
	return s == AuthStatusDone || s == AuthStatusPhotoStep
}

// AuthEvent — событие жизненного цикла аккаунта.
type AuthEvent string

const (
	EventCodeVerified    AuthEvent = "code_verified"
	EventProfileComplete AuthEvent = "profile_complete"
	EventPhotoUploaded   AuthEvent = "photo_uploaded"
)

// authTransitions — единая таблица переходов (статус, событие) -> статус.
// Отсутствие пары в таблице означает, что событие не меняет статус.
var authTransitions = map[AuthStatus]map[AuthEvent]AuthStatus{
	AuthStatusNew: {
		EventCodeVerified: AuthStatusCodeVerified,
	},
	AuthStatusCodeVerified: {
		EventProfileComplete: AuthStatusDone,
	},
	AuthStatusDone: {
		EventPhotoUploaded: AuthStatusPhotoStep,
	},
	AuthStatusPhotoStep: {
		// Повторная загрузка фото оставляет статус photo_step.
		EventPhotoUploaded: AuthStatusPhotoStep,
	},
}

// Next возвращает статус после события. Если переход не описан в таблице,
// статус остаётся прежним: повторная верификация кода или правка профиля
// после завершения регистрации допустимы и идемпотентны.
func (s AuthStatus) Next(event AuthEvent) AuthStatus {
	if byEvent, ok := authTransitions[s]; ok {
		if next, ok := byEvent[event]; ok {
			return next
		}
	}
	return s
}

// User описывает сущность пользователя магазина.
// Ровно одно из полей Email/PhoneNumber заполнено и служит логин-идентификатором.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        *string    `db:"email" json:"email,omitempty"`
	PhoneNumber  *string    `db:"phone_number" json:"phone_number,omitempty"`
	Username     *string    `db:"username" json:"username,omitempty"`
	FirstName    *string    `db:"first_name" json:"first_name,omitempty"`
	LastName     *string    `db:"last_name" json:"last_name,omitempty"`
	PhotoPath    *string    `db:"photo_path" json:"photo_path,omitempty"`
	PasswordHash *string    `db:"password_hash" json:"-"`
	AuthType     AuthType   `db:"auth_type" json:"auth_types"`
	AuthStatus   AuthStatus `db:"auth_status" json:"auth_status"`
	Role         Role       `db:"role" json:"role"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Identifier возвращает логин-идентификатор, выбранный при регистрации.
func (u *User) Identifier() string {
	if u.AuthType == AuthTypePhone && u.PhoneNumber != nil {
		return *u.PhoneNumber
	}
	if u.Email != nil {
		return *u.Email
	}
	return ""
}
