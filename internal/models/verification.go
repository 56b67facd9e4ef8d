package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode — одноразовый код подтверждения, привязанный к пользователю.
// Коды не удаляются: протухший код просто перестаёт подходить под выборку.
type VerificationCode struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Type        AuthType  `db:"type" json:"type"`
	Code        string    `db:"code" json:"-"`
	ExpiresAt   time.Time `db:"expires_at" json:"expires_at"`
	IsConfirmed bool      `db:"is_confirmed" json:"is_confirmed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
