package notify

import (
	"context"

	"github.com/ignatzorin/bookstore-backend/internal/logger"
)

// EmailSender отправляет письмо с кодом подтверждения.
type EmailSender interface {
	SendCode(ctx context.Context, email, code string) error
}

// SMSSender отправляет SMS с кодом подтверждения.
type SMSSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LogEmailSender пишет код в лог вместо реальной отправки.
// Используется пока не подключён почтовый провайдер.
type LogEmailSender struct{}

func (LogEmailSender) SendCode(_ context.Context, email, code string) error {
	logger.Log.WithField("email", email).Infof("Код подтверждения: %s", code)
	return nil
}

// LogSMSSender пишет код в лог вместо реальной отправки.
type LogSMSSender struct{}

func (LogSMSSender) SendCode(_ context.Context, phone, code string) error {
	logger.Log.WithField("phone", phone).Infof("Код подтверждения: %s", code)
	return nil
}
