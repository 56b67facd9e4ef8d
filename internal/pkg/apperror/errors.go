package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode идентифицирует категорию ошибки в ответе API.
type ErrorCode int

const (
	ErrCodeUnauthorized         ErrorCode = 1
	ErrCodeInvalidInput         ErrorCode = 2
	ErrCodeForbidden            ErrorCode = 3
	ErrCodeNotFound             ErrorCode = 4
	ErrCodeAlreadyExists        ErrorCode = 5
	ErrCodeUserAlreadyExists    ErrorCode = 6
	ErrCodeUserDoesNotExist     ErrorCode = 7
	ErrCodeIncorrectPassword    ErrorCode = 8
	ErrCodeInvalidToken         ErrorCode = 9
	ErrCodeExpiredToken         ErrorCode = 10
	ErrCodeValidationFailed     ErrorCode = 11
	ErrCodeExpiredOrInvalidCode ErrorCode = 12
	ErrCodeNotExpired           ErrorCode = 13
	ErrCodeNotRegisteredYet     ErrorCode = 14
)

// AppError — типизированная ошибка, которую middleware переводит в HTTP ответ.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New создаёт AppError с дефолтным сообщением кода.
func New(code ErrorCode) *AppError {
	return &AppError{
		Code:       code,
		Message:    defaultMessage(code),
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// NewWithMessage создаёт AppError с переопределённым сообщением.
func NewWithMessage(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap оборачивает внутреннюю ошибку в AppError.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound, ErrCodeUserDoesNotExist:
		return http.StatusNotFound
	case ErrCodeAlreadyExists, ErrCodeUserAlreadyExists:
		return http.StatusConflict
	case ErrCodeInvalidInput, ErrCodeIncorrectPassword, ErrCodeInvalidToken,
		ErrCodeExpiredToken, ErrCodeValidationFailed, ErrCodeExpiredOrInvalidCode,
		ErrCodeNotExpired, ErrCodeNotRegisteredYet:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func defaultMessage(code ErrorCode) string {
	switch code {
	case ErrCodeUnauthorized:
		return "требуется авторизация"
	case ErrCodeInvalidInput:
		return "некорректные входные данные"
	case ErrCodeForbidden:
		return "недостаточно прав"
	case ErrCodeNotFound:
		return "ресурс не найден"
	case ErrCodeAlreadyExists:
		return "ресурс уже существует"
	case ErrCodeUserAlreadyExists:
		return "пользователь уже зарегистрирован"
	case ErrCodeUserDoesNotExist:
		return "пользователь не найден"
	case ErrCodeIncorrectPassword:
		return "неверный пароль"
	case ErrCodeInvalidToken:
		return "токен невалиден"
	case ErrCodeExpiredToken:
		return "токен просрочен"
	case ErrCodeValidationFailed:
		return "валидация не пройдена"
	case ErrCodeExpiredOrInvalidCode:
		return "код подтверждения неверен или просрочен"
	case ErrCodeNotExpired:
		return "действующий код подтверждения ещё не истёк"
	case ErrCodeNotRegisteredYet:
		return "регистрация ещё не завершена"
	default:
		return "внутренняя ошибка сервера"
	}
}

// As извлекает AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode проверяет, что ошибка несёт указанный код.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

var (
	ErrUnauthorized         = New(ErrCodeUnauthorized)
	ErrForbidden            = New(ErrCodeForbidden)
	ErrUserAlreadyExists    = New(ErrCodeUserAlreadyExists)
	ErrUserDoesNotExist     = New(ErrCodeUserDoesNotExist)
	ErrValidationFailed     = New(ErrCodeValidationFailed)
	ErrExpiredOrInvalidCode = New(ErrCodeExpiredOrInvalidCode)
	ErrNotExpired           = New(ErrCodeNotExpired)
	ErrNotRegisteredYet     = New(ErrCodeNotRegisteredYet)
)
