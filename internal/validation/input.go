package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Константы валидации
const (
	MinNameLength     = 3
	MaxNameLength     = 64
	MinUsernameLength = 3
	MaxUsernameLength = 64
)

var (
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)
	phoneRegex    = regexp.MustCompile(`^\+998([- ])?(90|91|93|94|95|98|99|33|97|71)([- ])?(\d{3})([- ])?(\d{2})([- ])?(\d{2})$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,}$`)
)

// InputKind — результат классификации пользовательского ввода.
type InputKind string

const (
	KindEmail    InputKind = "email"
	KindPhone    InputKind = "phone"
	KindUsername InputKind = "username"
	KindUnknown  InputKind = "unknown"
)

// Normalize приводит идентификатор к каноническому виду перед проверками.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ClassifyIdentifier различает email и телефон при регистрации.
func ClassifyIdentifier(input string) InputKind {
	switch {
	case emailRegex.MatchString(input):
		return KindEmail
	case phoneRegex.MatchString(input):
		return KindPhone
	default:
		return KindUnknown
	}
}

// ClassifyLoginInput различает username, email и телефон при входе.
// Порядок проверок повторяет регистрационную классификацию наоборот:
// свободный шаблон username проверяется первым и перехватывает всё,
// что не содержит @ и +998.
func ClassifyLoginInput(input string) InputKind {
	switch {
	case usernameRegex.MatchString(input):
		return KindUsername
	case phoneRegex.MatchString(input):
		return KindPhone
	case emailRegex.MatchString(input):
		return KindEmail
	default:
		return KindUnknown
	}
}

// ValidateName проверяет имя или фамилию: 3-64 символа, только буквы.
func ValidateName(fieldName, value string) error {
	length := utf8.RuneCountInString(value)
	if length < MinNameLength || length > MaxNameLength {
		return fmt.Errorf("%s должно быть от %d до %d символов", fieldName, MinNameLength, MaxNameLength)
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%s должно содержать только буквы", fieldName)
		}
	}
	return nil
}

// ValidateUsername проверяет имя пользователя: 3-64 символа.
func ValidateUsername(username string) error {
	length := utf8.RuneCountInString(username)
	if length < MinUsernameLength || length > MaxUsernameLength {
		return fmt.Errorf("имя пользователя должно быть от %d до %d символов", MinUsernameLength, MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и символы . _ -")
	}
	return nil
}
