// Package apperr содержит доменные ошибки приложения. Слой хранения и сервисы
// оборачивают их через fmt.Errorf("%s: %w", op, err), а HTTP-слой сопоставляет
// их со статусами ответа через errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidCredentials неизвестный логин или неверный пароль. Намеренно не различаются.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateAccount логин, email или студенческий номер уже заняты.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrMissingCredential в запросе нет заголовка Authorization: Bearer.
	ErrMissingCredential = errors.New("missing credential")
	// ErrUnauthenticated токен просрочен, подделан или отозван.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAccountNotFound владелец токена удален или деактивирован.
	ErrAccountNotFound = errors.New("account not found")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	// ErrGatewayTimeout внешняя модель не ответила за отведенное время.
	ErrGatewayTimeout = errors.New("gateway timeout")
	// ErrGatewayError внешняя модель вернула ошибку.
	ErrGatewayError = errors.New("gateway error")
	ErrValidation   = errors.New("validation error")
)

// Validation оборачивает ErrValidation сообщением для клиента.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// Message возвращает текст ошибки валидации, пригодный для ответа клиенту.
func Message(err error) (string, bool) {
	var ve *validationError
	if errors.As(err, &ve) {
		return ve.msg, true
	}
	return "", false
}
