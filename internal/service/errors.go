package service

import "errors"

// Ошибки бизнес-правил
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotAllowed     = errors.New("role is not allowed for self registration")
)

// ValidationError ошибка входных данных с текстом для пользователя
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// AsValidation достаёт ValidationError из цепочки ошибок
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
