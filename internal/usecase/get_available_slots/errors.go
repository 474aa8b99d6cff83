package get_available_slots

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден или профиль не является ментором
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
