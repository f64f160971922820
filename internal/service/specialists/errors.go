package specialists

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда ID не распознан ни как профиль, ни как пользователь-специалист
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid specialist id")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("specialists: internal error")
)
