package specialist

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль специалиста не найден
	ErrProfileNotFound = errors.New("specialist.repository: specialist profile not found")

	// ErrUserNotFound возвращается, когда подходящий пользователь не найден
	ErrUserNotFound = errors.New("specialist.repository: user not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specialist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("specialist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specialist.repository: failed to scan row")
)
