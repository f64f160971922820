package branch

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден в бизнесе
	ErrBranchNotFound = errors.New("branch.repository: branch not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("branch.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("branch.repository: failed to scan row")

	// ErrInvalidHours возвращается, когда часы работы филиала не читаются
	ErrInvalidHours = errors.New("branch.repository: invalid business hours")
)
