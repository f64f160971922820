package lock

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда календарь специалиста уже заблокирован другим запросом
	ErrLockNotAcquired = errors.New("lock: calendar is locked by another request")

	// ErrLockBackend возвращается при ошибке Redis
	ErrLockBackend = errors.New("lock: backend error")
)
