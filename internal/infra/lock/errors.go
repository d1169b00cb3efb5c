package lock

import "errors"

var (
	// ErrSlotLocked возвращается, когда слот уже удерживается другим запросом
	ErrSlotLocked = errors.New("lock: slot is held by another request")

	// ErrLockFailed возвращается при ошибке обращения к Redis
	ErrLockFailed = errors.New("lock: failed to acquire slot lock")
)
