// Package lock удерживает слот мастера на время записи или переноса.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const keyPrefix = "salon:slot:"

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу токена
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseFunc снимает блокировку слота
type ReleaseFunc func(ctx context.Context) error

// SlotLocker блокировка слотов на Redis (SET NX с TTL)
type SlotLocker struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewSlotLocker создает блокировщик слотов
func NewSlotLocker(rdb goredis.Cmdable, ttl time.Duration) *SlotLocker {
	return &SlotLocker{rdb: rdb, ttl: ttl}
}

// Acquire захватывает слот мастера на дату и время.
// Блокировка истекает сама через ttl, если release не был вызван.
func (l *SlotLocker) Acquire(ctx context.Context, stylist string, date time.Time, at types.TimeOfDay) (ReleaseFunc, error) {
	key := SlotKey(stylist, date, at)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLockFailed, err)
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("lock: release %s: %w", key, err)
		}
		return nil
	}, nil
}

// SlotKey ключ блокировки слота
func SlotKey(stylist string, date time.Time, at types.TimeOfDay) string {
	return fmt.Sprintf("%s%s:%s:%d", keyPrefix, stylist, date.Format(domain.DateFormat), at.Minutes())
}

// NoopLocker используется, когда Redis отключён: блокировка всегда успешна
type NoopLocker struct{}

// Acquire всегда успешно захватывает слот
func (NoopLocker) Acquire(ctx context.Context, stylist string, date time.Time, at types.TimeOfDay) (ReleaseFunc, error) {
	return func(ctx context.Context) error { return nil }, nil
}
