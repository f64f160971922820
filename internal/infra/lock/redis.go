package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// CalendarLocker блокировка календаря специалиста на дату на время создания записи
type CalendarLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewCalendarLocker создает блокировку поверх Redis
func NewCalendarLocker(rdb *redis.Client, ttl time.Duration) *CalendarLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &CalendarLocker{rdb: rdb, ttl: ttl, prefix: "booking:lock"}
}

// Key ключ блокировки для специалиста и даты
func Key(prefix string, specialistID domain.UserID, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", prefix, specialistID.String(), date.Format(domain.DateFormat))
}

// Acquire пытается взять блокировку. Возвращает функцию освобождения
func (l *CalendarLocker) Acquire(ctx context.Context, specialistID domain.UserID, date time.Time) (func(), error) {
	key := Key(l.prefix, specialistID, date)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Acquire %s: %w", ErrLockBackend, key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
	}

	release := func() {
		// контекст запроса может быть уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err()
	}

	return release, nil
}

// NoopLocker используется, когда Redis не настроен
type NoopLocker struct{}

// Acquire всегда успешен
func (NoopLocker) Acquire(context.Context, domain.UserID, time.Time) (func(), error) {
	return func() {}, nil
}
