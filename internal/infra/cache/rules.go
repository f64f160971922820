package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrCache возвращается при ошибке хранилища кэша
var ErrCache = errors.New("cache: backend error")

// RuleSource источник бизнес-правил (репозиторий)
type RuleSource interface {
	GetRuleValue(ctx context.Context, businessID int64, ruleKey string) ([]byte, error)
}

// Store хранилище кэша. Get возвращает (nil, false, nil), если ключа нет
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// cachedRule запись кэша. Missing запоминает отсутствие правила,
// чтобы не ходить в БД за каждым бизнесом без правил
type cachedRule struct {
	Value   json.RawMessage `json:"value,omitempty"`
	Missing bool            `json:"missing,omitempty"`
}

// RuleCache read-through кэш бизнес-правил
type RuleCache struct {
	source      RuleSource
	store       Store
	ttl         time.Duration
	notFoundErr error
	logger      Logger
}

// NewRuleCache создает кэш. notFoundErr - ошибка источника, означающая отсутствие правила
func NewRuleCache(source RuleSource, store Store, ttl time.Duration, notFoundErr error, logger Logger) *RuleCache {
	return &RuleCache{
		source:      source,
		store:       store,
		ttl:         ttl,
		notFoundErr: notFoundErr,
		logger:      logger,
	}
}

// GetRuleValue возвращает значение правила из кэша или из источника.
// Ошибки кэша не мешают чтению из источника
func (c *RuleCache) GetRuleValue(ctx context.Context, businessID int64, ruleKey string) ([]byte, error) {
	key := fmt.Sprintf("business:%d:rule:%s", businessID, ruleKey)

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("RuleCache - get %s: %v", key, err)
	} else if ok {
		var entry cachedRule
		if err := json.Unmarshal(raw, &entry); err == nil {
			if entry.Missing {
				return nil, c.notFoundErr
			}
			return entry.Value, nil
		}
	}

	value, err := c.source.GetRuleValue(ctx, businessID, ruleKey)
	var entry cachedRule
	switch {
	case err == nil:
		entry.Value = value
	case errors.Is(err, c.notFoundErr):
		entry.Missing = true
	default:
		return nil, err
	}

	payload, mErr := json.Marshal(entry)
	if mErr == nil {
		if sErr := c.store.Set(ctx, key, payload, c.ttl); sErr != nil {
			c.logger.Warn("RuleCache - set %s: %v", key, sErr)
		}
	}

	return value, err
}

// RedisStore реализация Store поверх go-redis
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore создает хранилище кэша в Redis
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %w", ErrCache, err)
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %w", ErrCache, err)
	}
	return nil
}
