package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoRule = errors.New("no rule")

type fakeSource struct {
	calls  int
	values map[string][]byte
	err    error
}

func (s *fakeSource) GetRuleValue(_ context.Context, _ int64, ruleKey string) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.values[ruleKey]
	if !ok {
		return nil, errNoRule
	}
	return v, nil
}

type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestRuleCache_ReadThrough(t *testing.T) {
	source := &fakeSource{values: map[string][]byte{"online_booking_enabled": []byte(`false`)}}
	store := &memStore{data: map[string][]byte{}}
	c := NewRuleCache(source, store, time.Minute, errNoRule, nopLogger{})

	for i := 0; i < 3; i++ {
		v, err := c.GetRuleValue(context.Background(), 1, "online_booking_enabled")
		require.NoError(t, err)
		assert.JSONEq(t, `false`, string(v))
	}
	assert.Equal(t, 1, source.calls)
}

func TestRuleCache_CachesMissingRule(t *testing.T) {
	source := &fakeSource{values: map[string][]byte{}}
	store := &memStore{data: map[string][]byte{}}
	c := NewRuleCache(source, store, time.Minute, errNoRule, nopLogger{})

	_, err := c.GetRuleValue(context.Background(), 1, "online_payment_required")
	assert.ErrorIs(t, err, errNoRule)
	_, err = c.GetRuleValue(context.Background(), 1, "online_payment_required")
	assert.ErrorIs(t, err, errNoRule)
	assert.Equal(t, 1, source.calls)
}

func TestRuleCache_StoreFailureFallsBackToSource(t *testing.T) {
	source := &fakeSource{values: map[string][]byte{"booking_advance_days": []byte(`30`)}}
	store := &memStore{data: map[string][]byte{}, getErr: errors.New("connection refused")}
	c := NewRuleCache(source, store, time.Minute, errNoRule, nopLogger{})

	v, err := c.GetRuleValue(context.Background(), 7, "booking_advance_days")
	require.NoError(t, err)
	assert.Equal(t, "30", string(v))
}

func TestRuleCache_SourceErrorNotCached(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	store := &memStore{data: map[string][]byte{}}
	c := NewRuleCache(source, store, time.Minute, errNoRule, nopLogger{})

	_, err := c.GetRuleValue(context.Background(), 1, "x")
	assert.Error(t, err)
	assert.Empty(t, store.data)
}
