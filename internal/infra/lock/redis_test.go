package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "booking:lock:42:2025-03-10", Key("booking:lock", 42, date))
}

func TestNoopLocker(t *testing.T) {
	release, err := NoopLocker{}.Acquire(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.NotPanics(t, release)
}
