package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int, retryable func(error) bool) Config {
	cfg := UploadConfig(maxRetries, retryable)
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestDoWithResult_SucceedsAfterRetry(t *testing.T) {
	attempts := 0
	got, err := DoWithResult(context.Background(), fastConfig(3, nil), "test", func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, attempts)
}

func TestDoWithResult_NonRetryableStopsImmediately(t *testing.T) {
	permanent := errors.New("rejected")
	attempts := 0
	_, err := DoWithResult(context.Background(), fastConfig(3, func(err error) bool {
		return !errors.Is(err, permanent)
	}), "test", func() (int, error) {
		attempts++
		return 0, permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult_ExhaustsRetries(t *testing.T) {
	boom := errors.New("boom")
	attempts := 0
	_, err := DoWithResult(context.Background(), fastConfig(2, nil), "test", func() (string, error) {
		attempts++
		return "", boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, attempts)
}

func TestDoWithResult_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	_, err := DoWithResult(ctx, fastConfig(2, nil), "test", func() (string, error) {
		attempts++
		return "ok", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, attempts)
}

func TestCalculateDelay_CapsAtMax(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 2 * time.Second, Multiplier: 10}
	assert.Equal(t, time.Second, calculateDelay(0, cfg))
	assert.Equal(t, 2*time.Second, calculateDelay(3, cfg))
}
