package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2.0,
		BreakerEnabled:      false,
	}
}

func alwaysRetry(error) Classification {
	return Classification{Retryable: true, RecordFailure: true}
}

func TestExecuteSucceedsFirstTry(t *testing.T) {
	e := NewExecutor(fastConfig(), nil)

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, alwaysRetry)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteRetriesUntilSuccess(t *testing.T) {
	e := NewExecutor(fastConfig(), nil)

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, alwaysRetry)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	e := NewExecutor(fastConfig(), nil)

	calls := 0
	boom := errors.New("still down")
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return boom
	}, alwaysRetry)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestExecuteNonRetryableFailsFast(t *testing.T) {
	e := NewExecutor(fastConfig(), nil)

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("bad request")
	}, func(error) Classification {
		return Classification{Retryable: false, RecordFailure: true}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteNilClassifierNeverRetries(t *testing.T) {
	e := NewExecutor(fastConfig(), nil)

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("boom")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	e := NewExecutor(fastConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := e.Execute(ctx, "op", func(context.Context) error {
		calls++
		return nil
	}, alwaysRetry)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.6
	cfg.BreakerOpenTimeout = time.Minute
	e := NewExecutor(cfg, nil)

	boom := errors.New("remote down")
	for i := 0; i < 3; i++ {
		_ = e.Execute(context.Background(), "op", func(context.Context) error {
			return boom
		}, alwaysRetry)
	}

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, alwaysRetry)

	require.Error(t, err)
	assert.True(t, IsCircuitOpen(err))
	assert.Equal(t, 0, calls)
}

func TestBreakersAreIndependentPerOperation(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerOpenTimeout = time.Minute
	e := NewExecutor(cfg, nil)

	boom := errors.New("textract down")
	for i := 0; i < 3; i++ {
		_ = e.Execute(context.Background(), "textract.detect", func(context.Context) error {
			return boom
		}, alwaysRetry)
	}

	err := e.Execute(context.Background(), "openai.chat", func(context.Context) error {
		return nil
	}, alwaysRetry)
	assert.NoError(t, err)
}

func TestIsCircuitOpen(t *testing.T) {
	assert.False(t, IsCircuitOpen(nil))
	assert.False(t, IsCircuitOpen(errors.New("plain")))
}
