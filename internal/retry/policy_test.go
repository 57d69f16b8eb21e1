package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mublog/internal/config"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, config.RetryBackoffLinear, p.Mode)
	assert.Equal(t, time.Second, p.Initial)
	assert.Equal(t, 30*time.Second, p.Max)
	assert.Zero(t, p.MaxRetries)
	require.NoError(t, p.Validate())
}

func TestNewPolicy_ClampsInitial(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial)
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, config.RetryBackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	p = NewPolicy("random", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestFromConfig(t *testing.T) {
	p := FromConfig(config.RetryConfig{Attempts: 3, Backoff: config.RetryBackoffExponential, Initial: 10 * time.Millisecond})
	assert.Equal(t, 3, p.MaxRetries)
	assert.Equal(t, config.RetryBackoffExponential, p.Mode)
	assert.Equal(t, 10*time.Millisecond, p.Initial)
}

func TestDelayModes(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name    string
		policy  Policy
		attempt int
		want    time.Duration
	}{
		{"fixed", NewPolicy(config.RetryBackoffFixed, 100*ms, 500*ms, 3), 3, 100 * ms},
		{"linear first", NewPolicy(config.RetryBackoffLinear, 100*ms, 250*ms, 5), 1, 100 * ms},
		{"linear second", NewPolicy(config.RetryBackoffLinear, 100*ms, 250*ms, 5), 2, 200 * ms},
		{"linear capped", NewPolicy(config.RetryBackoffLinear, 100*ms, 250*ms, 5), 4, 250 * ms},
		{"exp second", NewPolicy(config.RetryBackoffExponential, 50*ms, 160*ms, 5), 2, 100 * ms},
		{"exp capped", NewPolicy(config.RetryBackoffExponential, 50*ms, 160*ms, 5), 3, 160 * ms},
		{"exp huge attempt", NewPolicy(config.RetryBackoffExponential, 50*ms, 160*ms, 5), 80, 160 * ms},
		{"zero attempt", NewPolicy(config.RetryBackoffLinear, 10*ms, 20*ms, 1), 0, 0},
		{"negative attempt", NewPolicy(config.RetryBackoffLinear, 10*ms, 20*ms, 1), -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.policy.Delay(tt.attempt), tt.name)
	}
}

func TestDo(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 2)
	boom := errors.New("boom")

	calls := 0
	err := p.Do(context.Background(), nil, func() error {
		calls++
		if calls < 3 {
			return boom
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = p.Do(context.Background(), nil, func() error { calls++; return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)

	calls = 0
	err = p.Do(context.Background(), func(error) bool { return false }, func() error { calls++; return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDo_StopsOnCancel(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Hour, time.Hour, 5)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := p.Do(ctx, nil, func() error {
		calls++
		cancel()
		return errors.New("boom")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
