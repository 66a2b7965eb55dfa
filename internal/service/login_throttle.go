package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// recordFailureScript increments the failure counter and starts its window on
// the first failure, in one round trip.
var recordFailureScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return count
`)

const loginAttemptsKeyPrefix = "login:failures:"

// LoginThrottle limits consecutive failed logins per email.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

type redisLoginThrottle struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

func NewLoginThrottle(client redis.Cmdable, maxAttempts int, window time.Duration) LoginThrottle {
	return &redisLoginThrottle{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func loginAttemptsKey(email string) string {
	return loginAttemptsKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (t *redisLoginThrottle) Allowed(ctx context.Context, email string) (bool, error) {
	count, err := t.client.Get(ctx, loginAttemptsKey(email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return count < t.maxAttempts, nil
}

func (t *redisLoginThrottle) RecordFailure(ctx context.Context, email string) (int64, error) {
	return recordFailureScript.Run(ctx, t.client, []string{loginAttemptsKey(email)}, t.window.Milliseconds()).Int64()
}

func (t *redisLoginThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, loginAttemptsKey(email)).Err()
}

type noopLoginThrottle struct{}

// NewNoopLoginThrottle never limits logins. It is used when Redis is not available.
func NewNoopLoginThrottle() LoginThrottle {
	return noopLoginThrottle{}
}

func (noopLoginThrottle) Allowed(context.Context, string) (bool, error)        { return true, nil }
func (noopLoginThrottle) RecordFailure(context.Context, string) (int64, error) { return 0, nil }
func (noopLoginThrottle) Reset(context.Context, string) error                  { return nil }
