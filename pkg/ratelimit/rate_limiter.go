package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type LimitType string

const (
	LimitTypeDefault LimitType = "default"
	LimitTypePublic  LimitType = "public"
	LimitTypeAuth    LimitType = "auth"
	LimitTypeBooking LimitType = "booking"
	LimitTypeAdmin   LimitType = "admin"
)

// Config holds per-class request limits for a fixed window.
type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	BookingRequests int           `json:"booking_requests"`
	AdminRequests   int           `json:"admin_requests"`
}

// Result represents a rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// Limiter decides whether a request identified by client IP and route class
// may proceed. Correctness across instances depends on the backing store;
// the in-process implementation is advisory only.
type Limiter interface {
	IsAllowed(ctx context.Context, clientIP string, limitType LimitType) (*Result, error)
}

// RedisLimiter is a fixed-window counter backed by Redis, shared across
// instances.
type RedisLimiter struct {
	client *redis.Client
	config *Config
}

func NewRedisLimiter(client *redis.Client, config *Config) *RedisLimiter {
	return &RedisLimiter{client: client, config: config}
}

// fixed-window increment: first INCR in a window sets the expiry, so the
// counter and its reset time move together.
const fixedWindowScript = `
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return {current, ttl}
`

func (r *RedisLimiter) IsAllowed(ctx context.Context, clientIP string, limitType LimitType) (*Result, error) {
	limit := r.config.limitFor(limitType)
	if !r.config.Enabled {
		return allowAll(limit, r.config.WindowDuration), nil
	}

	key := fmt.Sprintf("osspace:ratelimit:%s:%s", clientIP, limitType)

	result, err := r.client.Eval(ctx, fixedWindowScript, []string{key},
		r.config.WindowDuration.Milliseconds()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response")
	}

	count, _ := values[0].(int64)
	ttlMs, _ := values[1].(int64)

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   int(count) <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: time.Now().Add(time.Duration(ttlMs) * time.Millisecond).Unix(),
	}, nil
}

func (c *Config) limitFor(limitType LimitType) int {
	switch limitType {
	case LimitTypePublic:
		return c.PublicRequests
	case LimitTypeAuth:
		return c.AuthRequests
	case LimitTypeBooking:
		return c.BookingRequests
	case LimitTypeAdmin:
		return c.AdminRequests
	default:
		return c.DefaultRequests
	}
}

func allowAll(limit int, window time.Duration) *Result {
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit,
		ResetTime: time.Now().Add(window).Unix(),
	}
}
