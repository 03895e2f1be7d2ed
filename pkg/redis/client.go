// Package redis wraps the go-redis client with the key conventions used for
// session state.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const namespace = "ks"

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("redis: key not found")

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Client is a thin namespaced wrapper over go-redis.
type Client struct {
	rdb    cmdable
	closer func() error
}

// New connects to the given redis URL ("redis://host:port/db").
func New(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	rdb := redis.NewClient(opts)
	return &Client{rdb: rdb, closer: rdb.Close}, nil
}

// NewWithCmdable builds a client over an existing connection, used by tests.
func NewWithCmdable(rdb cmdable) *Client {
	return &Client{rdb: rdb, closer: func() error { return nil }}
}

// BuildKey joins key parts under the application namespace.
func BuildKey(parts ...string) string {
	return namespace + ":" + strings.Join(parts, ":")
}

// SessionStateKey is the key holding a shopper session's serialized state.
func SessionStateKey(sessionID string) string {
	return BuildKey("session", "state", sessionID)
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return v, nil
}

func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis: del: %w", err)
	}
	return nil
}

// Touch extends a key's TTL without rewriting the value.
func (c *Client) Touch(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("redis: expire %s: %w", key, err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.closer()
}
