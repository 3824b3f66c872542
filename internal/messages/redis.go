package messages

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultKeyPrefix namespaces the history key in Redis to avoid collisions.
	defaultKeyPrefix = "studentsvc:"
)

func init() {
	Register("redis", newRedisStore)
}

// redisStore keeps the history in a single Redis list, {prefix}messages,
// oldest message at the head. Several processes configured with the same
// prefix share one history.
//
// The TTL applies to the whole list and is refreshed on every append, so the
// history expires after a period without new messages.
type redisStore struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	listKey string
}

// appendAndTrim atomically appends a message, pops the oldest entries while
// the list is longer than maxSize and refreshes the key TTL.
//
// KEYS[1] = history list
// ARGV[1] = message, ARGV[2] = maxSize (0 = unbounded), ARGV[3] = TTL in ms (0 = none)
//
// Returns the evicted messages (may be empty).
var appendAndTrim = redis.NewScript(`
redis.call('RPUSH', KEYS[1], ARGV[1])

local maxSize = tonumber(ARGV[2])
local ttlMs   = tonumber(ARGV[3])

local evicted = {}
if maxSize > 0 then
    local size = redis.call('LLEN', KEYS[1])
    while size > maxSize do
        local oldest = redis.call('LPOP', KEYS[1])
        if not oldest then break end
        table.insert(evicted, oldest)
        size = size - 1
    end
end

if ttlMs > 0 then
    redis.call('PEXPIRE', KEYS[1], ttlMs)
end

return evicted
`)

func newRedisStore(cfg ProviderConfig) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStore{
		client:  client,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		listKey: prefix + "messages",
	}, nil
}

func (r *redisStore) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisStore) Append(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	maxSize := strconv.Itoa(r.maxSize)
	ttlMs := strconv.FormatInt(r.ttl.Milliseconds(), 10)

	evicted, err := appendAndTrim.Run(ctx, r.client, []string{r.listKey},
		message, maxSize, ttlMs,
	).StringSlice()
	if err != nil {
		r.logError("redis message Append failed", err)
		return
	}

	if r.onEvict != nil {
		for _, m := range evicted {
			r.onEvict(m)
		}
	}
}

func (r *redisStore) List() []string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := r.client.LRange(ctx, r.listKey, 0, -1).Result()
	if err != nil {
		r.logError("redis message List failed", err)
		return nil
	}
	return messages
}

func (r *redisStore) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Del(ctx, r.listKey).Err(); err != nil {
		r.logError("redis message Clear failed", err)
	}
}

func (r *redisStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := r.client.LLen(ctx, r.listKey).Result()
	if err != nil {
		r.logError("redis message Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
