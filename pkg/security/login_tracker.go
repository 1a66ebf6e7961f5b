package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // how long failures are remembered
	BlockDuration time.Duration // how long a block lasts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed logins per account and blocks the account for a
// while once MaxAttempts is reached. Counters live in Redis when a client is
// given so every instance sees the same state; otherwise they are per process.
// A nil *LoginTracker never blocks.
type LoginTracker struct {
	config LoginTrackerConfig
	client *goredis.Client
	audit  *SecurityLogger
	now    func() time.Time

	mu       sync.Mutex
	failures map[string]*failureEntry
	blocks   map[string]time.Time
}

type failureEntry struct {
	count   int
	resetAt time.Time
}

// Redis key patterns. Logins are hashed so they never appear in Redis.
const (
	failLoginPrefix    = "fail:login:"
	blockedLoginPrefix = "blocked:login:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the new count.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, audit *SecurityLogger) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = DefaultLoginTrackerConfig().AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = DefaultLoginTrackerConfig().BlockDuration
	}
	return &LoginTracker{
		config:   config,
		client:   client,
		audit:    audit,
		now:      time.Now,
		failures: make(map[string]*failureEntry),
		blocks:   make(map[string]time.Time),
	}
}

func subjectKey(login string) string {
	return HashValue(strings.ToLower(strings.TrimSpace(login)))
}

// IsBlocked reports whether login is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, login string) (bool, error) {
	if lt == nil {
		return false, nil
	}
	key := subjectKey(login)

	if lt.client != nil {
		exists, err := lt.client.Exists(ctx, blockedLoginPrefix+key).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check login block: %w", err)
		}
		if exists > 0 {
			lt.audit.LogLoginBlocked(ctx, login)
			return true, nil
		}
		return false, nil
	}

	lt.mu.Lock()
	until, ok := lt.blocks[key]
	if ok && !lt.now().Before(until) {
		delete(lt.blocks, key)
		ok = false
	}
	lt.mu.Unlock()

	if ok {
		lt.audit.LogLoginBlocked(ctx, login)
	}
	return ok, nil
}

// RecordFailure counts a failed attempt and creates a block when the limit is
// reached. It returns whether the login is now blocked.
func (lt *LoginTracker) RecordFailure(ctx context.Context, login string) (bool, error) {
	if lt == nil {
		return false, nil
	}
	key := subjectKey(login)

	var (
		count int
		err   error
	)
	if lt.client != nil {
		count, err = lt.atomicIncrement(ctx, failLoginPrefix+key)
		if err != nil {
			return false, fmt.Errorf("failed to increment login failures: %w", err)
		}
	} else {
		count = lt.incrementInMemory(key)
	}

	lt.audit.LogLoginFailed(ctx, login, count)

	if count < lt.config.MaxAttempts {
		return false, nil
	}
	if err := lt.createBlock(ctx, key); err != nil {
		return true, err
	}
	lt.audit.LogBlockCreated(ctx, login, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

// Clear forgets failures after a successful login.
func (lt *LoginTracker) Clear(ctx context.Context, login string) error {
	if lt == nil {
		return nil
	}
	key := subjectKey(login)

	if lt.client != nil {
		if err := lt.client.Del(ctx, failLoginPrefix+key).Err(); err != nil {
			return fmt.Errorf("failed to clear login failures: %w", err)
		}
		return nil
	}

	lt.mu.Lock()
	delete(lt.failures, key)
	lt.mu.Unlock()
	return nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string) (int, error) {
	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (lt *LoginTracker) incrementInMemory(key string) int {
	now := lt.now()

	lt.mu.Lock()
	defer lt.mu.Unlock()

	entry, ok := lt.failures[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &failureEntry{resetAt: now.Add(lt.config.AttemptWindow)}
		lt.failures[key] = entry
	}
	entry.count++
	return entry.count
}

func (lt *LoginTracker) createBlock(ctx context.Context, key string) error {
	if lt.client != nil {
		pipe := lt.client.TxPipeline()
		pipe.Set(ctx, blockedLoginPrefix+key, "1", lt.config.BlockDuration)
		pipe.Del(ctx, failLoginPrefix+key)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to set login block: %w", err)
		}
		return nil
	}

	lt.mu.Lock()
	lt.blocks[key] = lt.now().Add(lt.config.BlockDuration)
	delete(lt.failures, key)
	lt.mu.Unlock()
	return nil
}
