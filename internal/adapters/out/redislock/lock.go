// Package redislock implements the per-provider fetch lock on Redis, so that
// several replicas of the service never fetch the same provider at once.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agu/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix prefixes every lock key.
const KeyPrefix = "agu:fetch-lock:"

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock implements ports.FetchLock with SET NX PX.
type Lock struct {
	client redis.UniversalClient

	mu     sync.Mutex
	tokens map[string]string
}

func New(client redis.UniversalClient) *Lock {
	return &Lock{client: client, tokens: make(map[string]string)}
}

// NewFromAddr connects to a single Redis node and checks it answers.
func NewFromAddr(ctx context.Context, addr, password string, db int) (*Lock, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client), nil
}

func (l *Lock) Acquire(ctx context.Context, providerID kernel.UUID, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, errors.New("lock ttl must be positive")
	}

	key := KeyPrefix + providerID.String()
	token := uuid.NewString()
	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !acquired {
		return false, nil
	}

	l.mu.Lock()
	l.tokens[key] = token
	l.mu.Unlock()
	return true, nil
}

// Release frees a lock taken by this instance. Releasing a lock that is not
// held is a no-op.
func (l *Lock) Release(ctx context.Context, providerID kernel.UUID) error {
	key := KeyPrefix + providerID.String()

	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !ok {
		return nil
	}

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

func (l *Lock) Close() error {
	return l.client.Close()
}
