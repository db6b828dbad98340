package jobs

import (
	"context"
	"sync"
	"time"

	"agu/internal/core/domain/model/kernel"
)

// LocalFetchLock is an in-process ports.FetchLock for single-replica deployments.
type LocalFetchLock struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewLocalFetchLock() *LocalFetchLock {
	return &LocalFetchLock{expires: make(map[string]time.Time), now: time.Now}
}

func (l *LocalFetchLock) Acquire(_ context.Context, providerID kernel.UUID, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := providerID.String()
	now := l.now()
	if until, held := l.expires[key]; held && now.Before(until) {
		return false, nil
	}
	l.expires[key] = now.Add(ttl)
	return true, nil
}

func (l *LocalFetchLock) Release(_ context.Context, providerID kernel.UUID) error {
	l.mu.Lock()
	delete(l.expires, providerID.String())
	l.mu.Unlock()
	return nil
}
