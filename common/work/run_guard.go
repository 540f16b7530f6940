package work

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultLockPoll = 250 * time.Millisecond

// Locker is a distributed mutex keyed by name, such as the Redis client.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// RunGuard serializes runs of one kind of work across service instances.
// It only reduces duplicate work: when the lock cannot be taken within the
// wait window, or the locker fails, the caller proceeds unguarded.
type RunGuard struct {
	locker Locker
	key    string
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
}

// NewRunGuard returns nil when locker is nil; a nil guard never blocks.
func NewRunGuard(locker Locker, key string, ttl, wait time.Duration) *RunGuard {
	if locker == nil {
		return nil
	}
	return &RunGuard{
		locker: locker,
		key:    key,
		ttl:    ttl,
		wait:   wait,
		poll:   defaultLockPoll,
	}
}

// Acquire waits for the lock and returns its release function, which is
// always safe to call. held reports whether the lock was obtained.
func (g *RunGuard) Acquire(ctx context.Context) (release func(), held bool) {
	noop := func() {}
	if g == nil {
		return noop, false
	}

	deadline := time.Now().Add(g.wait)
	for {
		token, ok, err := g.locker.TryLock(ctx, g.key, g.ttl)
		if err != nil {
			log.Warn().Err(err).Str("key", g.key).Msg("Run lock unavailable, continuing without it")
			return noop, false
		}
		if ok {
			return func() {
				// The caller's context may already be done; release on a fresh one.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := g.locker.Unlock(releaseCtx, g.key, token); err != nil {
					log.Warn().Err(err).Str("key", g.key).Msg("Failed to release run lock")
				}
			}, true
		}

		if !time.Now().Before(deadline) {
			log.Warn().Str("key", g.key).Dur("waited", g.wait).Msg("Run lock still held, continuing without it")
			return noop, false
		}

		select {
		case <-ctx.Done():
			return noop, false
		case <-time.After(g.poll):
		}
	}
}
