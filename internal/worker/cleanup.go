package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Varun5711/devconnect/internal/events"
	"github.com/Varun5711/devconnect/internal/lock"
	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/service"
)

const sweepLockKey = "orphan-sweep"

type Sweeper interface {
	DeleteOrphanProfiles(ctx context.Context) (int64, error)
}

type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

type Locker interface {
	TryLock(ctx context.Context, key string) (func(), error)
}

type EventSource interface {
	Poll(ctx context.Context, handle events.Handler) (int, error)
}

// Cleaner reacts to account events and periodically removes profiles whose
// owner no longer exists. cache and locker may be nil.
type Cleaner struct {
	store  Sweeper
	cache  CacheInvalidator
	locker Locker
	log    *logger.Logger
}

func NewCleaner(store Sweeper, cache CacheInvalidator, locker Locker, log *logger.Logger) *Cleaner {
	return &Cleaner{
		store:  store,
		cache:  cache,
		locker: locker,
		log:    log,
	}
}

func (c *Cleaner) HandleEvent(ctx context.Context, e *events.AccountEvent) error {
	switch e.Type {
	case events.AccountDeleted:
		c.invalidate(ctx, e.UserID)
		_, err := c.Sweep(ctx)
		return err
	case events.ProfileUpdated:
		c.invalidate(ctx, e.UserID)
	case events.UserRegistered:
		c.log.Debug("User registered: %s", e.UserID)
	default:
		c.log.Warn("Ignoring unknown event type %q", e.Type)
	}
	return nil
}

// Sweep deletes orphaned profiles. When another worker holds the sweep lock
// it returns (0, nil).
func (c *Cleaner) Sweep(ctx context.Context) (int64, error) {
	if c.locker != nil {
		release, err := c.locker.TryLock(ctx, sweepLockKey)
		defer release()
		if errors.Is(err, lock.ErrLockNotAcquired) {
			c.log.Debug("Sweep already running elsewhere")
			return 0, nil
		}
		if err != nil {
			c.log.Warn("Sweep lock unavailable: %v", err)
		}
	}

	removed, err := c.store.DeleteOrphanProfiles(ctx)
	if err != nil {
		c.log.Error("Failed to delete orphan profiles: %v", err)
		return 0, err
	}

	if removed > 0 {
		c.log.Info("Deleted %d orphaned profiles", removed)
		if c.cache != nil {
			_ = c.cache.Delete(ctx, service.AllProfilesKey)
		}
	}
	return removed, nil
}

func (c *Cleaner) invalidate(ctx context.Context, userID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, service.ProfileCacheKey(userID), service.AllProfilesKey); err != nil {
		c.log.Warn("Failed to invalidate cache for %s: %v", userID, err)
	}
}

// Run sweeps every interval and, with a non-nil source, consumes events
// until ctx is cancelled.
func (c *Cleaner) Run(ctx context.Context, source EventSource, interval time.Duration) {
	var wg sync.WaitGroup

	if source != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.consume(ctx, source)
		}()
	}

	c.Sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}

func (c *Cleaner) consume(ctx context.Context, source EventSource) {
	for ctx.Err() == nil {
		n, err := source.Poll(ctx, c.HandleEvent)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error("Failed to poll events: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if n > 0 {
			c.log.Debug("Processed %d events", n)
		}
	}
}
