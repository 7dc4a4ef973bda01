package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventhub/platform/internal/api/metrics"
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/core/ports"
)

const (
	profileKeyPrefix       = "eventhub:profile:"
	defaultLookupTimeout   = 3 * time.Second
	cacheBudgetDenominator = 4
)

// ProfileCache is a read-through cache in front of a ProfileLookup. Only
// successful lookups are stored, so an outage is retried on the next read.
// Cached snippets can be up to ttl stale.
//
// A whole FetchProfile is bounded by timeout. The Redis read may use a
// quarter of it; the write happens in the background with its own quarter.
type ProfileCache struct {
	client  redis.Cmdable
	next    ports.ProfileLookup
	ttl     time.Duration
	timeout time.Duration
	log     zerolog.Logger

	writes sync.WaitGroup
}

func NewProfileCache(client redis.Cmdable, next ports.ProfileLookup, ttl, timeout time.Duration, log zerolog.Logger) *ProfileCache {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &ProfileCache{client: client, next: next, ttl: ttl, timeout: timeout, log: log}
}

func profileKey(userID int64) string {
	return profileKeyPrefix + strconv.FormatInt(userID, 10)
}

func (c *ProfileCache) FetchProfile(ctx context.Context, userID int64) *domain.UserSnippet {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := profileKey(userID)
	if s := c.read(ctx, key, userID); s != nil {
		return s
	}

	s := c.next.FetchProfile(ctx, userID)
	if s == nil {
		return nil
	}

	c.write(ctx, key, s)
	return s
}

func (c *ProfileCache) read(ctx context.Context, key string, userID int64) *domain.UserSnippet {
	readCtx, cancel := context.WithTimeout(ctx, c.timeout/cacheBudgetDenominator)
	defer cancel()

	raw, err := c.client.Get(readCtx, key).Bytes()
	switch {
	case err == nil:
		var s domain.UserSnippet
		if jerr := json.Unmarshal(raw, &s); jerr == nil && s.ID == userID {
			metrics.ProfileLookupsTotal.WithLabelValues("cache_hit").Inc()
			return &s
		}
		c.log.Warn().Str("key", key).Msg("discarding corrupt cached profile")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("profile cache read failed")
	}
	return nil
}

// write stores s without holding up the caller. It is detached from ctx so
// the read returning does not cancel it.
func (c *ProfileCache) write(ctx context.Context, key string, s *domain.UserSnippet) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}

	c.writes.Add(1)
	go func() {
		defer c.writes.Done()
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout/cacheBudgetDenominator)
		defer cancel()

		if err := c.client.Set(writeCtx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("profile cache write failed")
		}
	}()
}

// Wait blocks until background cache writes have finished.
func (c *ProfileCache) Wait() {
	c.writes.Wait()
}
