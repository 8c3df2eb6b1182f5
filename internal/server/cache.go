package server

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"github.com/vidsift/vidsift/internal/spamcheck"
)

// verdictCache is a read-through Redis cache for analysis results. It never
// changes a decision; a miss simply falls through to the detector.
type verdictCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// newVerdictCache returns nil when no address is configured, which disables
// caching entirely.
func newVerdictCache(addr string, ttl time.Duration) *verdictCache {
	if addr == "" {
		return nil
	}
	return &verdictCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// The cache key covers every analysis input, since author name and like
// count both influence the score.
func cacheKey(text, author string, likes int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d", text, author, likes)))
	return fmt.Sprintf("vidsift:verdict:%x", sum)
}

func (c *verdictCache) get(ctx context.Context, text, author string, likes int) (spamcheck.Result, bool) {
	data, err := c.rdb.Get(ctx, cacheKey(text, author, likes)).Bytes()
	if err != nil {
		if err != redis.Nil {
			metricCacheHits.WithLabelValues("error").Inc()
			return spamcheck.Result{}, false
		}
		metricCacheHits.WithLabelValues("miss").Inc()
		return spamcheck.Result{}, false
	}

	var res spamcheck.Result
	if err := json.Unmarshal(data, &res); err != nil {
		metricCacheHits.WithLabelValues("error").Inc()
		return spamcheck.Result{}, false
	}
	metricCacheHits.WithLabelValues("hit").Inc()
	return res, true
}

func (c *verdictCache) set(ctx context.Context, text, author string, likes int, res spamcheck.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	// Best effort; a failed write only costs a future recompute.
	c.rdb.Set(ctx, cacheKey(text, author, likes), data, c.ttl)
}
