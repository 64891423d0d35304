package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jobboard/pkg/logger"
	"jobboard/pkg/utils"
)

// RateLimit allows maxRequests per client IP per window, counted in Redis.
// A nil client counts in process, which is only correct for one replica.
func RateLimit(redisClient *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 || window <= 0 {
		panic("RateLimit needs a positive limit and window")
	}

	var counter func(c *gin.Context, key string) (int64, error)
	if redisClient != nil {
		counter = func(c *gin.Context, key string) (int64, error) {
			ctx := c.Request.Context()
			pipe := redisClient.Pipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				return 0, err
			}
			return incr.Val(), nil
		}
	} else {
		local := newLocalWindow(window)
		counter = func(_ *gin.Context, key string) (int64, error) {
			return local.incr(key), nil
		}
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()

		count, err := counter(c, key)
		if err != nil {
			// fail open
			logger.Error().Err(err).Msg("RateLimit: Redis pipeline failed")
			c.Next()
			return
		}
		if count > int64(maxRequests) {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

type localWindow struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	hits   map[string]*windowCount
}

type windowCount struct {
	count   int64
	resetAt time.Time
}

func newLocalWindow(window time.Duration) *localWindow {
	return &localWindow{window: window, now: time.Now, hits: make(map[string]*windowCount)}
}

func (l *localWindow) incr(key string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, w := range l.hits {
		if !now.Before(w.resetAt) {
			delete(l.hits, k)
		}
	}
	w, ok := l.hits[key]
	if !ok {
		w = &windowCount{resetAt: now.Add(l.window)}
		l.hits[key] = w
	}
	w.count++
	return w.count
}
