// Package cache serves repeated GET requests from Redis. Entries are grouped
// per resource; a successful write on a group bumps the group's generation
// so every entry cached under the old generation stops being read.
package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"popcorn-palace/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "popcorn:cache"

// NewRedisClient returns a connected client, or nil when caching is disabled
// or the server does not answer a ping. Callers treat nil as "no cache".
func NewRedisClient(ctx context.Context, cfg utils.CacheConfig, log *zap.Logger) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, response cache disabled",
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		client.Close()
		return nil
	}
	return client
}

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("component", "cache")),
	}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

func generationKey(group string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, group)
}

func (c *Cache) generation(ctx context.Context, group string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(group)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// captureWriter forwards the response while keeping a copy of the body.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware caches 200 responses of GET requests under group. Redis errors
// fall through to the handler.
func (c *Cache) Middleware(group string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !c.enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			gen, err := c.generation(ctx, group)
			if err != nil {
				c.log.Warn("Cache generation lookup failed", zap.String("group", group), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			key := fmt.Sprintf("%s:%s:%d:%s", keyPrefix, group, gen, r.URL.RequestURI())

			if body, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status != http.StatusOK {
				return
			}
			if err := c.rdb.Set(context.WithoutCancel(ctx), key, cw.buf.Bytes(), c.ttl).Err(); err != nil {
				c.log.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

// Invalidate bumps the generation of every group after a 2xx response. The
// response is held back until the bump is done, so a client that reads right
// after its own write never gets a stale entry.
func (c *Cache) Invalidate(groups ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !c.enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bw := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(bw, r)

			if bw.status >= 200 && bw.status < 300 {
				ctx := context.WithoutCancel(r.Context())
				for _, group := range groups {
					if err := c.rdb.Incr(ctx, generationKey(group)).Err(); err != nil {
						c.log.Warn("Cache invalidation failed", zap.String("group", group), zap.Error(err))
					}
				}
			}

			w.WriteHeader(bw.status)
			_, _ = w.Write(bw.buf.Bytes())
		})
	}
}

// bufferedWriter records status and body without sending them. Headers go
// straight to the underlying writer's map and are sent on flush.
type bufferedWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.status = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.buf.Write(b)
}
