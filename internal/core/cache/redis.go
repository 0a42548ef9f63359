package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var lookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{Namespace: "user_profile", Name: "cache_lookups_total", Help: "Read-through cache lookups"},
	[]string{"result"}, // hit | miss | error
)

func init() { prometheus.MustRegister(lookups) }

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// 单次 redis 操作超时，缓存慢时宁可回源
	OpTimeout time.Duration
}

// Cache redis 读穿缓存；redis 故障只降级不报错
type Cache struct {
	RDB       *redis.Client
	prefix    string
	opTimeout time.Duration
	sf        singleflight.Group
}

func New(o Options) *Cache {
	if o.OpTimeout <= 0 {
		o.OpTimeout = 200 * time.Millisecond
	}
	return &Cache{
		RDB: redis.NewClient(&redis.Options{
			Addr:         o.Addr,
			Password:     o.Password,
			DB:           o.DB,
			ReadTimeout:  o.OpTimeout,
			WriteTimeout: o.OpTimeout,
		}),
		prefix:    o.Prefix,
		opTimeout: o.OpTimeout,
	}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// GetOrLoad 同 key 并发回源合并为一次；load 失败不写缓存
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	key = c.key(key)
	b, err := c.RDB.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		lookups.WithLabelValues("hit").Inc()
		return b, nil
	case errors.Is(err, redis.Nil):
		lookups.WithLabelValues("miss").Inc()
	default:
		lookups.WithLabelValues("error").Inc()
	}

	ch := c.sf.DoChan(key, func() (any, error) {
		// 共享回源不受首个调用方取消影响
		lctx := context.WithoutCancel(ctx)
		b, e := load(lctx)
		if e != nil {
			return nil, e
		}
		sctx, cancel := context.WithTimeout(lctx, c.opTimeout)
		defer cancel()
		_ = c.RDB.Set(sctx, key, b, ttl).Err()
		return b, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]byte), nil
	}
}

// Delete 写操作后失效
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }
