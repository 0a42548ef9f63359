package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// load 返回 nil 时借用该错误跳过写缓存
var errAbsent = errors.New("cache: value absent")

// GetOrLoadJSON load 返回 (nil, nil) 时不缓存，结果为 nil
// 缓存值反序列化失败视为脏数据：删除并直接回源一次
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if v == nil {
			return nil, errAbsent
		}
		return json.Marshal(v)
	})
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out T
	if json.Unmarshal(b, &out) != nil {
		_ = c.Delete(ctx, key)
		return load(ctx)
	}
	return &out, nil
}
