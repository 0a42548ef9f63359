package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID   string `json:"id"`
	City string `json:"city"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(Options{Addr: mr.Addr(), Prefix: "test:"})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSON_CachesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	calls := 0
	load := func(context.Context) (*profile, error) {
		calls++
		return &profile{ID: "u1", City: "Porto"}, nil
	}

	p, err := GetOrLoadJSON(c, ctx, "profile:u1", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, "Porto", p.City)
	require.True(t, mr.Exists("test:profile:u1"))

	_, err = GetOrLoadJSON(c, ctx, "profile:u1", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	require.NoError(t, c.Delete(ctx, "profile:u1"))
	require.False(t, mr.Exists("test:profile:u1"))
	_, err = GetOrLoadJSON(c, ctx, "profile:u1", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestGetOrLoadJSON_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	_, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*profile, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	require.False(t, mr.Exists("test:k"))
}

func TestGetOrLoadJSON_AbsentNotCached(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	p, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*profile, error) { return nil, nil })
	require.NoError(t, err)
	require.Nil(t, p)
	require.False(t, mr.Exists("test:k"))
}

func TestGetOrLoadJSON_CorruptEntryReloaded(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("test:k", "{not json"))

	p, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*profile, error) {
		return &profile{ID: "u2"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "u2", p.ID)
	require.False(t, mr.Exists("test:k"))
}

func TestGetOrLoad_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	_, err := c.GetOrLoad(ctx, "k", time.Second, func(context.Context) ([]byte, error) { return []byte("v"), nil })
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists("test:k"))
}

func TestGetOrLoad_RedisDownFallsBack(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	b, err := c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) { return []byte("v"), nil })
	require.NoError(t, err)
	require.Equal(t, "v", string(b))
}

func TestGetOrLoad_Singleflight(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("v"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.GetOrLoad(ctx, "hot", time.Minute, load)
			require.NoError(t, err)
			require.Equal(t, "v", string(b))
		}()
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	require.LessOrEqual(t, calls.Load(), int32(2))
}

func TestGetOrLoad_CallerCancel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	done := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(ctx, "slow", time.Minute, func(context.Context) ([]byte, error) {
			<-release
			return []byte("v"), nil
		})
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
