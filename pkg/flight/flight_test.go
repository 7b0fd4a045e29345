package flight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMemoizes(t *testing.T) {
	var calls atomic.Int32
	c := New(time.Minute, func(k string) (string, error) {
		calls.Add(1)
		return "v:" + k, nil
	})

	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "v:a", v)

	v, err = c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "v:a", v)
	assert.Equal(t, int32(1), calls.Load())

	_, err = c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	c := New(time.Minute, func(k string) (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return 42, nil
	})

	_, err := c.Get("k")
	assert.ErrorIs(t, err, boom)

	v, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheExpiry(t *testing.T) {
	var calls atomic.Int32
	c := New(10*time.Millisecond, func(k string) (int, error) {
		return int(calls.Add(1)), nil
	})

	v, _ := c.Get("k")
	assert.Equal(t, 1, v)

	time.Sleep(20 * time.Millisecond)

	v, _ = c.Get("k")
	assert.Equal(t, 2, v)
}

func TestCacheCoalesces(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := New(time.Minute, func(k string) (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get("k")
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}

	// Give the goroutines time to pile onto the pending job.
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheForget(t *testing.T) {
	var calls atomic.Int32
	c := New(time.Minute, func(k string) (int, error) {
		return int(calls.Add(1)), nil
	})

	v, _ := c.Get("k")
	assert.Equal(t, 1, v)

	c.Forget("k")
	v, _ = c.Get("k")
	assert.Equal(t, 2, v)
}
