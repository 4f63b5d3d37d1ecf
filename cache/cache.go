// Package cache is a keyed query cache with request de-duplication, stale
// refetching and retry. Mutations go through the same retry loop and patch
// cached lists on success.
package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"checkin-guide/apperr"
	"checkin-guide/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Key identifies one cached query: an entity name plus canonical params.
type Key struct {
	Entity string
	Params string
}

// NewKey sorts params so equal filters always produce equal keys. Empty
// values are dropped.
func NewKey(entity string, params map[string]string) Key {
	v := url.Values{}
	for k, val := range params {
		if val != "" {
			v.Set(k, val)
		}
	}
	return Key{Entity: entity, Params: v.Encode()}
}

func (k Key) Param(name string) string {
	v, _ := url.ParseQuery(k.Params)
	return v.Get(name)
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Entity
	}
	return k.Entity + "?" + k.Params
}

type Options struct {
	StaleTime          time.Duration
	QueryRetries       int
	QueryRetryBase     time.Duration
	QueryRetryMax      time.Duration
	MutationRetries    int
	MutationRetryDelay time.Duration

	// GCTime drops stale entries nobody has read for this long. Zero keeps
	// everything.
	GCTime time.Duration
}

func DefaultOptions() Options {
	return Options{
		StaleTime:          5 * time.Minute,
		QueryRetries:       3,
		QueryRetryBase:     time.Second,
		QueryRetryMax:      30 * time.Second,
		MutationRetries:    2,
		MutationRetryDelay: time.Second,
		GCTime:             30 * time.Minute,
	}
}

type Fetcher func(ctx context.Context) (any, error)

// entry.gen moves on every write or invalidation; a fetch only stores its
// result if gen is unchanged since it started.
type entry struct {
	data      any
	hasData   bool
	updatedAt time.Time
	usedAt    time.Time
	stale     bool
	gen       uint64
}

type Client struct {
	opts Options
	log  *logrus.Logger

	mu        sync.Mutex
	entries   map[Key]*entry
	lastSweep time.Time
	group     singleflight.Group

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(opts Options, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		opts:    opts,
		log:     log,
		entries: make(map[Key]*entry),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Query returns cached data when present. Stale data is returned at once
// and refreshed in the background. Concurrent misses for the same key share
// one fetch; a caller whose ctx ends stops waiting without cancelling it.
func (c *Client) Query(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	c.mu.Lock()
	now := c.now()
	c.sweep(now)
	e := c.entries[key]
	if e != nil {
		e.usedAt = now
	}
	if e != nil && e.hasData {
		data := e.data
		stale := e.stale || now.Sub(e.updatedAt) >= c.opts.StaleTime
		gen := e.gen
		c.mu.Unlock()
		if stale {
			c.log.WithField("key", key.String()).Debug("cache: stale, refetching in background")
			c.group.DoChan(flightKey(key, gen), func() (any, error) {
				return c.fetch(key, gen, fetch)
			})
		}
		return data, nil
	}
	var gen uint64
	if e != nil {
		gen = e.gen
	}
	c.mu.Unlock()

	ch := c.group.DoChan(flightKey(key, gen), func() (any, error) {
		return c.fetch(key, gen, fetch)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// sweep drops idle stale entries, at most once per GCTime. c.mu is held.
func (c *Client) sweep(now time.Time) {
	if c.opts.GCTime <= 0 || now.Sub(c.lastSweep) < c.opts.GCTime {
		return
	}
	c.lastSweep = now
	for k, e := range c.entries {
		if now.Sub(e.usedAt) < c.opts.GCTime {
			continue
		}
		if e.hasData && !e.stale && now.Sub(e.updatedAt) < c.opts.StaleTime {
			continue
		}
		delete(c.entries, k)
	}
}

func flightKey(key Key, gen uint64) string {
	return fmt.Sprintf("%s#%d", key.String(), gen)
}

func (c *Client) fetch(key Key, gen uint64, fetch Fetcher) (any, error) {
	data, err := c.retry(context.Background(), c.opts.QueryRetries, c.queryDelay, fetch)
	if err != nil {
		if isNotFound(err) {
			c.evict(key, gen)
			return nil, err
		}
		c.log.WithError(err).WithField("key", key.String()).Error("cache: query failed")
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil {
		e = &entry{gen: gen, usedAt: c.now()}
		c.entries[key] = e
	}
	if e.gen != gen {
		c.log.WithField("key", key.String()).Debug("cache: dropping superseded result")
		if e.hasData {
			return e.data, nil
		}
		return data, nil
	}
	e.data = data
	e.hasData = true
	e.updatedAt = c.now()
	e.stale = false
	return data, nil
}

// evict drops the data of key when the backend no longer has it. A newer
// write since the fetch started wins.
func (c *Client) evict(key Key, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || e.gen != gen {
		return
	}
	c.log.WithField("key", key.String()).Debug("cache: gone from backend, evicting")
	c.entries[key] = &entry{gen: gen + 1, usedAt: e.usedAt}
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) || apperr.KindOf(err) == apperr.KindNotFound
}

// Mutate runs fn with the mutation retry policy. The cache is not touched;
// callers patch lists and invalidate after success.
func (c *Client) Mutate(ctx context.Context, fn Fetcher) (any, error) {
	return c.retry(ctx, c.opts.MutationRetries, c.mutationDelay, fn)
}

func (c *Client) retry(ctx context.Context, retries int, delay func(attempt int) time.Duration, fn Fetcher) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, delay(attempt)); err != nil {
				return nil, err
			}
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !retryable(err) {
			return nil, err
		}
		c.log.WithError(err).WithField("attempt", attempt+1).Debug("cache: attempt failed")
	}
	return nil, lastErr
}

// queryDelay is base * 2^(attempt-1), capped.
func (c *Client) queryDelay(attempt int) time.Duration {
	d := c.opts.QueryRetryBase * time.Duration(1<<uint(attempt-1))
	if c.opts.QueryRetryMax > 0 && d > c.opts.QueryRetryMax {
		d = c.opts.QueryRetryMax
	}
	return d
}

func (c *Client) mutationDelay(int) time.Duration {
	return c.opts.MutationRetryDelay
}

// retryable reports false for errors another attempt cannot fix.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if isNotFound(err) {
		return false
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindPrecondition, apperr.KindAuth:
		return false
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) GetQueryData(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || !e.hasData {
		return nil, false
	}
	return e.data, true
}

// SetQueryData stores data as fresh and supersedes any in-flight fetch.
func (c *Client) SetQueryData(key Key, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil {
		e = &entry{}
		c.entries[key] = e
	}
	e.data = data
	e.hasData = true
	e.updatedAt = c.now()
	e.usedAt = e.updatedAt
	e.stale = false
	e.gen++
}

// Invalidate marks every key of entity stale. Cached data stays readable
// until the refetch lands.
func (c *Client) Invalidate(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Entity == entity {
			e.stale = true
			e.gen++
		}
	}
}

// Remove drops the data of key; late results of earlier fetches are ignored.
func (c *Client) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entries[key]; e != nil {
		c.entries[key] = &entry{gen: e.gen + 1, usedAt: e.usedAt}
	}
}

// Query is the typed form of Client.Query.
func Query[T any](ctx context.Context, c *Client, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: %s holds %T", key, v)
	}
	return t, nil
}

// Mutate is the typed form of Client.Mutate.
func Mutate[T any](ctx context.Context, c *Client, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Mutate(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: mutation returned %T", v)
	}
	return t, nil
}
