package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/redis/go-redis/v9"
)

// EventsGenerationKey counts writes to the event list. The cached list
// lives under a key derived from the current generation, so a write makes
// every earlier entry unreachable, including one stored by a list request
// that read the database before the write landed.
const EventsGenerationKey = "petu:events:gen"

// eventsKey is where the list for generation gen is cached.
func eventsKey(gen int64) string {
	return fmt.Sprintf("petu:events:v%d", gen)
}

// CacheClient is the subset of a Redis client the cache uses.
// *redis.Client satisfies it.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// CachedStore is a read-through Redis cache in front of a Store's event
// list. Writes that change the list bump the generation. Redis errors never
// fail a request; they are logged and the underlying store answers instead.
type CachedStore struct {
	Store
	client CacheClient
	ttl    time.Duration
}

// NewCachedStore wraps store with a list cache living for ttl.
func NewCachedStore(store Store, client CacheClient, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: store, client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and checks it answers.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ListEvents serves the list from Redis when present.
func (c *CachedStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	gen, err := c.client.Get(ctx, EventsGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("event cache: generation lookup failed", slog.String("error", err.Error()))
		return c.Store.ListEvents(ctx)
	}
	key := eventsKey(gen)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var events []model.Event
		jerr := json.Unmarshal(raw, &events)
		if jerr == nil {
			return events, nil
		}
		slog.Warn("event cache: discarding undecodable entry", slog.String("error", jerr.Error()))
	case !errors.Is(err, redis.Nil):
		slog.Warn("event cache: get failed", slog.String("error", err.Error()))
	}

	events, err := c.Store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(events); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			slog.Warn("event cache: set failed", slog.String("error", err.Error()))
		}
	}
	return events, nil
}

// CreateEvent stores the event and retires the cached list.
func (c *CachedStore) CreateEvent(ctx context.Context, event model.Event) (*model.Event, error) {
	e, err := c.Store.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return e, nil
}

// JoinEvent applies the join and retires the cached list.
func (c *CachedStore) JoinEvent(ctx context.Context, id string) (*model.JoinOutcome, error) {
	out, err := c.Store.JoinEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return out, nil
}

func (c *CachedStore) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, EventsGenerationKey).Err(); err != nil {
		slog.Warn("event cache: invalidate failed", slog.String("error", err.Error()))
	}
}

var _ Store = (*CachedStore)(nil)
