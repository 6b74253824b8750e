// Package cached wraps the events repository with a read-through cache.
// Events are never modified after creation, so an entry can only go stale
// by a newer event joining a "latest" page; that page TTL bounds it.
package cached

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/geocoder89/eventnudges/internal/cache"
	"github.com/geocoder89/eventnudges/internal/domain/event"
	"github.com/geocoder89/eventnudges/internal/observability"
	"github.com/geocoder89/eventnudges/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventsStore interface {
	Create(ctx context.Context, e event.Event) (event.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error)
	ListLatest(ctx context.Context, limit, offset int) ([]event.Event, error)
}

type EventsRepo struct {
	next  EventsStore
	cache cache.Store
	ttl   time.Duration
	prom  *observability.Prom
	log   *slog.Logger
}

func NewEventsRepo(next EventsStore, c cache.Store, ttl time.Duration, prom *observability.Prom, log *slog.Logger) *EventsRepo {
	if log == nil {
		log = slog.Default()
	}

	return &EventsRepo{next: next, cache: c, ttl: ttl, prom: prom, log: log}
}

func (r *EventsRepo) Create(ctx context.Context, e event.Event) (event.Event, error) {
	return r.next.Create(ctx, e)
}

func (r *EventsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error) {
	key := utils.BuildEventCacheKey(id.Hex())

	var e event.Event
	if r.lookup(ctx, utils.EventCacheKeyspace, key, &e) {
		return e, nil
	}

	e, err := r.next.GetByID(ctx, id)
	if err != nil {
		return event.Event{}, err
	}

	r.store(ctx, key, e)

	return e, nil
}

func (r *EventsRepo) ListLatest(ctx context.Context, limit, offset int) ([]event.Event, error) {
	key := utils.BuildLatestEventsCacheKey(limit, offset)

	var events []event.Event
	if r.lookup(ctx, utils.LatestEventsCacheKeyspace, key, &events) {
		return events, nil
	}

	events, err := r.next.ListLatest(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, events)

	return events, nil
}

// lookup reports a usable hit. Cache errors are logged and treated as misses.
func (r *EventsRepo) lookup(ctx context.Context, keyspace, key string, out any) bool {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.prom.ObserveCache(keyspace, "error")
		r.log.WarnContext(ctx, "cache get failed", "key", key, "err", err)
		return false
	}
	if !ok {
		r.prom.ObserveCache(keyspace, "miss")
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		r.prom.ObserveCache(keyspace, "error")
		r.log.WarnContext(ctx, "cache entry undecodable", "key", key, "err", err)
		return false
	}

	r.prom.ObserveCache(keyspace, "hit")
	return true
}

func (r *EventsRepo) store(ctx context.Context, key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		r.log.WarnContext(ctx, "cache encode failed", "key", key, "err", err)
		return
	}

	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
		r.log.WarnContext(ctx, "cache set failed", "key", key, "err", err)
	}
}
