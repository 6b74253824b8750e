package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/geocoder89/eventnudges/internal/domain/event"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventsRepo struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[primitive.ObjectID]event.Event),
	}
}

func (r *EventsRepo) Create(_ context.Context, e event.Event) (event.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Normalize()
	e.Attendees = slices.Clone(e.Attendees)

	r.mu.Lock()
	r.items[e.ID] = e
	r.mu.Unlock()

	return e, nil
}

func (r *EventsRepo) GetByID(_ context.Context, id primitive.ObjectID) (event.Event, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

// ListLatest orders by schedule descending, newest id first on ties.
func (r *EventsRepo) ListLatest(_ context.Context, limit, offset int) ([]event.Event, error) {
	r.mu.RLock()
	all := make([]event.Event, 0, len(r.items))
	for _, e := range r.items {
		all = append(all, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b event.Event) int {
		if c := b.Schedule.Compare(a.Schedule); c != 0 {
			return c
		}
		return compareIDs(b.ID, a.ID)
	})

	if offset < 0 || offset >= len(all) || limit <= 0 {
		return []event.Event{}, nil
	}

	end := offset + min(limit, len(all)-offset)

	return all[offset:end], nil
}

func (r *EventsRepo) Ping(context.Context) error { return nil }

func compareIDs(a, b primitive.ObjectID) int {
	return bytes.Compare(a[:], b[:])
}
