package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/geocoder89/eventnudges/internal/domain/nudge"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NudgesRepo struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]nudge.Nudge
}

func NewNudgesRepo() *NudgesRepo {
	return &NudgesRepo{
		items: make(map[primitive.ObjectID]nudge.Nudge),
	}
}

func (r *NudgesRepo) Create(_ context.Context, n nudge.Nudge) (nudge.Nudge, error) {
	n.ID = primitive.NewObjectID()

	r.mu.Lock()
	r.items[n.ID] = n
	r.mu.Unlock()

	return n, nil
}

func (r *NudgesRepo) GetByID(_ context.Context, id primitive.ObjectID) (nudge.Nudge, error) {
	r.mu.RLock()
	n, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nudge.Nudge{}, nudge.ErrNotFound
	}

	return n, nil
}

// ListByEvent returns matches in creation order.
func (r *NudgesRepo) ListByEvent(_ context.Context, eventID primitive.ObjectID) ([]nudge.Nudge, error) {
	r.mu.RLock()
	out := make([]nudge.Nudge, 0)
	for _, n := range r.items {
		if n.EventID == eventID {
			out = append(out, n)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b nudge.Nudge) int { return compareIDs(a.ID, b.ID) })

	return out, nil
}

func (r *NudgesRepo) Update(_ context.Context, id primitive.ObjectID, u nudge.Update) (nudge.Nudge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[id]
	if !ok {
		return nudge.Nudge{}, nudge.ErrNotFound
	}

	n.Apply(u)
	r.items[id] = n

	return n, nil
}

func (r *NudgesRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nudge.ErrNotFound
	}
	delete(r.items, id)

	return nil
}
