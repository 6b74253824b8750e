package mongo

import (
	"context"
	"errors"

	"github.com/geocoder89/eventnudges/internal/db"
	"github.com/geocoder89/eventnudges/internal/domain/event"
	"github.com/geocoder89/eventnudges/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxPrealloc bounds the slice capacity reserved up front; limit comes
// straight from the query string.
const maxPrealloc = 64

type EventsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewEventsRepo(database *mongo.Database, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		coll: database.Collection(db.EventsCollection),
		prom: prom,
	}
}

func (r *EventsRepo) Create(ctx context.Context, e event.Event) (event.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Normalize()

	err := r.prom.ObserveDB("events.insert", func() error {
		_, err := r.coll.InsertOne(ctx, e)
		return err
	})
	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error) {
	var e event.Event
	found := true

	err := r.prom.ObserveDB("events.get", func() error {
		err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
		if errors.Is(err, mongo.ErrNoDocuments) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return event.Event{}, err
	}
	if !found {
		return event.Event{}, event.ErrNotFound
	}

	e.Normalize()

	return e, nil
}

// ListLatest pages through events by schedule, newest first. _id breaks
// ties so pages do not overlap.
func (r *EventsRepo) ListLatest(ctx context.Context, limit, offset int) ([]event.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "schedule", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	output := make([]event.Event, 0, min(limit, maxPrealloc))

	err := r.prom.ObserveDB("events.list_latest", func() error {
		cur, err := r.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &output)
	})
	if err != nil {
		return nil, err
	}

	for i := range output {
		output[i].Normalize()
	}

	return output, nil
}
