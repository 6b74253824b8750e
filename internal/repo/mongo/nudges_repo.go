package mongo

import (
	"context"
	"errors"

	"github.com/geocoder89/eventnudges/internal/db"
	"github.com/geocoder89/eventnudges/internal/domain/nudge"
	"github.com/geocoder89/eventnudges/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NudgesRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewNudgesRepo(database *mongo.Database, prom *observability.Prom) *NudgesRepo {
	return &NudgesRepo{
		coll: database.Collection(db.NudgesCollection),
		prom: prom,
	}
}

func (r *NudgesRepo) Create(ctx context.Context, n nudge.Nudge) (nudge.Nudge, error) {
	n.ID = primitive.NewObjectID()

	err := r.prom.ObserveDB("nudges.insert", func() error {
		_, err := r.coll.InsertOne(ctx, n)
		return err
	})
	if err != nil {
		return nudge.Nudge{}, err
	}

	return n, nil
}

func (r *NudgesRepo) GetByID(ctx context.Context, id primitive.ObjectID) (nudge.Nudge, error) {
	var n nudge.Nudge
	found := true

	err := r.prom.ObserveDB("nudges.get", func() error {
		err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
		if errors.Is(err, mongo.ErrNoDocuments) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nudge.Nudge{}, err
	}
	if !found {
		return nudge.Nudge{}, nudge.ErrNotFound
	}

	return n, nil
}

func (r *NudgesRepo) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]nudge.Nudge, error) {
	output := make([]nudge.Nudge, 0)

	err := r.prom.ObserveDB("nudges.list_by_event", func() error {
		cur, err := r.coll.Find(ctx, bson.M{"eventId": eventID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}
		return cur.All(ctx, &output)
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Update applies u with $set and returns the document after the write.
// An empty update just reads the current document.
func (r *NudgesRepo) Update(ctx context.Context, id primitive.ObjectID, u nudge.Update) (nudge.Nudge, error) {
	if u.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var n nudge.Nudge
	found := true

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := r.prom.ObserveDB("nudges.update", func() error {
		err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": setDocument(u)}, opts).Decode(&n)
		if errors.Is(err, mongo.ErrNoDocuments) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nudge.Nudge{}, err
	}
	if !found {
		return nudge.Nudge{}, nudge.ErrNotFound
	}

	return n, nil
}

func (r *NudgesRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	var deleted int64

	err := r.prom.ObserveDB("nudges.delete", func() error {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return err
	}

	if deleted == 0 {
		return nudge.ErrNotFound
	}

	return nil
}

func setDocument(u nudge.Update) bson.M {
	set := bson.M{}

	if u.EventID != nil {
		set["eventId"] = *u.EventID
	}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.SendTime != nil {
		set["sendTime"] = *u.SendTime
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.InvitationText != nil {
		set["invitationText"] = *u.InvitationText
	}

	return set
}
