package utils

import (
	"strings"

	"github.com/geocoder89/eventnudges/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID turns a 24-char hex string into a document id.
func ParseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}

	return id, nil
}

func IsObjectID(raw string) bool {
	_, err := ParseObjectID(raw)
	return err == nil
}
