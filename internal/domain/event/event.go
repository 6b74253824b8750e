package event

import (
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DocumentType = "event"

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type        string             `bson:"type" json:"type"`
	UID         int                `bson:"uid" json:"uid"`
	Name        string             `bson:"name" json:"name"`
	Tagline     string             `bson:"tagline" json:"tagline"`
	Schedule    time.Time          `bson:"schedule" json:"schedule"`
	Description string             `bson:"description" json:"description"`
	Files       *Files             `bson:"files,omitempty" json:"files,omitempty"`
	Moderator   string             `bson:"moderator" json:"moderator"`
	Category    string             `bson:"category" json:"category"`
	SubCategory string             `bson:"sub_category" json:"sub_category"`
	RigorRank   int                `bson:"rigor_rank" json:"rigor_rank"`
	Attendees   []int              `bson:"attendees" json:"attendees"`
}

type Files struct {
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

var ErrNotFound = errors.New("event not found")

// CreateEventRequest is bound from JSON, urlencoded or multipart bodies.
// Integers arrive as json.Number so JSON numbers, numeric JSON strings and
// form values are all accepted, and 0 still counts as present.
type CreateEventRequest struct {
	UID         json.Number   `json:"uid" form:"uid" binding:"required"`
	Name        string        `json:"name" form:"name" binding:"required"`
	Tagline     string        `json:"tagline" form:"tagline" binding:"required"`
	Schedule    string        `json:"schedule" form:"schedule" binding:"required"`
	Description string        `json:"description" form:"description" binding:"required"`
	Moderator   string        `json:"moderator" form:"moderator" binding:"required"`
	Category    string        `json:"category" form:"category" binding:"required"`
	SubCategory string        `json:"sub_category" form:"sub_category" binding:"required"`
	RigorRank   json.Number   `json:"rigor_rank" form:"rigor_rank" binding:"required"`
	Attendees   []json.Number `json:"attendees" form:"attendees"`
}

// Normalize fills defaults a stored document may lack.
func (e *Event) Normalize() {
	if e.Type == "" {
		e.Type = DocumentType
	}
	if e.Attendees == nil {
		e.Attendees = []int{}
	}
}
