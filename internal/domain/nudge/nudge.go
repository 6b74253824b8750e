package nudge

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nudge is a reminder tied to an event. EventID is stored as given and is
// never checked against the events collection.
type Nudge struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EventID        primitive.ObjectID `bson:"eventId" json:"eventId"`
	Title          string             `bson:"title" json:"title"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	SendTime       time.Time          `bson:"sendTime" json:"sendTime"`
	Description    string             `bson:"description" json:"description"`
	InvitationText string             `bson:"invitationText" json:"invitationText"`
}

var ErrNotFound = errors.New("nudge not found")

type CreateNudgeRequest struct {
	EventID        string `json:"eventId" form:"eventId" binding:"required"`
	Title          string `json:"title" form:"title" binding:"required"`
	SendTime       string `json:"sendTime" form:"sendTime" binding:"required"`
	Description    string `json:"description" form:"description" binding:"required"`
	InvitationText string `json:"invitationText" form:"invitationText" binding:"required"`
}

// UpdateNudgeRequest carries only the fields the client sent; nil means
// leave the stored value alone.
type UpdateNudgeRequest struct {
	EventID        *string `json:"eventId" form:"eventId" binding:"omitempty,min=1"`
	Title          *string `json:"title" form:"title" binding:"omitempty,min=1"`
	SendTime       *string `json:"sendTime" form:"sendTime" binding:"omitempty,min=1"`
	Description    *string `json:"description" form:"description" binding:"omitempty,min=1"`
	InvitationText *string `json:"invitationText" form:"invitationText" binding:"omitempty,min=1"`
}

// Update is a parsed, typed partial replacement.
type Update struct {
	EventID        *primitive.ObjectID
	Title          *string
	Image          *string
	SendTime       *time.Time
	Description    *string
	InvitationText *string
}

func (u Update) IsEmpty() bool {
	return u.EventID == nil && u.Title == nil && u.Image == nil &&
		u.SendTime == nil && u.Description == nil && u.InvitationText == nil
}

// Apply copies every set field of u onto n.
func (n *Nudge) Apply(u Update) {
	if u.EventID != nil {
		n.EventID = *u.EventID
	}
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Image != nil {
		n.Image = *u.Image
	}
	if u.SendTime != nil {
		n.SendTime = *u.SendTime
	}
	if u.Description != nil {
		n.Description = *u.Description
	}
	if u.InvitationText != nil {
		n.InvitationText = *u.InvitationText
	}
}
