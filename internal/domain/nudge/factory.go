package nudge

import (
	"github.com/geocoder89/eventnudges/internal/domain"
	"github.com/geocoder89/eventnudges/internal/utils"
)

func NewFromCreateRequest(req CreateNudgeRequest, imagePath string) (Nudge, error) {
	eventID, err := utils.ParseObjectID(req.EventID)
	if err != nil {
		return Nudge{}, domain.Invalid("eventId", "must be a 24 character hex id")
	}

	sendTime, err := utils.ParseTimestamp(req.SendTime)
	if err != nil {
		return Nudge{}, domain.Invalid("sendTime", "must be a date or RFC3339 timestamp")
	}

	return Nudge{
		EventID:        eventID,
		Title:          req.Title,
		Image:          imagePath,
		SendTime:       sendTime,
		Description:    req.Description,
		InvitationText: req.InvitationText,
	}, nil
}

// NewUpdate parses the sent fields. A non-empty imagePath replaces the image.
func NewUpdate(req UpdateNudgeRequest, imagePath string) (Update, error) {
	u := Update{
		Title:          req.Title,
		Description:    req.Description,
		InvitationText: req.InvitationText,
	}

	if req.EventID != nil {
		id, err := utils.ParseObjectID(*req.EventID)
		if err != nil {
			return Update{}, domain.Invalid("eventId", "must be a 24 character hex id")
		}
		u.EventID = &id
	}

	if req.SendTime != nil {
		t, err := utils.ParseTimestamp(*req.SendTime)
		if err != nil {
			return Update{}, domain.Invalid("sendTime", "must be a date or RFC3339 timestamp")
		}
		u.SendTime = &t
	}

	if imagePath != "" {
		u.Image = &imagePath
	}

	return u, nil
}
