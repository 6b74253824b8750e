package event

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/geocoder89/eventnudges/internal/domain"
	"github.com/geocoder89/eventnudges/internal/utils"
)

// NewFromCreateRequest builds the document to persist. imagePath is the
// stored upload, empty when none was sent. The id is left for the store.
func NewFromCreateRequest(req CreateEventRequest, imagePath string) (Event, error) {
	uid, err := parseInt("uid", req.UID)
	if err != nil {
		return Event{}, err
	}

	rigorRank, err := parseInt("rigor_rank", req.RigorRank)
	if err != nil {
		return Event{}, err
	}

	schedule, err := utils.ParseTimestamp(req.Schedule)
	if err != nil {
		return Event{}, domain.Invalid("schedule", "must be a date or RFC3339 timestamp")
	}

	attendees, err := coerceAttendees(req.Attendees)
	if err != nil {
		return Event{}, err
	}

	e := Event{
		Type:        DocumentType,
		UID:         uid,
		Name:        req.Name,
		Tagline:     req.Tagline,
		Schedule:    schedule,
		Description: req.Description,
		Moderator:   req.Moderator,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		RigorRank:   rigorRank,
		Attendees:   attendees,
	}

	if imagePath != "" {
		e.Files = &Files{Image: imagePath}
	}

	return e, nil
}

func coerceAttendees(raw []json.Number) ([]int, error) {
	out := make([]int, 0, len(raw))

	for i, n := range raw {
		v, err := parseInt(fmt.Sprintf("attendees[%d]", i), n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// parseInt is the single integer rule for every numeric event field: a
// whole number that fits in an int.
func parseInt(field string, n json.Number) (int, error) {
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, domain.Invalid(field, "must be an integer")
	}

	return v, nil
}
