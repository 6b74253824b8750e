package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/geocoder89/eventnudges/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateEventRequest {
	return CreateEventRequest{
		UID:         "1",
		Name:        "Fest",
		Tagline:     "T",
		Schedule:    "2025-01-01",
		Description: "D",
		Moderator:   "M",
		Category:    "C",
		SubCategory: "S",
		RigorRank:   "1",
	}
}

func TestNewFromCreateRequest_Defaults(t *testing.T) {
	e, err := NewFromCreateRequest(validRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, DocumentType, e.Type)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), e.Schedule)
	assert.NotNil(t, e.Attendees)
	assert.Empty(t, e.Attendees)
	assert.Nil(t, e.Files)
	assert.True(t, e.ID.IsZero())
}

func TestNewFromCreateRequest_ImageAndAttendees(t *testing.T) {
	req := validRequest()
	req.Attendees = []json.Number{"3", "14", "-2"}

	e, err := NewFromCreateRequest(req, "uploads/abc-poster.png")
	require.NoError(t, err)

	assert.Equal(t, []int{3, 14, -2}, e.Attendees)
	require.NotNil(t, e.Files)
	assert.Equal(t, "uploads/abc-poster.png", e.Files.Image)
}

func TestNewFromCreateRequest_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateEventRequest)
		field  string
	}{
		{"bad_schedule", func(r *CreateEventRequest) { r.Schedule = "next tuesday" }, "schedule"},
		{"fractional_attendee", func(r *CreateEventRequest) { r.Attendees = []json.Number{"1", "2.5"} }, "attendees[1]"},
		{"non_numeric_attendee", func(r *CreateEventRequest) { r.Attendees = []json.Number{"bob"} }, "attendees[0]"},
		{"fractional_uid", func(r *CreateEventRequest) { r.UID = "1.5" }, "uid"},
		{"non_numeric_rigor_rank", func(r *CreateEventRequest) { r.RigorRank = "high" }, "rigor_rank"},
		{"uid_out_of_range", func(r *CreateEventRequest) { r.UID = "99999999999999999999" }, "uid"},
		{"attendee_out_of_range", func(r *CreateEventRequest) { r.Attendees = []json.Number{"99999999999999999999"} }, "attendees[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := NewFromCreateRequest(req, "")
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNewFromCreateRequest_IntegersShareOneRule(t *testing.T) {
	req := validRequest()
	req.UID = "0"
	req.RigorRank = "4294967296"
	req.Attendees = []json.Number{"4294967296", "-7"}

	e, err := NewFromCreateRequest(req, "")
	require.NoError(t, err)

	assert.Equal(t, 0, e.UID)
	assert.Equal(t, 4294967296, e.RigorRank)
	assert.Equal(t, []int{4294967296, -7}, e.Attendees)
}

func TestNormalize(t *testing.T) {
	e := Event{}
	e.Normalize()

	assert.Equal(t, DocumentType, e.Type)
	assert.Equal(t, []int{}, e.Attendees)
}
