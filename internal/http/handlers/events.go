package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/eventnudges/internal/domain/event"
	"github.com/geocoder89/eventnudges/internal/http/middlewares"
	"github.com/geocoder89/eventnudges/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultLatestLimit = 5
	defaultLatestPage  = 1
)

type EventsStore interface {
	Create(ctx context.Context, e event.Event) (event.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (event.Event, error)
	ListLatest(ctx context.Context, limit, offset int) ([]event.Event, error)
}

type EventsHandler struct {
	repo EventsStore
}

func NewEventsHandler(repo EventsStore) *EventsHandler {
	return &EventsHandler{repo: repo}
}

// GetEvents serves both ?id= lookups and ?type=latest pages; any other
// query is a 400.
func (h *EventsHandler) GetEvents(ctx *gin.Context) {
	if id := ctx.Query("id"); id != "" {
		h.getEventByID(ctx, id)
		return
	}

	if ctx.Query("type") == "latest" {
		h.listLatestEvents(ctx)
		return
	}

	RespondInvalidQuery(ctx)
}

func (h *EventsHandler) getEventByID(ctx *gin.Context, rawID string) {
	id, err := utils.ParseObjectID(rawID)
	if err != nil {
		RespondBadRequest(ctx, "Invalid event id", err, nil)
		return
	}

	e, err := h.repo.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}
		RespondInternal(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, e)
}

func (h *EventsHandler) listLatestEvents(ctx *gin.Context) {
	limit := utils.PositiveIntOr(ctx.Query("limit"), defaultLatestLimit)
	page := utils.PositiveIntOr(ctx.Query("page"), defaultLatestPage)

	events, err := h.repo.ListLatest(ctx.Request.Context(), limit, utils.Offset(page, limit))
	if err != nil {
		RespondInternal(ctx, err)
		return
	}
	if events == nil {
		events = []event.Event{}
	}

	RespondJSONWithETag(ctx, http.StatusOK, events)
}

func (h *EventsHandler) CreateEvent(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !Bind(ctx, &req) {
		return
	}

	e, err := event.NewFromCreateRequest(req, middlewares.UploadPathFromContext(ctx))
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	created, err := h.repo.Create(ctx.Request.Context(), e)
	if err != nil {
		RespondInvalidData(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": created.ID})
}
