package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/eventnudges/internal/domain/nudge"
	"github.com/geocoder89/eventnudges/internal/http/middlewares"
	"github.com/geocoder89/eventnudges/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NudgesStore interface {
	Create(ctx context.Context, n nudge.Nudge) (nudge.Nudge, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (nudge.Nudge, error)
	ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]nudge.Nudge, error)
	Update(ctx context.Context, id primitive.ObjectID, u nudge.Update) (nudge.Nudge, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NudgesHandler struct {
	repo NudgesStore
}

func NewNudgesHandler(repo NudgesStore) *NudgesHandler {
	return &NudgesHandler{repo: repo}
}

// CreateNudge does not look the event up: eventId only has to be well formed.
func (h *NudgesHandler) CreateNudge(ctx *gin.Context) {
	var req nudge.CreateNudgeRequest

	if !Bind(ctx, &req) {
		return
	}

	n, err := nudge.NewFromCreateRequest(req, middlewares.UploadPathFromContext(ctx))
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	created, err := h.repo.Create(ctx.Request.Context(), n)
	if err != nil {
		RespondInvalidData(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

func (h *NudgesHandler) GetNudges(ctx *gin.Context) {
	if id := ctx.Query("id"); id != "" {
		h.getNudgeByID(ctx, id)
		return
	}

	if eventID := ctx.Query("eventId"); eventID != "" {
		h.listNudgesForEvent(ctx, eventID)
		return
	}

	RespondInvalidQuery(ctx)
}

func (h *NudgesHandler) getNudgeByID(ctx *gin.Context, rawID string) {
	id, err := utils.ParseObjectID(rawID)
	if err != nil {
		RespondBadRequest(ctx, "Invalid nudge id", err, nil)
		return
	}

	n, err := h.repo.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, nudge.ErrNotFound) {
			RespondNotFound(ctx, "Nudge not found")
			return
		}
		RespondInternal(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, n)
}

func (h *NudgesHandler) listNudgesForEvent(ctx *gin.Context, rawEventID string) {
	eventID, err := utils.ParseObjectID(rawEventID)
	if err != nil {
		RespondBadRequest(ctx, "Invalid event id", err, nil)
		return
	}

	nudges, err := h.repo.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		RespondInternal(ctx, err)
		return
	}
	if nudges == nil {
		nudges = []nudge.Nudge{}
	}

	RespondJSONWithETag(ctx, http.StatusOK, nudges)
}

// UpdateNudge replaces only the fields present in the body, plus the image
// when a new file came with the request.
func (h *NudgesHandler) UpdateNudge(ctx *gin.Context) {
	id, err := utils.ParseObjectID(ctx.Param("id"))
	if err != nil {
		RespondBadRequest(ctx, "Invalid nudge id", err, nil)
		return
	}

	var req nudge.UpdateNudgeRequest

	if !BindOptional(ctx, &req) {
		return
	}

	u, err := nudge.NewUpdate(req, middlewares.UploadPathFromContext(ctx))
	if err != nil {
		RespondDomainError(ctx, err)
		return
	}

	updated, err := h.repo.Update(ctx.Request.Context(), id, u)
	if err != nil {
		if errors.Is(err, nudge.ErrNotFound) {
			RespondNotFound(ctx, "Nudge not found")
			return
		}
		RespondInvalidData(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *NudgesHandler) DeleteNudge(ctx *gin.Context) {
	id, err := utils.ParseObjectID(ctx.Param("id"))
	if err != nil {
		RespondBadRequest(ctx, "Invalid nudge id", err, nil)
		return
	}

	err = h.repo.Delete(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, nudge.ErrNotFound) {
			RespondNotFound(ctx, "Nudge not found")
			return
		}
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Nudge deleted successfully"})
}
