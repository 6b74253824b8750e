package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/geocoder89/eventnudges/internal/db"
	"github.com/geocoder89/eventnudges/internal/domain/event"
	"github.com/geocoder89/eventnudges/internal/domain/nudge"
	"github.com/geocoder89/eventnudges/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// setupTestDatabase starts a MongoDB container and returns a fresh database.
// Docker is required, so these tests only run with EVENTNUDGES_INTEGRATION=1.
func setupTestDatabase(t *testing.T) *mongodriver.Database {
	t.Helper()

	if testing.Short() || os.Getenv("EVENTNUDGES_INTEGRATION") != "1" {
		t.Skip("set EVENTNUDGES_INTEGRATION=1 to run container-backed tests")
	}

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	client, err := db.Connect(uri)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := client.Database("eventnudges_test")
	require.NoError(t, db.EnsureIndexes(ctx, database))
	require.NoError(t, db.EnsureIndexes(ctx, database), "indexes must be idempotent")

	return database
}

func sampleEvent(schedule time.Time) event.Event {
	return event.Event{
		Type:        event.DocumentType,
		UID:         1,
		Name:        "Fest",
		Tagline:     "T",
		Schedule:    schedule,
		Description: "D",
		Moderator:   "M",
		Category:    "C",
		SubCategory: "S",
		RigorRank:   1,
		Attendees:   []int{},
	}
}

func TestEventsRepo_Integration(t *testing.T) {
	database := setupTestDatabase(t)
	ctx := context.Background()
	repo := NewEventsRepo(database, observability.NewProm(prometheus.NewRegistry()))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []primitive.ObjectID
	for i := 0; i < 5; i++ {
		e := sampleEvent(base.AddDate(0, 0, i))
		if i == 0 {
			e.Files = &event.Files{Image: "uploads/a-poster.png"}
			e.Attendees = []int{7, 9}
		}
		created, err := repo.Create(ctx, e)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Fest", got.Name)
	assert.Equal(t, []int{7, 9}, got.Attendees)
	require.NotNil(t, got.Files)
	assert.Equal(t, "uploads/a-poster.png", got.Files.Image)
	assert.True(t, got.Schedule.Equal(base))

	plain, err := repo.GetByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, []int{}, plain.Attendees)
	assert.Nil(t, plain.Files)

	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, event.ErrNotFound)

	page1, err := repo.ListLatest(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, ids[4], page1[0].ID)
	assert.Equal(t, ids[3], page1[1].ID)

	page3, err := repo.ListLatest(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, ids[0], page3[0].ID)
}

func TestNudgesRepo_Integration(t *testing.T) {
	database := setupTestDatabase(t)
	ctx := context.Background()
	repo := NewNudgesRepo(database, nil)

	danglingEvent := primitive.NewObjectID()
	sendTime := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, nudge.Nudge{
		EventID:        danglingEvent,
		Title:          "Reminder",
		SendTime:       sendTime,
		Description:    "desc",
		InvitationText: "join",
	})
	require.NoError(t, err)

	list, err := repo.ListByEvent(ctx, danglingEvent)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	empty, err := repo.ListByEvent(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, empty)

	img := "uploads/b-new.png"
	updated, err := repo.Update(ctx, created.ID, nudge.Update{Image: &img})
	require.NoError(t, err)
	assert.Equal(t, img, updated.Image)
	assert.Equal(t, "Reminder", updated.Title)
	assert.True(t, updated.SendTime.Equal(sendTime))

	same, err := repo.Update(ctx, created.ID, nudge.Update{})
	require.NoError(t, err)
	assert.Equal(t, updated, same)

	_, err = repo.Update(ctx, primitive.NewObjectID(), nudge.Update{Image: &img})
	assert.ErrorIs(t, err, nudge.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), nudge.ErrNotFound)
}

func TestSetDocument(t *testing.T) {
	title := "t"
	img := "uploads/x.png"

	set := setDocument(nudge.Update{Title: &title, Image: &img})

	assert.Len(t, set, 2)
	assert.Equal(t, "t", set["title"])
	assert.Equal(t, "uploads/x.png", set["image"])
}
