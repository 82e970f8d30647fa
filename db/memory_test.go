package db

import (
	"context"
	"testing"
	"time"

	"alpacafarm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type tickingClock struct {
	t time.Time
}

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore() (*MemoryStore, *tickingClock) {
	clock := &tickingClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	return NewMemoryStore(clock.Now), clock
}

func TestMemoryStoreInsertStampsDocument(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	svc := models.Service{Title: "Экскурсия", Slug: "tour", Price: "500", IsActive: true}
	id, err := store.Insert(ctx, models.ServicesCollection, &svc)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, svc.ID)
	assert.Equal(t, svc.CreatedAt, svc.UpdatedAt)

	var got models.Service
	require.NoError(t, store.FindByID(ctx, models.ServicesCollection, id, &got))
	assert.Equal(t, "tour", got.Slug)
	assert.Equal(t, svc.CreatedAt, got.CreatedAt)
}

func TestMemoryStoreFindFiltersByField(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for _, s := range []models.Service{
		{Title: "a", Slug: "a", IsActive: true},
		{Title: "b", Slug: "b", IsActive: false},
		{Title: "c", Slug: "c", IsActive: true},
	} {
		_, err := store.Insert(ctx, models.ServicesCollection, &s)
		require.NoError(t, err)
	}

	var active []models.Service
	require.NoError(t, store.Find(ctx, models.ServicesCollection, bson.M{"is_active": true}, &active))
	assert.Len(t, active, 2)

	var all []models.Service
	require.NoError(t, store.Find(ctx, models.ServicesCollection, nil, &all))
	assert.Len(t, all, 3)

	n, err := store.Count(ctx, models.ServicesCollection, bson.M{"is_active": false})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemoryStoreFindRejectsNonSlice(t *testing.T) {
	store, _ := newTestStore()
	var one models.Service
	err := store.Find(context.Background(), models.ServicesCollection, nil, &one)
	assert.Error(t, err)
}

func TestMemoryStoreFindOneMissing(t *testing.T) {
	store, _ := newTestStore()
	var got models.Service
	err := store.FindOne(context.Background(), models.ServicesCollection, bson.M{"slug": "nope"}, &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUpdateRefreshesUpdatedAt(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	svc := models.Service{Title: "old", Slug: "s"}
	id, err := store.Insert(ctx, models.ServicesCollection, &svc)
	require.NoError(t, err)

	ok, err := store.Update(ctx, models.ServicesCollection, id, bson.M{"title": "new"})
	require.NoError(t, err)
	assert.True(t, ok)

	var got models.Service
	require.NoError(t, store.FindByID(ctx, models.ServicesCollection, id, &got))
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "s", got.Slug)
	assert.Equal(t, svc.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	ok, err = store.Update(ctx, models.ServicesCollection, "missing", bson.M{"title": "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreIncrement(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	post := models.BlogPost{Title: "t", Slug: "t", IsPublished: true}
	id, err := store.Insert(ctx, models.BlogCollection, &post)
	require.NoError(t, err)

	require.NoError(t, store.Increment(ctx, models.BlogCollection, id, "views", 1))
	require.NoError(t, store.Increment(ctx, models.BlogCollection, id, "views", 1))

	var got models.BlogPost
	require.NoError(t, store.FindByID(ctx, models.BlogCollection, id, &got))
	assert.Equal(t, 2, got.Views)
}

func TestMemoryStoreDelete(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	item := models.News{Title: "n"}
	id, err := store.Insert(ctx, models.NewsCollection, &item)
	require.NoError(t, err)

	ok, err := store.Delete(ctx, models.NewsCollection, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Delete(ctx, models.NewsCollection, id)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.Count(ctx, models.NewsCollection, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
