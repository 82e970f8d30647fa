package admin

import (
	"context"
	"testing"

	"alpacafarm/db"
	"alpacafarm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	store := db.NewMemoryStore(nil)
	ctx := context.Background()

	insert := func(coll string, doc db.Document) {
		t.Helper()
		_, err := store.Insert(ctx, coll, doc)
		require.NoError(t, err)
	}
	insert(models.BookingsCollection, &models.Booking{Name: "a", Phone: "1", Status: models.BookingNew})
	insert(models.BookingsCollection, &models.Booking{Name: "b", Phone: "2", Status: models.BookingNew})
	insert(models.BookingsCollection, &models.Booking{Name: "c", Phone: "3", Status: models.BookingCompleted})
	insert(models.ReviewsCollection, &models.Review{Name: "r", Text: "t", Rating: 5, IsApproved: true})
	insert(models.ReviewsCollection, &models.Review{Name: "r", Text: "t", Rating: 4})
	insert(models.ServicesCollection, &models.Service{Title: "s", Slug: "s"})
	insert(models.BlogCollection, &models.BlogPost{Title: "p", Slug: "p"})
	insert(models.GalleryCollection, &models.GalleryImage{Image: "i", AltText: "a"})
	insert(models.GalleryCollection, &models.GalleryImage{Image: "j", AltText: "b"})

	stats, err := NewStats(store).Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Statistics{
		TotalBookings:      3,
		PendingBookings:    2,
		TotalReviews:       2,
		PendingReviews:     1,
		TotalServices:      1,
		TotalBlogPosts:     1,
		TotalGalleryImages: 2,
	}, stats)
}

func TestCollectEmpty(t *testing.T) {
	stats, err := NewStats(db.NewMemoryStore(nil)).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Statistics{}, stats)
}
