package admin

import (
	"context"
	"net/http"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"
	"alpacafarm/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Stats counts what the dashboard shows on its front page.
type Stats struct {
	Store db.Store
}

func NewStats(store db.Store) *Stats {
	return &Stats{Store: store}
}

func (s *Stats) Collect(ctx context.Context) (models.Statistics, error) {
	var out models.Statistics
	counts := []struct {
		dst    *int64
		coll   string
		filter bson.M
	}{
		{&out.TotalBookings, models.BookingsCollection, nil},
		{&out.PendingBookings, models.BookingsCollection, bson.M{"status": string(models.BookingNew)}},
		{&out.TotalReviews, models.ReviewsCollection, nil},
		{&out.PendingReviews, models.ReviewsCollection, bson.M{"is_approved": false}},
		{&out.TotalServices, models.ServicesCollection, nil},
		{&out.TotalBlogPosts, models.BlogCollection, nil},
		{&out.TotalGalleryImages, models.GalleryCollection, nil},
	}
	for _, c := range counts {
		n, err := s.Store.Count(ctx, c.coll, c.filter)
		if err != nil {
			return models.Statistics{}, domain.InternalError{Msg: "failed to count " + c.coll, Err: err}
		}
		*c.dst = n
	}
	return out, nil
}

type Handler struct {
	Stats *Stats
}

// GET /api/admin/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Stats.Collect(ctx)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}
