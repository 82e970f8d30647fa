package reviews

import (
	"context"
	"slices"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotFound = domain.NotFoundError{Resource: "review"}

type Service struct {
	Store db.Store
	Now   func() time.Time
}

func NewService(store db.Store) *Service {
	return &Service{Store: store, Now: db.SystemClock}
}

func (s *Service) load(ctx context.Context, approved bool) ([]models.Review, error) {
	var items []models.Review
	if err := s.Store.Find(ctx, models.ReviewsCollection, bson.M{"is_approved": approved}, &items); err != nil {
		return nil, domain.InternalError{Msg: "failed to load reviews", Err: err}
	}
	return items, nil
}

func views(items []models.Review) []models.ReviewView {
	out := make([]models.ReviewView, 0, len(items))
	for _, r := range items {
		out = append(out, r.View())
	}
	return out
}

// ListApproved returns approved reviews by review date, newest first.
func (s *Service) ListApproved(ctx context.Context) ([]models.ReviewView, error) {
	items, err := s.load(ctx, true)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.Review) int {
		return b.Date.Compare(a.Date)
	})
	return views(items), nil
}

// ListPending returns the moderation queue, most recently submitted first.
func (s *Service) ListPending(ctx context.Context) ([]models.ReviewView, error) {
	items, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b models.Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return views(items), nil
}

// Submit stores a visitor's review. It always waits for moderation.
func (s *Service) Submit(ctx context.Context, in models.ReviewInput) (string, error) {
	if err := domain.Validate(in); err != nil {
		return "", err
	}
	review := in.Review(s.Now())
	id, err := s.Store.Insert(ctx, models.ReviewsCollection, &review)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to save review", Err: err}
	}
	return id, nil
}

func (s *Service) Approve(ctx context.Context, id string) error {
	ok, err := s.Store.Update(ctx, models.ReviewsCollection, id, bson.M{"is_approved": true})
	if err != nil {
		return domain.InternalError{Msg: "failed to approve review", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Delete(ctx, models.ReviewsCollection, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete review", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}
