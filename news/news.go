package news

import (
	"context"
	"slices"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotFound = domain.NotFoundError{Resource: "news"}

type Service struct {
	Store db.Store
	Now   func() time.Time
}

func NewService(store db.Store) *Service {
	return &Service{Store: store, Now: db.SystemClock}
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.NewsView, error) {
	var items []models.News
	if err := s.Store.Find(ctx, models.NewsCollection, filter, &items); err != nil {
		return nil, domain.InternalError{Msg: "failed to load news", Err: err}
	}
	slices.SortStableFunc(items, func(a, b models.News) int {
		return b.PublishDate.Compare(a.PublishDate)
	})

	views := make([]models.NewsView, 0, len(items))
	for _, n := range items {
		views = append(views, n.View())
	}
	return views, nil
}

// ListPublished returns published news, newest first.
func (s *Service) ListPublished(ctx context.Context) ([]models.NewsView, error) {
	return s.find(ctx, bson.M{"is_published": true})
}

func (s *Service) ListAll(ctx context.Context) ([]models.NewsView, error) {
	return s.find(ctx, nil)
}

func (s *Service) Create(ctx context.Context, in models.NewsInput) (string, error) {
	if err := domain.Validate(in); err != nil {
		return "", err
	}
	item := in.News(s.Now())
	id, err := s.Store.Insert(ctx, models.NewsCollection, &item)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to create news", Err: err}
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.NewsInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	ok, err := s.Store.Update(ctx, models.NewsCollection, id, in.Fields())
	if err != nil {
		return domain.InternalError{Msg: "failed to update news", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Delete(ctx, models.NewsCollection, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete news", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}
