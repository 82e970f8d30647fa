package services

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotFound = domain.NotFoundError{Resource: "service"}

// Service manages the farm's activity listings.
type Service struct {
	Store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{Store: store}
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.ServiceView, error) {
	var items []models.Service
	if err := s.Store.Find(ctx, models.ServicesCollection, filter, &items); err != nil {
		return nil, domain.InternalError{Msg: "failed to load services", Err: err}
	}
	slices.SortStableFunc(items, func(a, b models.Service) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})

	views := make([]models.ServiceView, 0, len(items))
	for _, it := range items {
		views = append(views, it.View())
	}
	return views, nil
}

// ListActive returns active services by order_index ascending.
func (s *Service) ListActive(ctx context.Context) ([]models.ServiceView, error) {
	return s.find(ctx, bson.M{"is_active": true})
}

// ListAll includes inactive services, for the admin panel.
func (s *Service) ListAll(ctx context.Context) ([]models.ServiceView, error) {
	return s.find(ctx, nil)
}

func (s *Service) BySlug(ctx context.Context, slug string) (models.ServiceView, error) {
	var item models.Service
	err := s.Store.FindOne(ctx, models.ServicesCollection, bson.M{"slug": slug, "is_active": true}, &item)
	if errors.Is(err, db.ErrNotFound) {
		return models.ServiceView{}, errNotFound
	}
	if err != nil {
		return models.ServiceView{}, domain.InternalError{Msg: "failed to load service", Err: err}
	}
	return item.View(), nil
}

func (s *Service) Create(ctx context.Context, in models.ServiceInput) (string, error) {
	if err := domain.Validate(in); err != nil {
		return "", err
	}
	item := in.Service()
	id, err := s.Store.Insert(ctx, models.ServicesCollection, &item)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to create service", Err: err}
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.ServiceInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	ok, err := s.Store.Update(ctx, models.ServicesCollection, id, in.Fields())
	if err != nil {
		return domain.InternalError{Msg: "failed to update service", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Delete(ctx, models.ServicesCollection, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete service", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}
