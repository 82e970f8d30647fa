package gallery

import (
	"cmp"
	"context"
	"slices"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotFound = domain.NotFoundError{Resource: "gallery image"}

type Service struct {
	Store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{Store: store}
}

func (s *Service) load(ctx context.Context, filter bson.M) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := s.Store.Find(ctx, models.GalleryCollection, filter, &images); err != nil {
		return nil, domain.InternalError{Msg: "failed to load gallery", Err: err}
	}
	slices.SortStableFunc(images, func(a, b models.GalleryImage) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})
	return images, nil
}

// ListActive returns the public gallery in display order.
func (s *Service) ListActive(ctx context.Context) ([]models.GalleryView, error) {
	images, err := s.load(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	views := make([]models.GalleryView, 0, len(images))
	for _, img := range images {
		views = append(views, img.View())
	}
	return views, nil
}

// ListAll includes hidden images along with their ordering and visibility.
func (s *Service) ListAll(ctx context.Context) ([]models.GalleryAdminView, error) {
	images, err := s.load(ctx, nil)
	if err != nil {
		return nil, err
	}
	views := make([]models.GalleryAdminView, 0, len(images))
	for _, img := range images {
		views = append(views, img.AdminView())
	}
	return views, nil
}

func (s *Service) Create(ctx context.Context, in models.GalleryInput) (string, error) {
	if err := domain.Validate(in); err != nil {
		return "", err
	}
	img := in.GalleryImage()
	id, err := s.Store.Insert(ctx, models.GalleryCollection, &img)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to add gallery image", Err: err}
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.GalleryInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	ok, err := s.Store.Update(ctx, models.GalleryCollection, id, in.Fields())
	if err != nil {
		return domain.InternalError{Msg: "failed to update gallery image", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Delete(ctx, models.GalleryCollection, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete gallery image", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}
