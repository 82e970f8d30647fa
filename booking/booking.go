package booking

import (
	"context"
	"errors"
	"slices"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"go.mongodb.org/mongo-driver/bson"
)

var errNotFound = domain.NotFoundError{Resource: "booking"}

// Service handles visit requests. Any status may be set after any other.
type Service struct {
	Store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{Store: store}
}

// Submit stores a visitor's request as new.
func (s *Service) Submit(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	if err := domain.Validate(in); err != nil {
		return models.Booking{}, err
	}
	b := in.Booking()
	if _, err := s.Store.Insert(ctx, models.BookingsCollection, &b); err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to save booking", Err: err}
	}
	return b, nil
}

// List returns bookings newest first, optionally only those in one status.
func (s *Service) List(ctx context.Context, status models.BookingStatus) ([]models.BookingView, error) {
	filter := bson.M{}
	if status != "" {
		if !status.Valid() {
			return nil, domain.ValidationError{Field: "status", Msg: "unknown booking status"}
		}
		filter["status"] = string(status)
	}

	var items []models.Booking
	if err := s.Store.Find(ctx, models.BookingsCollection, filter, &items); err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	slices.SortStableFunc(items, func(a, b models.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	out := make([]models.BookingView, 0, len(items))
	for _, b := range items {
		out = append(out, b.View())
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.BookingView, error) {
	var b models.Booking
	err := s.Store.FindByID(ctx, models.BookingsCollection, id, &b)
	if errors.Is(err, db.ErrNotFound) {
		return models.BookingView{}, errNotFound
	}
	if err != nil {
		return models.BookingView{}, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	return b.View(), nil
}

// UpdateStatus sets the status and, when given, the admin note.
func (s *Service) UpdateStatus(ctx context.Context, id string, in models.BookingStatusInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	ok, err := s.Store.Update(ctx, models.BookingsCollection, id, in.Fields())
	if err != nil {
		return domain.InternalError{Msg: "failed to update booking", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}
