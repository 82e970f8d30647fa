package models

import "time"

type BookingStatus string

const (
	BookingNew       BookingStatus = "new"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the four booking states. Any state may
// follow any other; only the value set is enforced.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingNew, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	Meta          `bson:",inline"`
	Name          string        `json:"name" bson:"name"`
	Phone         string        `json:"phone" bson:"phone"`
	Email         string        `json:"email,omitempty" bson:"email,omitempty"`
	Message       string        `json:"message,omitempty" bson:"message,omitempty"`
	ServiceID     string        `json:"service_id,omitempty" bson:"service_id,omitempty"`
	PreferredDate *time.Time    `json:"preferred_date,omitempty" bson:"preferred_date,omitempty"`
	PeopleCount   *int          `json:"people_count,omitempty" bson:"people_count,omitempty"`
	Status        BookingStatus `json:"status" bson:"status"`
	AdminNotes    string        `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
}

type BookingInput struct {
	Name          string     `json:"name" validate:"required"`
	Phone         string     `json:"phone" validate:"required"`
	Email         string     `json:"email" validate:"omitempty,email"`
	Message       string     `json:"message"`
	ServiceID     string     `json:"service_id"`
	PreferredDate *time.Time `json:"preferred_date"`
	PeopleCount   *int       `json:"people_count" validate:"omitempty,min=1"`
}

// Booking starts every submission as new, whatever the caller sent.
func (in BookingInput) Booking() Booking {
	return Booking{
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		Message:       in.Message,
		ServiceID:     in.ServiceID,
		PreferredDate: in.PreferredDate,
		PeopleCount:   in.PeopleCount,
		Status:        BookingNew,
	}
}

type BookingStatusInput struct {
	Status     BookingStatus `json:"status" validate:"required,oneof=new confirmed completed cancelled"`
	AdminNotes string        `json:"admin_notes"`
}

// Fields only touches admin_notes when a note was given.
func (in BookingStatusInput) Fields() map[string]any {
	fields := map[string]any{"status": string(in.Status)}
	if in.AdminNotes != "" {
		fields["admin_notes"] = in.AdminNotes
	}
	return fields
}

type BookingView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Message       string        `json:"message,omitempty"`
	ServiceID     string        `json:"service_id,omitempty"`
	PreferredDate *time.Time    `json:"preferred_date,omitempty"`
	PeopleCount   *int          `json:"people_count,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (b Booking) View() BookingView {
	return BookingView{
		ID:            b.ID,
		Name:          b.Name,
		Phone:         b.Phone,
		Email:         b.Email,
		Message:       b.Message,
		ServiceID:     b.ServiceID,
		PreferredDate: b.PreferredDate,
		PeopleCount:   b.PeopleCount,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}
