package models

import "time"

type Review struct {
	Meta       `bson:",inline"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty"`
	Text       string    `json:"text" bson:"text"`
	Rating     int       `json:"rating" bson:"rating"`
	Date       time.Time `json:"date" bson:"date"`
	IsApproved bool      `json:"is_approved" bson:"is_approved"`
	IsFeatured bool      `json:"is_featured" bson:"is_featured"`
	Response   string    `json:"response,omitempty" bson:"response,omitempty"`
}

type ReviewInput struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// Review never trusts the submitter with moderation flags.
func (in ReviewInput) Review(now time.Time) Review {
	return Review{
		Name:       in.Name,
		Email:      in.Email,
		Text:       in.Text,
		Rating:     in.Rating,
		Date:       now,
		IsApproved: false,
		IsFeatured: false,
	}
}

// ReviewView hides the reviewer's email.
type ReviewView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	Date       time.Time `json:"date"`
	Response   string    `json:"response,omitempty"`
	IsFeatured bool      `json:"is_featured"`
}

func (r Review) View() ReviewView {
	return ReviewView{
		ID:         r.ID,
		Name:       r.Name,
		Text:       r.Text,
		Rating:     r.Rating,
		Date:       r.Date,
		Response:   r.Response,
		IsFeatured: r.IsFeatured,
	}
}
