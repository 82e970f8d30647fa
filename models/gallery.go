package models

import "time"

type GalleryImage struct {
	Meta        `bson:",inline"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Image       string `json:"image" bson:"image"`
	AltText     string `json:"alt_text" bson:"alt_text"`
	OrderIndex  int    `json:"order_index" bson:"order_index"`
	IsActive    bool   `json:"is_active" bson:"is_active"`
}

type GalleryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required"`
	AltText     string `json:"alt_text" validate:"required"`
	OrderIndex  int    `json:"order_index"`
	IsActive    *bool  `json:"is_active"`
}

func (in GalleryInput) GalleryImage() GalleryImage {
	return GalleryImage{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		AltText:     in.AltText,
		OrderIndex:  in.OrderIndex,
		IsActive:    boolOr(in.IsActive, true),
	}
}

func (in GalleryInput) Fields() map[string]any {
	return map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"image":       in.Image,
		"alt_text":    in.AltText,
		"order_index": in.OrderIndex,
		"is_active":   boolOr(in.IsActive, true),
	}
}

type GalleryView struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	AltText     string `json:"alt_text"`
}

func (g GalleryImage) View() GalleryView {
	return GalleryView{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Image:       g.Image,
		AltText:     g.AltText,
	}
}

// GalleryAdminView adds the fields the admin panel edits and sorts by.
type GalleryAdminView struct {
	GalleryView
	OrderIndex int       `json:"order_index"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (g GalleryImage) AdminView() GalleryAdminView {
	return GalleryAdminView{
		GalleryView: g.View(),
		OrderIndex:  g.OrderIndex,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
