package models

// Service is one bookable farm activity (contact zoo, excursions, feeding...).
type Service struct {
	Meta           `bson:",inline"`
	Title          string   `json:"title" bson:"title"`
	Slug           string   `json:"slug" bson:"slug"`
	Description    string   `json:"description" bson:"description"`
	Price          string   `json:"price" bson:"price"`
	Image          string   `json:"image" bson:"image"`
	Content        string   `json:"content,omitempty" bson:"content,omitempty"`
	Duration       string   `json:"duration,omitempty" bson:"duration,omitempty"`
	MaxPeople      *int     `json:"max_people,omitempty" bson:"max_people,omitempty"`
	IsActive       bool     `json:"is_active" bson:"is_active"`
	OrderIndex     int      `json:"order_index" bson:"order_index"`
	SEOTitle       string   `json:"seo_title,omitempty" bson:"seo_title,omitempty"`
	SEODescription string   `json:"seo_description,omitempty" bson:"seo_description,omitempty"`
	SEOKeywords    []string `json:"seo_keywords,omitempty" bson:"seo_keywords,omitempty"`
}

type ServiceInput struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Image       string `json:"image" validate:"required"`
	Content     string `json:"content"`
	Duration    string `json:"duration"`
	MaxPeople   *int   `json:"max_people" validate:"omitempty,min=1"`
	IsActive    *bool  `json:"is_active"`
	OrderIndex  int    `json:"order_index"`
}

// Service builds the record a create call stores.
func (in ServiceInput) Service() Service {
	return Service{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Content:     in.Content,
		Duration:    in.Duration,
		MaxPeople:   in.MaxPeople,
		IsActive:    boolOr(in.IsActive, true),
		OrderIndex:  in.OrderIndex,
	}
}

// Fields lists what an update overwrites.
func (in ServiceInput) Fields() map[string]any {
	return map[string]any{
		"title":       in.Title,
		"slug":        in.Slug,
		"description": in.Description,
		"price":       in.Price,
		"image":       in.Image,
		"content":     in.Content,
		"duration":    in.Duration,
		"max_people":  in.MaxPeople,
		"is_active":   boolOr(in.IsActive, true),
		"order_index": in.OrderIndex,
	}
}

type ServiceView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Content     string `json:"content,omitempty"`
	Duration    string `json:"duration,omitempty"`
	MaxPeople   *int   `json:"max_people,omitempty"`
	IsActive    bool   `json:"is_active"`
}

func (s Service) View() ServiceView {
	return ServiceView{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Price:       s.Price,
		Image:       s.Image,
		Content:     s.Content,
		Duration:    s.Duration,
		MaxPeople:   s.MaxPeople,
		IsActive:    s.IsActive,
	}
}
