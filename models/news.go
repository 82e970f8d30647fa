package models

import "time"

const DefaultNewsAuthor = "Администрация фермы"

type News struct {
	Meta        `bson:",inline"`
	Title       string    `json:"title" bson:"title"`
	Excerpt     string    `json:"excerpt" bson:"excerpt"`
	Content     string    `json:"content" bson:"content"`
	Image       string    `json:"image" bson:"image"`
	PublishDate time.Time `json:"publish_date" bson:"publish_date"`
	IsPublished bool      `json:"is_published" bson:"is_published"`
	Author      string    `json:"author" bson:"author"`
}

type NewsInput struct {
	Title       string `json:"title" validate:"required"`
	Excerpt     string `json:"excerpt" validate:"required"`
	Content     string `json:"content" validate:"required"`
	Image       string `json:"image" validate:"required"`
	IsPublished *bool  `json:"is_published"`
}

func (in NewsInput) News(now time.Time) News {
	return News{
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Image:       in.Image,
		PublishDate: now,
		IsPublished: boolOr(in.IsPublished, true),
		Author:      DefaultNewsAuthor,
	}
}

func (in NewsInput) Fields() map[string]any {
	return map[string]any{
		"title":        in.Title,
		"excerpt":      in.Excerpt,
		"content":      in.Content,
		"image":        in.Image,
		"is_published": boolOr(in.IsPublished, true),
	}
}

type NewsView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	PublishDate time.Time `json:"publish_date"`
	Author      string    `json:"author"`
	IsPublished bool      `json:"is_published"`
}

func (n News) View() NewsView {
	return NewsView{
		ID:          n.ID,
		Title:       n.Title,
		Excerpt:     n.Excerpt,
		Content:     n.Content,
		Image:       n.Image,
		PublishDate: n.PublishDate,
		Author:      n.Author,
		IsPublished: n.IsPublished,
	}
}
