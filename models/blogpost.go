package models

import "time"

const DefaultBlogAuthor = "Команда ЛуЛу"

type BlogPost struct {
	Meta           `bson:",inline"`
	Title          string    `json:"title" bson:"title"`
	Slug           string    `json:"slug" bson:"slug"`
	Excerpt        string    `json:"excerpt" bson:"excerpt"`
	Content        string    `json:"content" bson:"content"`
	Author         string    `json:"author" bson:"author"`
	PublishDate    time.Time `json:"publish_date" bson:"publish_date"`
	IsPublished    bool      `json:"is_published" bson:"is_published"`
	Tags           []string  `json:"tags" bson:"tags"`
	Image          string    `json:"image" bson:"image"`
	Views          int       `json:"views" bson:"views"`
	SEOTitle       string    `json:"seo_title,omitempty" bson:"seo_title,omitempty"`
	SEODescription string    `json:"seo_description,omitempty" bson:"seo_description,omitempty"`
	SEOKeywords    []string  `json:"seo_keywords,omitempty" bson:"seo_keywords,omitempty"`
}

type BlogPostInput struct {
	Title       string   `json:"title" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Excerpt     string   `json:"excerpt" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image" validate:"required"`
	IsPublished *bool    `json:"is_published"`
}

func (in BlogPostInput) author() string {
	if in.Author == "" {
		return DefaultBlogAuthor
	}
	return in.Author
}

func (in BlogPostInput) tags() []string {
	if in.Tags == nil {
		return []string{}
	}
	return in.Tags
}

// BlogPost builds a fresh post; views start at zero and the publish date is now.
func (in BlogPostInput) BlogPost(now time.Time) BlogPost {
	return BlogPost{
		Title:       in.Title,
		Slug:        in.Slug,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Author:      in.author(),
		PublishDate: now,
		IsPublished: boolOr(in.IsPublished, true),
		Tags:        in.tags(),
		Image:       in.Image,
	}
}

// Fields leaves views and publish_date alone.
func (in BlogPostInput) Fields() map[string]any {
	return map[string]any{
		"title":        in.Title,
		"slug":         in.Slug,
		"excerpt":      in.Excerpt,
		"content":      in.Content,
		"author":       in.author(),
		"tags":         in.tags(),
		"image":        in.Image,
		"is_published": boolOr(in.IsPublished, true),
	}
}

type BlogPostView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Author      string    `json:"author"`
	PublishDate time.Time `json:"publish_date"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image"`
	Views       int       `json:"views"`
	IsPublished bool      `json:"is_published"`
}

func (p BlogPost) View() BlogPostView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogPostView{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Author:      p.Author,
		PublishDate: p.PublishDate,
		Tags:        tags,
		Image:       p.Image,
		Views:       p.Views,
		IsPublished: p.IsPublished,
	}
}
