package blog

import (
	"bytes"
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"go.mongodb.org/mongo-driver/bson"
)

var errNotFound = domain.NotFoundError{Resource: "blog post"}

// goldmark drops raw HTML unless html.WithUnsafe is set; keep it off.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(htmlrenderer.WithHardWraps()),
)

type Service struct {
	Store db.Store
	Now   func() time.Time
}

func NewService(store db.Store) *Service {
	return &Service{Store: store, Now: db.SystemClock}
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		log.Printf("[Blog] markdown render failed: %v", err)
		return ""
	}
	return buf.String()
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.BlogPostView, error) {
	var posts []models.BlogPost
	if err := s.Store.Find(ctx, models.BlogCollection, filter, &posts); err != nil {
		return nil, domain.InternalError{Msg: "failed to load blog posts", Err: err}
	}
	slices.SortStableFunc(posts, func(a, b models.BlogPost) int {
		return b.PublishDate.Compare(a.PublishDate)
	})

	views := make([]models.BlogPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.View())
	}
	return views, nil
}

// ListPublished returns published posts, newest first.
func (s *Service) ListPublished(ctx context.Context) ([]models.BlogPostView, error) {
	return s.find(ctx, bson.M{"is_published": true})
}

func (s *Service) ListAll(ctx context.Context) ([]models.BlogPostView, error) {
	return s.find(ctx, nil)
}

// BySlug returns a published post and counts the read. Concurrent reads may
// race on the counter; the store increments atomically where it can.
func (s *Service) BySlug(ctx context.Context, slug string) (models.BlogPostView, error) {
	var post models.BlogPost
	err := s.Store.FindOne(ctx, models.BlogCollection, bson.M{"slug": slug, "is_published": true}, &post)
	if errors.Is(err, db.ErrNotFound) {
		return models.BlogPostView{}, errNotFound
	}
	if err != nil {
		return models.BlogPostView{}, domain.InternalError{Msg: "failed to load blog post", Err: err}
	}

	if err := s.Store.Increment(ctx, models.BlogCollection, post.ID, "views", 1); err != nil {
		return models.BlogPostView{}, domain.InternalError{Msg: "failed to count view", Err: err}
	}
	post.Views++

	view := post.View()
	view.ContentHTML = renderMarkdown(post.Content)
	return view, nil
}

func (s *Service) Create(ctx context.Context, in models.BlogPostInput) (string, error) {
	if err := domain.Validate(in); err != nil {
		return "", err
	}
	post := in.BlogPost(s.Now())
	id, err := s.Store.Insert(ctx, models.BlogCollection, &post)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to create blog post", Err: err}
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.BlogPostInput) error {
	if err := domain.Validate(in); err != nil {
		return err
	}
	ok, err := s.Store.Update(ctx, models.BlogCollection, id, in.Fields())
	if err != nil {
		return domain.InternalError{Msg: "failed to update blog post", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Delete(ctx, models.BlogCollection, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete blog post", Err: err}
	}
	if !ok {
		return errNotFound
	}
	return nil
}
