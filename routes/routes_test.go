package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"alpacafarm/auth"
	"alpacafarm/booking"
	"alpacafarm/db"
	"alpacafarm/models"
	"alpacafarm/mq"
	"alpacafarm/ratelim"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	t      *testing.T
	router *httprouter.Router
	store  *db.MemoryStore
	gate   *auth.Gate
	events *mq.Recorder
	token  string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store := db.NewMemoryStore(nil)
	gate := auth.NewGate(store, []byte("routes-test"))
	gate.HashCost = bcrypt.MinCost
	_, err := gate.BootstrapDefaultAdmin(context.Background())
	require.NoError(t, err)

	events := &mq.Recorder{}
	feed := booking.NewFeed()
	h := NewHandlers(store, gate, mq.Multi{events, feed}, feed, booking.Exporter{})
	app := &testApp{
		t:      t,
		router: SetupRouter(h, ratelim.NewRateLimiter(1000, 1000)),
		store:  store,
		gate:   gate,
		events: events,
	}
	app.token = app.login(auth.DefaultAdminUsername, auth.DefaultAdminPassword)
	return app
}

func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) admin(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.do(method, path, body, a.token)
}

func (a *testApp) login(username, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp auth.LoginResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(a.t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type created struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func TestHealthAndBanner(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "200", rec.Body.String())

	rec = app.do(http.MethodGet, "/api/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	banner := decode[map[string]string](t, rec)
	assert.NotEmpty(t, banner["version"])
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = app.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/api/auth/login", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	app := newTestApp(t)

	rec := app.admin(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "admin", me["username"])
	assert.NotContains(t, me, "password_hash")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	paths := []string{
		"/api/admin/stats",
		"/api/admin/services",
		"/api/admin/blog/posts",
		"/api/admin/reviews/pending",
		"/api/admin/news",
		"/api/admin/gallery",
		"/api/admin/bookings",
		"/api/admin/bookings/export.pdf",
	}
	for _, p := range paths {
		rec := app.do(http.MethodGet, p, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p)

		rec = app.do(http.MethodGet, p, nil, "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p)
	}
}

func TestAdminRoutesRejectUnknownRole(t *testing.T) {
	app := newTestApp(t)

	hash, err := app.gate.HashPassword("pw")
	require.NoError(t, err)
	_, err = app.store.Insert(context.Background(), models.UsersCollection, &models.User{
		Username:     "editor",
		PasswordHash: hash,
		Role:         "editor",
		IsActive:     true,
	})
	require.NoError(t, err)

	token := app.login("editor", "pw")
	rec := app.do(http.MethodGet, "/api/admin/stats", nil, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServiceLifecycle(t *testing.T) {
	app := newTestApp(t)

	input := map[string]any{
		"title":       "Контактный зоопарк",
		"slug":        "zoo",
		"description": "Покормить альпак",
		"price":       "500 ₽",
		"image":       "/img/zoo.jpg",
		"order_index": 2,
	}
	rec := app.admin(http.MethodPost, "/api/admin/services", input)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	zoo := decode[created](t, rec)
	assert.NotEmpty(t, zoo.ID)

	hidden := map[string]any{
		"title": "Скоро", "slug": "soon", "description": "d", "price": "0", "image": "i",
		"is_active": false, "order_index": 1,
	}
	rec = app.admin(http.MethodPost, "/api/admin/services", hidden)
	require.Equal(t, http.StatusCreated, rec.Code)

	first := map[string]any{"title": "Экскурсия", "slug": "tour", "description": "d", "price": "300", "image": "i", "order_index": 1}
	rec = app.admin(http.MethodPost, "/api/admin/services", first)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodGet, "/api/services", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	public := decode[[]models.ServiceView](t, rec)
	require.Len(t, public, 2)
	assert.Equal(t, "tour", public[0].Slug)
	assert.Equal(t, "zoo", public[1].Slug)

	rec = app.do(http.MethodGet, "/api/services/soon", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.admin(http.MethodGet, "/api/admin/services", nil)
	assert.Len(t, decode[[]models.ServiceView](t, rec), 3)

	input["price"] = "600 ₽"
	rec = app.admin(http.MethodPut, "/api/admin/services/"+zoo.ID, input)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(http.MethodGet, "/api/services/zoo", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "600 ₽", decode[models.ServiceView](t, rec).Price)

	rec = app.admin(http.MethodPost, "/api/admin/services", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.admin(http.MethodDelete, "/api/admin/services/"+zoo.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.admin(http.MethodDelete, "/api/admin/services/"+zoo.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.admin(http.MethodPut, "/api/admin/services/missing", input)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var actions []string
	for _, e := range app.events.Events() {
		if e.Collection == models.ServicesCollection {
			actions = append(actions, e.Action)
		}
	}
	assert.Equal(t, []string{mq.ActionCreated, mq.ActionCreated, mq.ActionCreated, mq.ActionUpdated, mq.ActionDeleted}, actions)
}

func TestBlogViewsCount(t *testing.T) {
	app := newTestApp(t)

	post := map[string]any{
		"title": "Стрижка альпак", "slug": "shearing", "excerpt": "e",
		"content": "Раз в год", "image": "/img/s.jpg",
	}
	rec := app.admin(http.MethodPost, "/api/admin/blog/posts", post)
	require.Equal(t, http.StatusCreated, rec.Code)

	app.do(http.MethodGet, "/api/blog/posts/shearing", nil, "")
	rec = app.do(http.MethodGet, "/api/blog/posts/shearing", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.BlogPostView](t, rec)
	assert.Equal(t, 2, got.Views)
	assert.Equal(t, models.DefaultBlogAuthor, got.Author)
	assert.Contains(t, got.ContentHTML, "<p>Раз в год</p>")

	rec = app.do(http.MethodGet, "/api/blog/posts", nil, "")
	list := decode[[]models.BlogPostView](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Views)

	rec = app.do(http.MethodGet, "/api/blog/posts/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewModeration(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/reviews", map[string]any{
		"name": "Мария", "email": "m@example.com", "text": "Очень понравилось", "rating": 5,
		"is_approved": true, "is_featured": true,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[created](t, rec)

	rec = app.do(http.MethodGet, "/api/reviews", nil, "")
	assert.Empty(t, decode[[]models.ReviewView](t, rec))

	rec = app.admin(http.MethodGet, "/api/admin/reviews/pending", nil)
	pending := decode[[]models.ReviewView](t, rec)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].IsFeatured)

	rec = app.admin(http.MethodPut, "/api/admin/reviews/"+review.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/reviews", nil, "")
	assert.NotContains(t, rec.Body.String(), "m@example.com")
	public := decode[[]models.ReviewView](t, rec)
	require.Len(t, public, 1)
	assert.Equal(t, "Мария", public[0].Name)

	rec = app.do(http.MethodPost, "/api/reviews", map[string]any{"name": "x", "text": "y", "rating": 9}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.admin(http.MethodDelete, "/api/admin/reviews/"+review.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.admin(http.MethodPut, "/api/admin/reviews/"+review.ID+"/approve", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewsAndGallery(t *testing.T) {
	app := newTestApp(t)

	rec := app.admin(http.MethodPost, "/api/admin/news", map[string]any{
		"title": "Родился малыш", "excerpt": "e", "content": "c", "image": "i",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = app.admin(http.MethodPost, "/api/admin/news", map[string]any{
		"title": "Черновик", "excerpt": "e", "content": "c", "image": "i", "is_published": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodGet, "/api/news", nil, "")
	news := decode[[]models.NewsView](t, rec)
	require.Len(t, news, 1)
	assert.Equal(t, models.DefaultNewsAuthor, news[0].Author)

	rec = app.admin(http.MethodGet, "/api/admin/news", nil)
	assert.Len(t, decode[[]models.NewsView](t, rec), 2)

	for i, alt := range []string{"second", "first"} {
		rec = app.admin(http.MethodPost, "/api/admin/gallery", map[string]any{
			"image": "/img/" + alt + ".jpg", "alt_text": alt, "order_index": 1 - i,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec = app.admin(http.MethodPost, "/api/admin/gallery", map[string]any{
		"image": "/img/hidden.jpg", "alt_text": "hidden", "order_index": 5, "is_active": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodGet, "/api/gallery", nil, "")
	gallery := decode[[]models.GalleryView](t, rec)
	require.Len(t, gallery, 2)
	assert.Equal(t, "first", gallery[0].AltText)

	rec = app.do(http.MethodGet, "/api/gallery", nil, "")
	public := decode[[]map[string]any](t, rec)
	assert.NotContains(t, public[0], "order_index")
	assert.NotContains(t, public[0], "is_active")

	rec = app.admin(http.MethodGet, "/api/admin/gallery", nil)
	raw := decode[[]map[string]any](t, rec)
	require.Len(t, raw, 3)
	assert.Equal(t, "first", raw[0]["alt_text"])
	assert.EqualValues(t, 0, raw[0]["order_index"])
	assert.Equal(t, true, raw[0]["is_active"])
	assert.Contains(t, raw[0], "created_at")
	assert.Equal(t, "hidden", raw[2]["alt_text"])
	assert.EqualValues(t, 5, raw[2]["order_index"])
	assert.Equal(t, false, raw[2]["is_active"])
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/bookings", map[string]any{
		"name": "Пётр", "phone": "+7 900 123-45-67", "people_count": 4,
		"status": "completed", "admin_notes": "spoofed",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	b := decode[created](t, rec)

	rec = app.admin(http.MethodGet, "/api/admin/bookings?status=new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.BookingView](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, models.BookingNew, list[0].Status)

	var stored models.Booking
	require.NoError(t, app.store.FindByID(context.Background(), models.BookingsCollection, b.ID, &stored))
	assert.Empty(t, stored.AdminNotes)
	assert.False(t, stored.UpdatedAt.Before(stored.CreatedAt))

	rec = app.admin(http.MethodPut, "/api/admin/bookings/"+b.ID+"/status", map[string]string{"status": "confirmed", "admin_notes": "ждём"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.admin(http.MethodPut, "/api/admin/bookings/"+b.ID+"/status?status=completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, app.store.FindByID(context.Background(), models.BookingsCollection, b.ID, &stored))
	assert.Equal(t, models.BookingCompleted, stored.Status)
	assert.Equal(t, "ждём", stored.AdminNotes)

	rec = app.admin(http.MethodPut, "/api/admin/bookings/"+b.ID+"/status", map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = app.admin(http.MethodPut, "/api/admin/bookings/missing/status", map[string]string{"status": "new"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.admin(http.MethodGet, "/api/admin/bookings?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.admin(http.MethodGet, "/api/admin/bookings/export.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = app.admin(http.MethodGet, "/api/admin/booking-slips/"+b.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	rec = app.admin(http.MethodGet, "/api/admin/booking-slips/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPost, "/api/bookings", map[string]any{"name": "no phone"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSiteInfoAndStats(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/site-info", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultSiteInfo().Phone, decode[models.SiteInfoView](t, rec).Phone)

	app.do(http.MethodPost, "/api/bookings", map[string]any{"name": "a", "phone": "1"}, "")
	app.do(http.MethodPost, "/api/reviews", map[string]any{"name": "a", "text": "b", "rating": 3}, "")

	rec = app.admin(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.Statistics](t, rec)
	assert.EqualValues(t, 1, stats.TotalBookings)
	assert.EqualValues(t, 1, stats.PendingBookings)
	assert.EqualValues(t, 1, stats.PendingReviews)
	assert.Zero(t, stats.TotalServices)
}

func TestPublicSubmitIsRateLimited(t *testing.T) {
	store := db.NewMemoryStore(nil)
	gate := auth.NewGate(store, []byte("x"))
	feed := booking.NewFeed()
	router := SetupRouter(NewHandlers(store, gate, feed, feed, booking.Exporter{}), ratelim.NewRateLimiter(1, 1))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(`{"name":"a","phone":"1"}`))
		req.RemoteAddr = "192.0.2.1:5000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
