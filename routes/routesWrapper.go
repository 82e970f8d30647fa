package routes

import (
	"alpacafarm/admin"
	"alpacafarm/auth"
	"alpacafarm/blog"
	"alpacafarm/booking"
	"alpacafarm/db"
	"alpacafarm/gallery"
	"alpacafarm/middleware"
	"alpacafarm/mq"
	"alpacafarm/news"
	"alpacafarm/ratelim"
	"alpacafarm/reviews"
	"alpacafarm/services"
	"alpacafarm/siteinfo"

	"github.com/julienschmidt/httprouter"
)

// Handlers holds one handler per feature, all sharing a store, gate and
// event sink.
type Handlers struct {
	Gate     *auth.Gate
	Auth     *auth.Handler
	SiteInfo *siteinfo.Handler
	Services *services.Handler
	Blog     *blog.Handler
	Reviews  *reviews.Handler
	News     *news.Handler
	Gallery  *gallery.Handler
	Bookings *booking.Handler
	Feed     *booking.Feed
	Stats    *admin.Handler
}

// NewHandlers wires every feature to store. events should already include
// feed when live updates are wanted.
func NewHandlers(store db.Store, gate *auth.Gate, events mq.Emitter, feed *booking.Feed, exporter booking.Exporter) *Handlers {
	return &Handlers{
		Gate:     gate,
		Auth:     &auth.Handler{Gate: gate},
		SiteInfo: &siteinfo.Handler{Service: siteinfo.NewService(store)},
		Services: &services.Handler{Service: services.NewService(store), Events: events},
		Blog:     &blog.Handler{Service: blog.NewService(store), Events: events},
		Reviews:  &reviews.Handler{Service: reviews.NewService(store), Events: events},
		News:     &news.Handler{Service: news.NewService(store), Events: events},
		Gallery:  &gallery.Handler{Service: gallery.NewService(store), Events: events},
		Bookings: &booking.Handler{Service: booking.NewService(store), Events: events, Exporter: exporter},
		Feed:     feed,
		Stats:    &admin.Handler{Stats: admin.NewStats(store)},
	}
}

func (h *Handlers) admin(next httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(h.Gate, auth.AdminRoles)(next)
}

func RoutesWrapper(router *httprouter.Router, h *Handlers, rateLimiter *ratelim.RateLimiter) {
	AddMiscRoutes(router)
	AddSiteInfoRoutes(router, h)
	AddAuthRoutes(router, h, rateLimiter)
	AddServiceRoutes(router, h)
	AddBlogRoutes(router, h)
	AddReviewsRoutes(router, h, rateLimiter)
	AddNewsRoutes(router, h)
	AddGalleryRoutes(router, h)
	AddBookingRoutes(router, h, rateLimiter)
	AddAdminRoutes(router, h)
}

// SetupRouter builds a router carrying every route.
func SetupRouter(h *Handlers, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	RoutesWrapper(router, h, rateLimiter)
	return router
}
