package routes

import (
	"fmt"
	"net/http"

	"alpacafarm/globals"
	"alpacafarm/ratelim"
	"alpacafarm/utils"

	"github.com/julienschmidt/httprouter"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// Banner answers GET /api/ with the service name and version.
func Banner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": globals.APIName,
		"version": globals.APIVersion,
	})
}

func AddMiscRoutes(router *httprouter.Router) {
	router.GET("/health", Index)
	router.GET("/api/", Banner)
}

func AddSiteInfoRoutes(router *httprouter.Router, h *Handlers) {
	router.GET("/api/site-info", h.SiteInfo.Get)
}

func AddAuthRoutes(router *httprouter.Router, h *Handlers, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rateLimiter.Limit(h.Auth.Login))
	router.GET("/api/auth/me", h.admin(h.Auth.Me))
}

func AddServiceRoutes(router *httprouter.Router, h *Handlers) {
	router.GET("/api/services", h.Services.List)
	router.GET("/api/services/:slug", h.Services.BySlug)

	router.GET("/api/admin/services", h.admin(h.Services.AdminList))
	router.POST("/api/admin/services", h.admin(h.Services.Create))
	router.PUT("/api/admin/services/:id", h.admin(h.Services.Update))
	router.DELETE("/api/admin/services/:id", h.admin(h.Services.Delete))
}

func AddBlogRoutes(router *httprouter.Router, h *Handlers) {
	router.GET("/api/blog/posts", h.Blog.List)
	router.GET("/api/blog/posts/:slug", h.Blog.BySlug)

	router.GET("/api/admin/blog/posts", h.admin(h.Blog.AdminList))
	router.POST("/api/admin/blog/posts", h.admin(h.Blog.Create))
	router.PUT("/api/admin/blog/posts/:id", h.admin(h.Blog.Update))
	router.DELETE("/api/admin/blog/posts/:id", h.admin(h.Blog.Delete))
}

func AddReviewsRoutes(router *httprouter.Router, h *Handlers, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/reviews", h.Reviews.List)
	router.POST("/api/reviews", rateLimiter.Limit(h.Reviews.Submit))

	router.GET("/api/admin/reviews/pending", h.admin(h.Reviews.Pending))
	router.PUT("/api/admin/reviews/:id/approve", h.admin(h.Reviews.Approve))
	router.DELETE("/api/admin/reviews/:id", h.admin(h.Reviews.Delete))
}

func AddNewsRoutes(router *httprouter.Router, h *Handlers) {
	router.GET("/api/news", h.News.List)

	router.GET("/api/admin/news", h.admin(h.News.AdminList))
	router.POST("/api/admin/news", h.admin(h.News.Create))
	router.PUT("/api/admin/news/:id", h.admin(h.News.Update))
	router.DELETE("/api/admin/news/:id", h.admin(h.News.Delete))
}

func AddGalleryRoutes(router *httprouter.Router, h *Handlers) {
	router.GET("/api/gallery", h.Gallery.List)

	router.GET("/api/admin/gallery", h.admin(h.Gallery.AdminList))
	router.POST("/api/admin/gallery", h.admin(h.Gallery.Create))
	router.PUT("/api/admin/gallery/:id", h.admin(h.Gallery.Update))
	router.DELETE("/api/admin/gallery/:id", h.admin(h.Gallery.Delete))
}

func AddBookingRoutes(router *httprouter.Router, h *Handlers, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/bookings", rateLimiter.Limit(h.Bookings.Submit))

	router.GET("/api/admin/bookings", h.admin(h.Bookings.AdminList))
	router.GET("/api/admin/bookings/export.pdf", h.admin(h.Bookings.Export))
	router.GET("/api/admin/bookings/live", h.admin(h.Feed.Handle))
	router.PUT("/api/admin/bookings/:id/status", h.admin(h.Bookings.UpdateStatus))
	router.GET("/api/admin/booking-slips/:id", h.admin(h.Bookings.Slip))
}

func AddAdminRoutes(router *httprouter.Router, h *Handlers) {
	router.GET("/api/admin/stats", h.admin(h.Stats.GetStats))
}
