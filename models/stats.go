package models

// Statistics feeds the admin dashboard.
type Statistics struct {
	TotalBookings      int64 `json:"total_bookings"`
	PendingBookings    int64 `json:"pending_bookings"`
	TotalReviews       int64 `json:"total_reviews"`
	PendingReviews     int64 `json:"pending_reviews"`
	TotalServices      int64 `json:"total_services"`
	TotalBlogPosts     int64 `json:"total_blog_posts"`
	TotalGalleryImages int64 `json:"total_gallery_images"`
}
