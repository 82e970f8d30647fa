package models

import "time"

// Meta carries the server-assigned fields every stored document has.
type Meta struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Stamp assigns the identifier and both timestamps. The store calls it once, on insert.
func (m *Meta) Stamp(id string, now time.Time) {
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Collection names
const (
	SiteInfoCollection = "site_info"
	ServicesCollection = "services"
	BlogCollection     = "blog_posts"
	ReviewsCollection  = "reviews"
	NewsCollection     = "news"
	GalleryCollection  = "gallery"
	BookingsCollection = "bookings"
	UsersCollection    = "users"
)

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
