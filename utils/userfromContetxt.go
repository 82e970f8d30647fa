package utils

import (
	"context"
	"net/http"

	"alpacafarm/globals"
	"alpacafarm/models"
)

// WithIdentity stores the authenticated admin on the context.
func WithIdentity(ctx context.Context, u *models.User) context.Context {
	ctx = context.WithValue(ctx, globals.UserIDKey, u.ID)
	return context.WithValue(ctx, globals.IdentityKey, u)
}

func IdentityFromRequest(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(globals.IdentityKey).(*models.User)
	return u, ok && u != nil
}

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return requestingUserID
}
