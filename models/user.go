package models

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// Valid reports whether r is a known role. Documents written by hand may carry
// anything, so the gate still checks.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleModerator
}

type User struct {
	Meta         `bson:",inline"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	FullName     string     `json:"full_name" bson:"full_name"`
	Role         Role       `json:"role" bson:"role"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	LastLogin    *time.Time `json:"last_login" bson:"last_login,omitempty"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserView is the identity shown to an authenticated admin.
type UserView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"last_login"`
}

func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		LastLogin: u.LastLogin,
	}
}
