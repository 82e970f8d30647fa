package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 24 * time.Hour

// First-run credentials. They are weak on purpose and must be changed after
// the first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@alpaca-lulu.ru"
	DefaultAdminFullName = "Администратор"
)

// RoleSet is the static list of roles an endpoint accepts.
type RoleSet map[models.Role]struct{}

func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(r models.Role) bool {
	_, ok := s[r]
	return ok
}

// AdminRoles guards every admin endpoint. Moderators get the same access as admins.
var AdminRoles = NewRoleSet(models.RoleAdmin, models.RoleModerator)

// JWT claims
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

var errBadCredentials = domain.UnauthorizedError{Msg: "incorrect username or password"}

// Gate verifies passwords, issues and checks bearer tokens and enforces roles.
// Its only state is the users collection.
type Gate struct {
	Store    db.Store
	Secret   []byte
	TTL      time.Duration
	Now      func() time.Time
	HashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewGate(store db.Store, secret []byte) *Gate {
	return &Gate{
		Store:    store,
		Secret:   secret,
		TTL:      DefaultTokenTTL,
		Now:      db.SystemClock,
		HashCost: bcrypt.DefaultCost,
	}
}

func (g *Gate) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (g *Gate) findUser(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := g.Store.FindOne(ctx, models.UsersCollection, bson.M{"username": username}, &u)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return &u, nil
}

// dummy is a hash of no real password, compared against when the username is
// unknown so both failure paths cost one bcrypt comparison.
func (g *Gate) dummy() []byte {
	g.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("unknown-user"), g.HashCost)
		if err != nil {
			log.Printf("[Auth] failed to prepare dummy hash: %v", err)
			return
		}
		g.dummyHash = hash
	})
	return g.dummyHash
}

// Authenticate checks a username/password pair and records the login time.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := g.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(g.dummy(), []byte(password))
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}

	now := g.Now()
	if _, err := g.Store.Update(ctx, models.UsersCollection, u.ID, bson.M{"last_login": now}); err != nil {
		return nil, domain.InternalError{Msg: "failed to record login", Err: err}
	}
	u.LastLogin = &now
	log.Printf("[Auth] %s logged in", u.Username)
	return u, nil
}

// IssueToken signs an HS256 token for u that expires TTL from now.
func (g *Gate) IssueToken(u *models.User) (string, time.Time, error) {
	now := g.Now()
	exp := now.Add(g.TTL)
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// VerifyToken checks signature and expiry, then re-reads the user named by the
// subject claim so deleted users lose access immediately.
func (g *Gate) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, domain.UnauthorizedError{Msg: "missing token"}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return g.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.Now),
	)
	if err != nil || !token.Valid {
		return nil, domain.UnauthorizedError{Err: err}
	}
	if claims.Subject == "" {
		return nil, domain.UnauthorizedError{}
	}

	u, err := g.findUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.UnauthorizedError{}
	}
	return u, nil
}

// RequireRole passes u through when its role is in allowed.
func (g *Gate) RequireRole(u *models.User, allowed RoleSet) (*models.User, error) {
	if u == nil {
		return nil, domain.UnauthorizedError{}
	}
	if !u.Role.Valid() || !allowed.Has(u.Role) {
		return nil, domain.ForbiddenError{}
	}
	return u, nil
}

// BootstrapDefaultAdmin creates admin/admin123 when no admin exists yet.
func (g *Gate) BootstrapDefaultAdmin(ctx context.Context) (bool, error) {
	n, err := g.Store.Count(ctx, models.UsersCollection, bson.M{"role": string(models.RoleAdmin)})
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := g.HashPassword(DefaultAdminPassword)
	if err != nil {
		return false, fmt.Errorf("hash default password: %w", err)
	}
	admin := &models.User{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		FullName:     DefaultAdminFullName,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if _, err := g.Store.Insert(ctx, models.UsersCollection, admin); err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}
	log.Printf("[Auth] created default admin user %q with the default password; change it now", DefaultAdminUsername)
	return true, nil
}
