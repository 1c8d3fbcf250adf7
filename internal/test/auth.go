package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	"github.com/go-petr/pet-finance/pkg/tokenpkg"
)

// Auth issues real bearer tokens for a fixed set of users and resolves them back.
//
// It stands in for the user service behind middleware.AuthMiddleware in handler tests.
type Auth struct {
	maker tokenpkg.Maker
	users map[string]domain.UserWithoutPassword
}

// NewAuth returns Auth that knows the given users.
func NewAuth(t *testing.T, users ...domain.UserWithoutPassword) *Auth {
	t.Helper()

	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	a := &Auth{
		maker: maker,
		users: make(map[string]domain.UserWithoutPassword, len(users)),
	}

	for _, u := range users {
		a.users[u.Username] = u
	}

	return a
}

// ResolveToken implements middleware.TokenResolver.
func (a *Auth) ResolveToken(_ context.Context, token string) (domain.UserWithoutPassword, error) {
	payload, err := a.maker.VerifyToken(token)
	if err != nil {
		return domain.UserWithoutPassword{}, domain.ErrUnauthenticated
	}

	u, ok := a.users[payload.Username]
	if !ok {
		return domain.UserWithoutPassword{}, domain.ErrUnauthenticated
	}

	return u, nil
}

// Authorize sets a valid bearer token of user on r.
func (a *Auth) Authorize(r *http.Request, user domain.UserWithoutPassword) error {
	return middleware.AddAuthorization(r, a.maker, middleware.AuthTypeBearer, user.Username, time.Minute)
}

// RandomUser returns a user that is not stored anywhere.
func RandomUser() domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:       randompkg.IntBetween(1, 1_000_000),
		Username: randompkg.Owner(),
		Email:    randompkg.Email(),
	}
}
