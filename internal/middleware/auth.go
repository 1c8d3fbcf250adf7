package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/tokenpkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

const (
	// AuthHeaderKey is the request header carrying the access token.
	AuthHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization scheme.
	AuthTypeBearer = "bearer"
	// AuthUserKey is the gin context key of the authenticated domain.UserWithoutPassword.
	AuthUserKey = "auth_user"
)

var (
	// ErrAuthHeaderNotFound indicates that the authorization header is not provided.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat indicates that the authorization header is not "<type> <token>".
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType indicates a scheme other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// TokenResolver turns an access token into the user it was issued for.
//
//go:generate mockgen -source auth.go -destination auth_mock.go -package middleware
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (domain.UserWithoutPassword, error)
}

// AddAuthorization creates a token for username and sets it as the authorization header of r.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

func abortUnauthorized(gctx *gin.Context, err error) {
	gctx.Header("WWW-Authenticate", "Bearer")
	gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
}

// AuthMiddleware authenticates the request by its bearer token and stores the user under AuthUserKey.
func AuthMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := gctx.Request.Context()
		l := zerolog.Ctx(ctx)

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			abortUnauthorized(gctx, ErrAuthHeaderNotFound)
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 {
			abortUnauthorized(gctx, ErrBadAuthHeaderFormat)
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			abortUnauthorized(gctx, ErrUnsupportedAuthType)
			return
		}

		user, err := resolver.ResolveToken(ctx, fields[1])
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				abortUnauthorized(gctx, err)
				return
			}

			l.Error().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		gctx.Set(AuthUserKey, user)
		gctx.Next()
	}
}

// AuthUser returns the user stored by AuthMiddleware.
func AuthUser(gctx *gin.Context) domain.UserWithoutPassword {
	user, _ := gctx.MustGet(AuthUserKey).(domain.UserWithoutPassword)
	return user
}
