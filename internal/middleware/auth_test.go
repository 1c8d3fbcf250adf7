package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	"github.com/go-petr/pet-finance/pkg/tokenpkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

func TestAuthMiddleware(t *testing.T) {
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	user := domain.UserWithoutPassword{
		ID:       randompkg.IntBetween(1, 1000),
		Username: randompkg.Owner(),
		Email:    randompkg.Email(),
	}

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(resolver *MockTokenResolver)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(resolver *MockTokenResolver) {
				resolver.EXPECT().ResolveToken(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "InvalidAuthorizationHeader",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "", user.Username, time.Minute)
			},
			buildStubs: func(resolver *MockTokenResolver) {
				resolver.EXPECT().ResolveToken(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadAuthHeaderFormat.Error(),
		},
		{
			name: "UnsupportedAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "basic", user.Username, time.Minute)
			},
			buildStubs: func(resolver *MockTokenResolver) {
				resolver.EXPECT().ResolveToken(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrUnsupportedAuthType.Error(),
		},
		{
			name: "Unauthenticated",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, user.Username, -time.Minute)
			},
			buildStubs: func(resolver *MockTokenResolver) {
				resolver.EXPECT().
					ResolveToken(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUnauthenticated)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrUnauthenticated.Error(),
		},
		{
			name: "ResolverInternalError",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, user.Username, time.Minute)
			},
			buildStubs: func(resolver *MockTokenResolver) {
				resolver.EXPECT().
					ResolveToken(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.UserWithoutPassword{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
		{
			name: "OK",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "Bearer", user.Username, time.Minute)
			},
			buildStubs: func(resolver *MockTokenResolver) {
				resolver.EXPECT().
					ResolveToken(gomock.Any(), gomock.Any()).
					Times(1).
					Return(user, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := NewMockTokenResolver(ctrl)
			tc.buildStubs(resolver)

			gin.SetMode(gin.ReleaseMode)
			server := gin.New()

			authPath := "/auth"
			handler := func(gctx *gin.Context) {
				gctx.JSON(http.StatusOK, web.Response{Data: AuthUser(gctx)})
			}
			server.GET(authPath, AuthMiddleware(resolver), handler)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			if err != nil {
				t.Fatalf("http.NewRequest(%v, %v, nil) returned error: %v", http.MethodGet, authPath, err)
			}

			if err = tc.setupAuth(t, request); err != nil {
				t.Fatalf("tc.setupAuth(t, %v) returned error: %v", request, err)
			}

			server.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, tc.wantStatusCode = %v, want equal",
					recorder.Code, tc.wantStatusCode)
			}

			got := web.Response{Data: &domain.UserWithoutPassword{}}
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if got.Error != tc.wantError {
				t.Errorf("got.Error = %v, tc.wantError = %v, want equal", got.Error, tc.wantError)
			}

			if tc.wantStatusCode == http.StatusUnauthorized && recorder.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Errorf("WWW-Authenticate header = %q, want %q", recorder.Header().Get("WWW-Authenticate"), "Bearer")
			}

			if tc.wantStatusCode == http.StatusOK {
				if gotUser := got.Data.(*domain.UserWithoutPassword); gotUser.Username != user.Username {
					t.Errorf("authenticated username = %q, want %q", gotUser.Username, user.Username)
				}
			}
		})
	}
}
