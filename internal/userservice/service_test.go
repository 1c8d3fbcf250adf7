package userservice

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/passpkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	"github.com/go-petr/pet-finance/pkg/tokenpkg"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

const tokenDuration = time.Hour

func randomUser(t *testing.T) (domain.User, string) {
	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%v) failed: %v", password, err)
	}

	user := domain.User{
		ID:           randompkg.IntBetween(1, 1000),
		Username:     randompkg.Owner(),
		Email:        randompkg.Email(),
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	return user, password
}

func newTestMaker(t *testing.T) tokenpkg.Maker {
	maker, err := tokenpkg.NewJWTMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewJWTMaker() returned error: %v", err)
	}

	return maker
}

type eqCreateUserParamsMatcher struct {
	arg      domain.CreateUserParams
	password string
}

func (e eqCreateUserParamsMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateUserParams)
	if !ok {
		return false
	}

	if err := passpkg.Check(e.password, arg.PasswordHash); err != nil {
		return false
	}

	e.arg.PasswordHash = arg.PasswordHash

	return reflect.DeepEqual(e.arg, arg)
}

func (e eqCreateUserParamsMatcher) String() string {
	return fmt.Sprintf("matches arg %v and password %v", e.arg, e.password)
}

func EqCreateUserParams(arg domain.CreateUserParams, password string) gomock.Matcher {
	return eqCreateUserParamsMatcher{arg, password}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	testCases := []struct {
		name          string
		password      string
		buildStubs    func(userRepo *MockRepo)
		checkResponse func(t *testing.T, got domain.UserWithoutPassword)
		wantError     error
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), EqCreateUserParams(
						domain.CreateUserParams{
							Username: user.Username,
							Email:    user.Email,
						}, password)).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, got domain.UserWithoutPassword) {
				want := domain.NewUserWithoutPassword(user)

				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Register() mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:     "HashPasswordErr",
			password: strings.Repeat("long", 100),
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: errorspkg.ErrInternal,
		},
		{
			name:     "ErrUsernameAlreadyExists",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrUsernameAlreadyExists)
			},
			wantError: domain.ErrUsernameAlreadyExists,
		},
		{
			name:     "ErrEmailAlreadyExists",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrEmailAlreadyExists)
			},
			wantError: domain.ErrEmailAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo, newTestMaker(t), tokenDuration)

			tc.buildStubs(userRepo)

			got, err := userService.Register(context.Background(), user.Username, user.Email, tc.password)
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("userService.Register(ctx, %v, %v, %v) got error %v, want %v",
					user.Username, user.Email, tc.password, err, tc.wantError)
			}

			if tc.wantError != nil {
				t.Fatalf("userService.Register() got nil error, want %v", tc.wantError)
			}

			tc.checkResponse(t, got)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	testCases := []struct {
		name       string
		password   string
		buildStubs func(userRepo *MockRepo)
		wantError  error
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(user, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "wrong" + password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(user, nil)
			},
			wantError: domain.ErrInvalidCredentials,
		},
		{
			name:     "UnknownUsername",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrInvalidCredentials,
		},
		{
			name:     "RepoInternalError",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(domain.User{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo, newTestMaker(t), tokenDuration)

			tc.buildStubs(userRepo)

			got, err := userService.Authenticate(context.Background(), user.Username, tc.password)
			if !errors.Is(err, tc.wantError) {
				t.Fatalf("userService.Authenticate(ctx, %v, %v) got error %v, want %v",
					user.Username, tc.password, err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if diff := cmp.Diff(domain.NewUserWithoutPassword(user), got); diff != "" {
				t.Errorf("Authenticate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIssueAndResolveToken(t *testing.T) {
	t.Parallel()

	user, _ := randomUser(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := NewMockRepo(ctrl)
	userService := New(userRepo, newTestMaker(t), tokenDuration)

	token, expiresAt, err := userService.IssueToken(context.Background(), domain.NewUserWithoutPassword(user))
	if err != nil {
		t.Fatalf("userService.IssueToken() returned error: %v", err)
	}

	if token == "" {
		t.Fatal("userService.IssueToken() returned empty token")
	}

	if d := time.Until(expiresAt); d <= tokenDuration-time.Minute || d > tokenDuration {
		t.Errorf("token expires in %v, want about %v", d, tokenDuration)
	}

	userRepo.EXPECT().
		Get(gomock.Any(), user.Username).
		Times(1).
		Return(user, nil)

	got, err := userService.ResolveToken(context.Background(), token)
	if err != nil {
		t.Fatalf("userService.ResolveToken() returned error: %v", err)
	}

	if diff := cmp.Diff(domain.NewUserWithoutPassword(user), got); diff != "" {
		t.Errorf("ResolveToken() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTokenErrors(t *testing.T) {
	t.Parallel()

	user, _ := randomUser(t)

	otherMaker := newTestMaker(t)

	foreignToken, _, err := otherMaker.CreateToken(user.Username, tokenDuration)
	if err != nil {
		t.Fatalf("otherMaker.CreateToken() returned error: %v", err)
	}

	testCases := []struct {
		name       string
		buildToken func(t *testing.T, maker tokenpkg.Maker) string
		buildStubs func(userRepo *MockRepo)
		wantError  error
	}{
		{
			name: "Malformed",
			buildToken: func(t *testing.T, maker tokenpkg.Maker) string {
				return "not-a-token"
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrUnauthenticated,
		},
		{
			name: "SignedWithAnotherKey",
			buildToken: func(t *testing.T, maker tokenpkg.Maker) string {
				return foreignToken
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrUnauthenticated,
		},
		{
			name: "Expired",
			buildToken: func(t *testing.T, maker tokenpkg.Maker) string {
				token, _, err := maker.CreateToken(user.Username, -time.Minute)
				if err != nil {
					t.Fatalf("maker.CreateToken() returned error: %v", err)
				}

				return token
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrUnauthenticated,
		},
		{
			name: "UserDeleted",
			buildToken: func(t *testing.T, maker tokenpkg.Maker) string {
				token, _, err := maker.CreateToken(user.Username, tokenDuration)
				if err != nil {
					t.Fatalf("maker.CreateToken() returned error: %v", err)
				}

				return token
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Get(gomock.Any(), user.Username).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUnauthenticated,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			maker := newTestMaker(t)
			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo, maker, tokenDuration)

			tc.buildStubs(userRepo)

			_, err := userService.ResolveToken(context.Background(), tc.buildToken(t, maker))
			if !errors.Is(err, tc.wantError) {
				t.Errorf("userService.ResolveToken() got error %v, want %v", err, tc.wantError)
			}
		})
	}
}
