// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/passpkg"
	"github.com/go-petr/pet-finance/pkg/tokenpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo          Repo
	tokenMaker    tokenpkg.Maker
	tokenDuration time.Duration
}

// New return user service struct to manage user bussines logic.
func New(ur Repo, tm tokenpkg.Maker, tokenDuration time.Duration) *Service {
	return &Service{
		repo:          ur,
		tokenMaker:    tm,
		tokenDuration: tokenDuration,
	}
}

// Register hashes the password, creates the user and returns it.
func (s *Service) Register(ctx context.Context, username, email, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return domain.NewUserWithoutPassword(gotUser), nil
}

// dummyHash is compared against when the username is unknown so both
// failure paths take a bcrypt comparison.
var dummyHash, _ = passpkg.Hash("not-a-real-password")

// Authenticate checks the password of the given username.
//
// An unknown username and a wrong password both return domain.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = passpkg.Check(password, dummyHash)
			l.Info().Str("username", username).Msg("login with unknown username")
			return response, domain.ErrInvalidCredentials
		}

		return response, err
	}

	if err := passpkg.Check(password, gotUser.PasswordHash); err != nil {
		l.Info().Err(err).Str("username", username).Send()
		return response, domain.ErrInvalidCredentials
	}

	return domain.NewUserWithoutPassword(gotUser), nil
}

// IssueToken creates an access token for the user.
func (s *Service) IssueToken(ctx context.Context, user domain.UserWithoutPassword) (string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	token, payload, err := s.tokenMaker.CreateToken(user.Username, s.tokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return token, payload.ExpiredAt, nil
}

// ResolveToken verifies the access token and returns the user it was issued for.
//
// Any failure, including a user removed after issuing, is domain.ErrUnauthenticated.
func (s *Service) ResolveToken(ctx context.Context, token string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	payload, err := s.tokenMaker.VerifyToken(token)
	if err != nil {
		l.Info().Err(err).Send()
		return response, domain.ErrUnauthenticated
	}

	gotUser, err := s.repo.Get(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			l.Info().Str("username", payload.Username).Msg("token subject not found")
			return response, domain.ErrUnauthenticated
		}

		return response, err
	}

	return domain.NewUserWithoutPassword(gotUser), nil
}
