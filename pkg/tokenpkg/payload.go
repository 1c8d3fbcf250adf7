package tokenpkg

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Different types of error returned by the VerifyToken function.
var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload contains the payload data of the token.
type Payload struct {
	ID        uuid.UUID `json:"jti"`
	Username  string    `json:"sub"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

// NewPayload creates a new token payload with a specific username and duration.
func NewPayload(username string, duration time.Duration) (*Payload, error) {
	return newPayloadAt(username, time.Now(), duration)
}

func newPayloadAt(username string, issuedAt time.Time, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		ID:        tokenID,
		Username:  username,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(duration),
	}

	return payload, nil
}

// Valid checks if the token payload is valid or not.
func (payload *Payload) Valid() error {
	return payload.ValidAt(time.Now())
}

// ValidAt checks the payload against the given moment.
func (payload *Payload) ValidAt(now time.Time) error {
	if payload.Username == "" {
		return ErrInvalidToken
	}

	if now.After(payload.ExpiredAt) {
		return ErrExpiredToken
	}

	return nil
}
