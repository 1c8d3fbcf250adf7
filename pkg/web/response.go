// Package web defines common components for a web application.
package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	TokenType            string `json:"token_type,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg turns a binding error into a message fit for the client.
//
// Validation errors are reported for the first failed field as "<Field> <reason>".
func GetErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err.Error()
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "email":
		return fe.Field() + " must be a valid email"
	case "alphanum":
		return fe.Field() + " must contain only letters and digits"
	case "currency":
		return fe.Field() + " is not supported"
	case "amount":
		return fe.Field() + " must be a decimal with at most 2 fraction digits"
	case "datetime":
		return fe.Field() + " must be a date in " + fe.Param() + " format"
	case "gtefield":
		return fe.Field() + " must not be before " + fe.Param()
	}

	return fe.Field() + " is invalid"
}

// Updated is the response to a successful update.
func Updated() Response {
	return Response{Data: map[string]bool{"updated": true}}
}

// Deleted is the response to a successful delete.
func Deleted() Response {
	return Response{Data: map[string]bool{"deleted": true}}
}
