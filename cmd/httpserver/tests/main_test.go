//go:build integration

package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-finance/cmd/httpserver"
	"github.com/go-petr/pet-finance/internal/integrationtest"
)

const configPath = "../../../configs"

// envelope mirrors web.Response with the data left raw for per-test decoding.
type envelope struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	Data        json.RawMessage `json:"data"`
	Error       string          `json:"error"`
}

func decode(t *testing.T, body []byte, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))

	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}

	return env
}

// login registers the user and returns a bearer token for it.
func login(t *testing.T, server *httpserver.Server, username string) string {
	t.Helper()

	rec := integrationtest.Do(t, server, http.MethodPost, "/v1/login/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = integrationtest.Do(t, server, http.MethodPost, "/v1/login/token", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec.Body.Bytes(), nil)
	require.NotEmpty(t, env.AccessToken)
	require.Equal(t, "bearer", env.TokenType)

	return env.AccessToken
}
