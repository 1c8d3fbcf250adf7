// Package integrationtest provides helpers for end-to-end tests against a running database.
package integrationtest

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/cmd/httpserver"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/pkg/configpkg"
	"github.com/go-petr/pet-finance/pkg/dbpkg"

	_ "github.com/lib/pq" // postgres driver
)

// SetupServer returns a server on a migrated database that is flushed after the test.
func SetupServer(t *testing.T, configPath string) *httpserver.Server {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf("configpkg.Load(%q) returned error: %v", configPath, err)
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource())

	gin.SetMode(gin.TestMode)

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		t.Fatalf("httpserver.New(db, logger, config) returned error: %v", err)
	}

	return server
}

// Flush truncates every table of the public schema except the migration bookkeeping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	const query = `
	SELECT string_agg(quote_ident(table_name), ', ')
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_name <> 'schema_migrations'`

	var tables sql.NullString
	if err := db.QueryRow(query).Scan(&tables); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if !tables.Valid {
		return
	}

	if _, err := db.Exec("TRUNCATE TABLE " + tables.String + " RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB connects to the database, migrates it and flushes it once the test is done.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source, dbpkg.PoolOptions{MaxOpenConns: 5})
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("dbpkg.Migrate() returned error: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// Do sends a JSON request to the server and returns the recorded response.
//
// An empty token sends the request without an Authorization header.
func Do(t *testing.T, h http.Handler, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal(%v) returned error: %v", body, err)
		}

		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("http.NewRequest(%q, %q) returned error: %v", method, url, err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)

	return recorder
}
