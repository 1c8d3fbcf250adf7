// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
// Environment variables take precedence over the file.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"GO_ENV"`

	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            int           `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`

	TokenSecretKey           string `mapstructure:"TOKEN_SECRET_KEY"`
	TokenAlgorithm           string `mapstructure:"TOKEN_ALGORITHM"`
	AccessTokenExpireMinutes int    `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":              "0.0.0.0:8080",
	"GO_ENV":                      "production",
	"DB_DRIVER":                   "postgres",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     5432,
	"DB_USER":                     "postgres",
	"DB_PASSWORD":                 "",
	"DB_NAME":                     "finance",
	"DB_SSLMODE":                  "disable",
	"DB_MAX_OPEN_CONNS":           25,
	"DB_MAX_IDLE_CONNS":           10,
	"DB_CONN_MAX_LIFETIME":        time.Hour,
	"DB_AUTO_MIGRATE":             true,
	"TOKEN_SECRET_KEY":            "",
	"TOKEN_ALGORITHM":             "HS256",
	"ACCESS_TOKEN_EXPIRE_MINUTES": 60 * 24 * 7,
	"CORS_ALLOWED_ORIGINS":        []string{"*"},
}

// Load reads configuration from the app.env file in path and from environment variables.
//
// A missing app.env is not an error.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	if c.TokenSecretKey == "" {
		return c, errors.New("TOKEN_SECRET_KEY is not set")
	}

	return c, nil
}

// DBSource returns the connection string for the configured database.
func (c Config) DBSource() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}

	return u.String()
}

// AccessTokenDuration returns the lifetime of issued access tokens.
func (c Config) AccessTokenDuration() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}
