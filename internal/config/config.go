// Package config resolves the process configuration once at start up.
//
// Nothing in the backend reads the environment after Load has run, the
// resulting Config is handed to the components that need it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/towerledger/backend/internal/types"
)

var (
	ErrAPIURLMissing    = errors.New("environment variable API_URL must be set")
	ErrJWTSecretMissing = errors.New("environment variable JWT_SECRET must be set")
)

// DefaultOffsetMinutes is UTC+05:00.
const DefaultOffsetMinutes = 300

// Config holds application configuration.
type Config struct {
	APIURL *url.URL

	DBPath     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	JWTSecret string
	JWTTTL    time.Duration

	// Zone is the fixed local offset used for all calendar gating
	Zone types.Zone

	CORSAllowOrigins []string
	EnablePprof      bool

	AdminUsername string
	AdminPassword string
}

// Load loads configuration from environment variables and the .env file
// in the working directory, if there is one.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:           getenv("DB_PATH", "data/backend.db"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getenv("DB_PORT", "5432"),
		DBName:           getenv("DB_NAME", "backend"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      getenvBool("ENABLE_PPROF", false),
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}

	if raw := os.Getenv("API_URL"); raw != "" {
		apiURL, err := url.Parse(raw)
		if err != nil || apiURL.Scheme == "" || apiURL.Host == "" {
			return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL, is '%s'", raw)
		}
		cfg.APIURL = apiURL
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable JWT_TTL is invalid: %w", err)
	}
	cfg.JWTTTL = ttl

	offset, err := strconv.Atoi(getenv("TZ_OFFSET_MINUTES", strconv.Itoa(DefaultOffsetMinutes)))
	if err != nil || offset <= -24*60 || offset >= 24*60 {
		return Config{}, fmt.Errorf("environment variable TZ_OFFSET_MINUTES must be a number of minutes between -1439 and 1439")
	}
	cfg.Zone = types.NewZone(offset)

	return cfg, nil
}

// Validate checks that everything needed to serve the API is configured.
func (c Config) Validate() error {
	if c.APIURL == nil {
		return ErrAPIURLMissing
	}

	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}

	return nil
}

// PostgresDSN returns the DSN for postgres. It is empty if no DB_HOST is configured.
func (c Config) PostgresDSN() string {
	if c.DBHost == "" {
		return ""
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s", c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
