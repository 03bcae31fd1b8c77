// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the React dev server. Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	// MaxBodyBytes caps the size of incoming request bodies.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	// StoreDriver selects the document store: postgres, firestore or memory.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// FirestoreProjectID is the GCP project holding the Firestore database.
	// Required for the firestore driver.
	FirestoreProjectID string `envconfig:"FIRESTORE_PROJECT_ID"`

	// FirestoreCredentialsFile is an optional service-account JSON file.
	// When empty, application default credentials are used.
	FirestoreCredentialsFile string `envconfig:"FIRESTORE_CREDENTIALS_FILE"`

	// JWTSecret signs and verifies identity tokens. Required.
	JWTSecret string `envconfig:"JWT_SECRET"`

	// TokenTTL is the lifetime of issued identity tokens.
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"1h"`

	// GeminiAPIKey authenticates against the generative text provider. Required.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	WeatherAPIKey string `envconfig:"WEATHER_API_KEY"`
	WeatherAPIURL string `envconfig:"WEATHER_API_URL" default:"https://api.weatherapi.com/v1"`

	TavilyAPIKey string `envconfig:"TAVILY_API_KEY"`
	TavilyAPIURL string `envconfig:"TAVILY_API_URL" default:"https://api.tavily.com"`

	// GoogleAPIKey is used for Places lookups that validate event candidates.
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
	PlacesAPIURL string `envconfig:"PLACES_API_URL" default:"https://maps.googleapis.com/maps/api/place"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg, err := process()
	if err != nil {
		return Config{}, err
	}

	var missing []string
	switch cfg.StoreDriver {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreFirestore:
		if cfg.FirestoreProjectID == "" {
			missing = append(missing, "FIRESTORE_PROJECT_ID")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER: %q", cfg.StoreDriver)
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadPipeline reads the configuration needed to run the planning pipeline
// on its own (no store, no identity provider), as the CLI plan command does.
func LoadPipeline() (Config, error) {
	cfg, err := process()
	if err != nil {
		return Config{}, err
	}
	if cfg.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("required environment variables not set: GEMINI_API_KEY")
	}
	return cfg, nil
}

// process applies envconfig and normalises the values it leaves untouched.
func process() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, nil
}

// trimAll trims each entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
