package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/weekendsync/availability-api/internal/domain"
)

// ServerConfig configures the API process.
//
// These values are deployment-provided.
type ServerConfig struct {
	Port string

	// StorageBackend selects the slot repository: "memory" or "postgres".
	StorageBackend string
	DatabaseURL    string

	// AuthMode selects the auth middleware: "dev" (X-Debug-User header) or
	// "token" (static bearer token map).
	AuthMode string
	// DevUser is the fallback user for dev auth when the header is absent.
	DevUser domain.UserID
	// Tokens maps bearer token to user ID, parsed from API_TOKENS
	// ("token:user,token2:user2").
	Tokens map[string]domain.UserID

	ShutdownTimeout time.Duration
}

func LoadServerConfigFromEnv() (ServerConfig, error) {
	cfg := ServerConfig{
		Port:            "8080",
		StorageBackend:  "memory",
		AuthMode:        "dev",
		ShutdownTimeout: 10 * time.Second,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.StorageBackend = v
	}
	switch cfg.StorageBackend {
	case "memory":
	case "postgres":
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return ServerConfig{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return ServerConfig{}, fmt.Errorf("STORAGE_BACKEND must be memory or postgres, got %q", cfg.StorageBackend)
	}

	if v := os.Getenv("AUTH_MODE"); v != "" {
		cfg.AuthMode = v
	}
	switch cfg.AuthMode {
	case "dev":
		cfg.DevUser = domain.UserID(os.Getenv("DEV_USER"))
	case "token":
		tokens, err := parseTokens(os.Getenv("API_TOKENS"))
		if err != nil {
			return ServerConfig{}, err
		}
		cfg.Tokens = tokens
	default:
		return ServerConfig{}, fmt.Errorf("AUTH_MODE must be dev or token, got %q", cfg.AuthMode)
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func parseTokens(raw string) (map[string]domain.UserID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("AUTH_MODE=token requires API_TOKENS (token:user,token2:user2)")
	}
	out := make(map[string]domain.UserID)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(token) == "" || strings.TrimSpace(user) == "" {
			return nil, fmt.Errorf("API_TOKENS entry %q must be token:user", pair)
		}
		out[strings.TrimSpace(token)] = domain.UserID(strings.TrimSpace(user))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("API_TOKENS contained no token:user pairs")
	}
	return out, nil
}
