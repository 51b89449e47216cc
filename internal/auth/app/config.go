package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
)

type Config struct {
	SecretKey  string // Required unless SecretFile is set: HS256 signing secret
	SecretFile string // Optional: file holding the signing secret

	Issuer           string        // Optional: issuer claim for tokens (default: gatekeeper)
	AccessTTL        time.Duration // Optional: access token lifetime (default: 15m)
	HashAlgorithm    string        // Optional: argon2id or bcrypt (default: argon2id)
	BcryptCost       int           // Optional: bcrypt cost when HashAlgorithm is bcrypt (default: 12)
	PepperFile       string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	RolesFile        string        // Optional: YAML role table, built-in roles when empty
	DatabaseFile     string        // Optional: path to SQLite database file (default: ./gatekeeper.db)
	DirectoryTimeout time.Duration // Optional: per-request directory timeout (default: 3s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SecretKey:           os.Getenv("AUTH_SECRET_KEY"),
		SecretFile:          os.Getenv("AUTH_SECRET_FILE"),
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "gatekeeper"),
		AccessTTL:           getEnvDurationOrDefault("AUTH_ACCESS_TTL", 15*time.Minute),
		HashAlgorithm:       getEnvOrDefault("AUTH_HASH_ALGORITHM", cryptox.AlgorithmArgon2id),
		BcryptCost:          getEnvIntOrDefault("AUTH_BCRYPT_COST", cryptox.DefaultBcryptCost),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		RolesFile:           os.Getenv("AUTH_ROLES_FILE"),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "gatekeeper.db"),
		DirectoryTimeout:    getEnvDurationOrDefault("AUTH_DIRECTORY_TIMEOUT", 3*time.Second),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports every configuration problem at once. The signing secret
// itself is checked when it is loaded.
func (c Config) Validate() error {
	var errs []error

	if c.SecretKey != "" && c.SecretFile != "" {
		errs = append(errs, errors.New("set only one of AUTH_SECRET_KEY and AUTH_SECRET_FILE"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_ACCESS_TTL must be positive, got %s", c.AccessTTL))
	}
	switch strings.ToLower(c.HashAlgorithm) {
	case cryptox.AlgorithmArgon2id, cryptox.AlgorithmBcrypt:
	default:
		errs = append(errs, fmt.Errorf("AUTH_HASH_ALGORITHM %q is not one of argon2id, bcrypt", c.HashAlgorithm))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("AUTH_DATABASE_FILE must not be empty"))
	}
	if c.DirectoryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_DIRECTORY_TIMEOUT must be positive, got %s", c.DirectoryTimeout))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
