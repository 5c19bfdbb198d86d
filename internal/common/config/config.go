package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
)

type Config struct {
	HTTPPort         string
	DatabaseURL      string
	SecretKey        string
	BcryptWorkFactor int
	TokenTTL         time.Duration
	RequestTimeout   time.Duration
	MaxRequestSize   int64
	DBMaxConns       int32
	RunMigrations    bool
	LogDir           string
	LogLevel         string
}

// UsesDatabase is false when DATABASE_URL is empty; the server then keeps
// users and messages in memory.
func (c Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// LoadConfig reads the process environment after merging the given dotenv
// files (".env" when none are passed). Missing dotenv files are ignored and
// never override variables that are already set.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	secret, err := mustEnv("SECRET_KEY")
	if err != nil {
		return Config{}, err
	}
	if err := validateJWTSecret(secret); err != nil {
		return Config{}, err
	}

	workFactor := getIntEnv("BCRYPT_WORK_FACTOR", constants.DefaultBcryptWorkFactor)
	if workFactor < constants.MinBcryptWorkFactor || workFactor > constants.MaxBcryptWorkFactor {
		return Config{}, commonerrors.ErrInvalidConfig.WithMessage(
			fmt.Sprintf("BCRYPT_WORK_FACTOR must be between %d and %d, got %d",
				constants.MinBcryptWorkFactor, constants.MaxBcryptWorkFactor, workFactor),
		)
	}

	maxRequestSize := getIntEnv("MAX_REQUEST_SIZE", constants.DefaultMaxRequestSize)
	if maxRequestSize <= 0 {
		return Config{}, commonerrors.ErrInvalidConfig.WithMessage("MAX_REQUEST_SIZE must be positive")
	}

	tokenTTL := getDurationEnv("TOKEN_TTL", 0)
	if tokenTTL < 0 {
		return Config{}, commonerrors.ErrInvalidConfig.WithMessage("TOKEN_TTL must not be negative")
	}

	return Config{
		HTTPPort:         getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SecretKey:        secret,
		BcryptWorkFactor: workFactor,
		TokenTTL:         tokenTTL,
		RequestTimeout:   getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		MaxRequestSize:   int64(maxRequestSize),
		DBMaxConns:       int32(getIntEnv("DB_MAX_CONNS", constants.DBPoolMaxOpenConns)),
		RunMigrations:    getBoolEnv("RUN_MIGRATIONS", true),
		LogDir:           getEnv("LOG_DIR", ""),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(errors.New(key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
