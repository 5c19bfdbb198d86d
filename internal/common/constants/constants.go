package constants

import "time"

const (
	UsernameMaxLength  = 64
	PasswordMaxLength  = 72
	NameMaxLength      = 100
	PhoneMaxLength     = 32
	MaxMessageLength   = 4000
	JWTSecretMinLength = 32

	DefaultBcryptWorkFactor = 12
	MinBcryptWorkFactor     = 4
	MaxBcryptWorkFactor     = 31

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	CircuitBreakerThreshold    = 5
	CircuitBreakerResetAfter   = 30 * time.Second
	CircuitBreakerDatabaseName = "database"

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerWriteGrace        = 5 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
