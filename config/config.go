// Package config loads the service settings from the environment, after merging an optional .env file.
// Variable names are the section prefix joined to the field tag, e.g. DB_POSTGRES_WRITE_HOST.
package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envDevelopment = "development"

type ServerConfig struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type CORSConfig struct {
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	Enable           bool     `envconfig:"ENABLE"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
}

type AppConfig struct {
	Name        string     `envconfig:"NAME"     default:"hotel"`
	Timezone    string     `envconfig:"TIMEZONE" default:"UTC"`
	CORS        CORSConfig `envconfig:"CORS"`
	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
	} `envconfig:"RATE_LIMITER"`
	Auth struct {
		Enable bool `envconfig:"ENABLE"`
	} `envconfig:"AUTH"`
	APIKey string `envconfig:"API_KEY"`
}

// ReservationConfig tunes the pricing workflow.
type ReservationConfig struct {
	// RequirePositiveStay rejects reservations whose end date is not after the start date.
	RequirePositiveStay bool `envconfig:"REQUIRE_POSITIVE_STAY"`
}

type RedisConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type CacheConfig struct {
	Redis struct {
		Primary RedisConfig `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	// TTL is in seconds.
	TTL int `envconfig:"TTL" default:"300"`
}

type JWTConfig struct {
	AccessSecret    string `envconfig:"ACCESS_SECRET"`
	AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"15"`
	Issuer          string `envconfig:"ISSUER"`
}

// PostgresConn is one endpoint of the database, either the primary or the read replica.
type PostgresConn struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type PostgresConfig struct {
	MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
	RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string       `envconfig:"MIGRATION_TABLE"`
	AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
	Prefix         string       `envconfig:"PREFIX"`
	Read           PostgresConn `envconfig:"READ"`
	Write          PostgresConn `envconfig:"WRITE"`
}

// DatabaseName is the configured name of conn with the shared prefix applied.
func (p PostgresConfig) DatabaseName(conn PostgresConn) string {
	return p.Prefix + conn.Name
}

type KafkaConfig struct {
	Enable        bool     `envconfig:"ENABLE"`
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topic struct {
		Reservation string `envconfig:"RESERVATION" default:"hotel.reservations"`
	} `envconfig:"TOPIC"`
}

type S3Config struct {
	Enable          bool   `envconfig:"ENABLE"`
	APIEndpoint     string `envconfig:"API_ENDPOINT"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	BucketName      string `envconfig:"BUCKET_NAME"`
	PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
}

type Config struct {
	Server      ServerConfig      `envconfig:"SERVER"`
	App         AppConfig         `envconfig:"APP"`
	Reservation ReservationConfig `envconfig:"RESERVATION"`
	Cache       CacheConfig       `envconfig:"CACHE"`
	JWT         JWTConfig         `envconfig:"JWT"`
	DB          struct {
		Postgres PostgresConfig `envconfig:"POSTGRES"`
	} `envconfig:"DB"`
	Kafka    KafkaConfig `envconfig:"KAFKA"`
	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 S3Config `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// IsDevelopment reports whether the service runs locally, which shortens shutdown and keeps console logs.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == envDevelopment
}

var (
	conf   Config
	once   sync.Once
	loaded bool
)

// Init reads the environment once. A missing .env file is reported but not fatal.
func Init() error {
	var dotenvErr error

	once.Do(func() {
		if dotenvErr = godotenv.Load(".env"); dotenvErr != nil {
			log.Warn().Err(dotenvErr).Msg("Could not load .env file, continuing with existing environment variables")
		}

		if err := envconfig.Process("", &conf); err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		loaded = true

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized")
	})

	if dotenvErr != nil {
		return fmt.Errorf("loading .env file: %w", dotenvErr)
	}

	return nil
}

func Get() *Config {
	if !loaded {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
