package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection holds the read replica and the primary used for writes and transactions.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	conn := &Connection{
		Read:  Connect("read", pg, pg.Read),
		Write: Connect("write", pg, pg.Write),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Msg("Failed to establish database connections")
	}

	return conn
}

func (c *Connection) Close() error {
	var errs []error

	if c.Read != nil {
		errs = append(errs, c.Read.Close())
	}

	if c.Write != nil && c.Write != c.Read {
		errs = append(errs, c.Write.Close())
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close database connections: %w", err)
	}

	return nil
}

// DSN builds a postgres connection URL.
func DSN(username, password, host, port, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     dbName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return dsn.String()
}

// ConnDSN is the DSN of one configured endpoint, with the database prefix applied.
func ConnDSN(pg config.PostgresConfig, conn config.PostgresConn) string {
	return DSN(conn.Username, conn.Password, conn.Host, conn.Port, pg.DatabaseName(conn), conn.SSLMode)
}

// Connect opens conn, trying up to pg.MaxRetry times. It returns nil when every attempt failed.
func Connect(name string, pg config.PostgresConfig, conn config.PostgresConn) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", conn.Host).
		Str("port", conn.Port).
		Str("dbName", pg.DatabaseName(conn)).
		Logger()

	for attempt := 1; attempt <= max(pg.MaxRetry, 1); attempt++ {
		sqlDB, err := sqlx.Connect("postgres", ConnDSN(pg, conn))
		if err == nil {
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	return nil
}
