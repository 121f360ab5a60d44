package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/postgres"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	migrationSource = "file://migrations/postgres"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
	ActionForce   = "force"
)

var ErrUnknownAction = errors.New("unknown migration action")

// MigrationURL is the primary database URL with the migration bookkeeping table appended.
func MigrationURL(cfg *config.Config) string {
	pg := cfg.DB.Postgres
	dsn := postgres.ConnDSN(pg, pg.Write)

	if pg.MigrationTable == "" {
		return dsn
	}

	return dsn + "&x-migrations-table=" + url.QueryEscape(pg.MigrationTable)
}

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, MigrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func ignoreNoChange(err error) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

// Runner applies action to the schema. force takes the version to mark as clean as its argument.
func Runner(cfg *config.Config, action string, args ...string) error {
	mig, err := getConnection(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		if err := ignoreNoChange(mig.Up()); err != nil {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")
	case ActionStepUp:
		if err := ignoreNoChange(mig.Steps(1)); err != nil {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")
	case ActionDown:
		if err := ignoreNoChange(mig.Steps(-1)); err != nil {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")
	case ActionDrop:
		if err := ignoreNoChange(mig.Down()); err != nil {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")
	case ActionVersion:
		version, dirty, err := mig.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", err)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")
	case ActionForce:
		if len(args) == 0 {
			return fmt.Errorf("%s requires a version: %w", ActionForce, ErrUnknownAction)
		}

		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid migration version %q: %w", args[0], err)
		}

		if err := mig.Force(version); err != nil {
			return fmt.Errorf("error forcing migration version: %w", err)
		}

		log.Info().Int("version", version).Msg("Database migration version forced")
	default:
		return fmt.Errorf("%q: %w", action, ErrUnknownAction)
	}

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

// AutoMigrate runs pending migrations at startup when DB_POSTGRES_AUTO_MIGRATE is set.
func AutoMigrate(cfg *config.Config) {
	if !cfg.DB.Postgres.AutoMigrate {
		return
	}

	if err := Up(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
}
