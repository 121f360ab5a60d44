package helper_test

import (
	"hotel/config"
	"hotel/helper"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Username = "hotel"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "hotel"

	t.Run("default table", func(t *testing.T) {
		assert.Equal(t, "postgres://hotel:secret@db:5432/hotel?sslmode=disable", helper.MigrationURL(cfg))
	})

	t.Run("prefixed database and custom table", func(t *testing.T) {
		prefixed := *cfg
		prefixed.DB.Postgres.Prefix = "test_"
		prefixed.DB.Postgres.MigrationTable = "schema_migrations"

		assert.Equal(t,
			"postgres://hotel:secret@db:5432/test_hotel?sslmode=disable&x-migrations-table=schema_migrations",
			helper.MigrationURL(&prefixed),
		)
	})
}
