package repository

import (
	"context"
	"errors"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type txStarter interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}

// WithTransaction runs fn inside a transaction, committing when fn returns nil and rolling back otherwise.
func WithTransaction(ctx context.Context, starter txStarter, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := starter.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return constant.Empty
}

// missingParent reads the referenced table from a 23503 detail such as
// `Key (room_id)=(7) is not present in table "rooms".`
func missingParent(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return constant.Empty
	}

	_, table, found := strings.Cut(pqErr.Detail, `table "`)
	if !found {
		return constant.Empty
	}

	table, _, _ = strings.Cut(table, `"`)

	return table
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

// TranslateConstraintError turns constraint violations raised by deletes into Conflict failures with a
// generic message and leaves other errors untouched.
func TranslateConstraintError(err error, entity string) error {
	switch {
	case IsForeignKeyViolation(err):
		return failure.Conflictf("%s is still referenced by other records", entity)
	case IsUniqueViolation(err):
		return failure.Conflictf("%s already exists", entity)
	default:
		return err
	}
}

// TranslateWriteError is TranslateConstraintError for inserts and updates, where a foreign key violation
// means a referenced row disappeared after it was checked.
func TranslateWriteError(err error, entity string) error {
	if !IsForeignKeyViolation(err) {
		return TranslateConstraintError(err, entity)
	}

	if parent := missingParent(err); parent != constant.Empty {
		return failure.NotFoundf("%s referenced by %s not found", parent, entity)
	}

	return failure.NotFoundf("record referenced by %s not found", entity)
}
