package repository

import (
	"context"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
)

// Reference names a table column pointing at the primary key of a repository table.
type Reference struct {
	Table  string
	Column string
}

// DeleteResult describes the outcome of a guarded delete.
type DeleteResult struct {
	Found      bool
	Deleted    bool
	Dependents int
}

func (repo *Repository[T]) primaryFilter(id any) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    repo.primaryColumn,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    repo.table,
			},
		},
	}
}

// CountReferencesTx counts the rows of ref pointing at id.
func (repo *Repository[T]) CountReferencesTx(ctx context.Context, sqltx *sqlx.Tx, ref Reference, id any) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("CountReferencesTx"))
	defer scope.End()

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", ref.Table, ref.Column)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := sqltx.GetContext(ctx, &count, query, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count references (%s.%s): %w", ref.Table, ref.Column, err)
	}

	return count, nil
}

// DeleteUnreferenced deletes the row with the given primary key when no row of ref points at it.
// The row is locked for the duration of the check so a concurrent insert of a dependent waits.
// Constraint violations are translated into Conflict failures.
func (repo *Repository[T]) DeleteUnreferenced(ctx context.Context, id any, ref Reference) (res DeleteResult, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("DeleteUnreferenced"))
	defer scope.End()

	filter := repo.primaryFilter(id)

	err = WithTransaction(ctx, repo, func(tx *sqlx.Tx) error {
		found, err := repo.LockTx(ctx, tx, filter)
		if err != nil || !found {
			return err
		}

		res.Found = true

		dependents, err := repo.CountReferencesTx(ctx, tx, ref, id)
		if err != nil {
			return err
		}

		if dependents > 0 {
			res.Dependents = dependents

			return nil
		}

		deleted, err := repo.DeleteTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		res.Deleted = deleted > 0

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return DeleteResult{}, TranslateConstraintError(err, repo.entitas)
	}

	return res, nil
}
