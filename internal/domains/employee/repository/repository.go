package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/employee/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Employee interface {
	Insert(ctx context.Context, employee model.Employee) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Employee, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Employee, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteIfUnreferenced(ctx context.Context, id int64) (gRepo.DeleteResult, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Employee]
}

func New(db *postgres.Connection, otel otel.Otel) Employee {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Employee](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// DeleteIfUnreferenced removes the employee unless a service still lists it.
func (r *repositoryImpl) DeleteIfUnreferenced(ctx context.Context, id int64) (gRepo.DeleteResult, error) {
	return r.DeleteUnreferenced(ctx, id, gRepo.Reference{
		Table:  model.ReferencedByTable,
		Column: model.ReferencedByColumn,
	})
}
