package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/client/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Client interface {
	Insert(ctx context.Context, client model.Client) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Client, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Client, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteIfUnreferenced(ctx context.Context, id int64) (gRepo.DeleteResult, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
}

func New(db *postgres.Connection, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// DeleteIfUnreferenced removes the client unless a reservation still points at it.
func (r *repositoryImpl) DeleteIfUnreferenced(ctx context.Context, id int64) (gRepo.DeleteResult, error) {
	return r.DeleteUnreferenced(ctx, id, gRepo.Reference{
		Table:  model.ReferencedByTable,
		Column: model.ReferencedByColumn,
	})
}
