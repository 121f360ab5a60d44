package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/invoice/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Invoice interface {
	Insert(ctx context.Context, invoice model.Invoice) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Insert stores the invoice. A second invoice for the same reservation is a conflict.
func (r *repositoryImpl) Insert(ctx context.Context, invoice model.Invoice) (int64, error) {
	id, err := r.Repository.Insert(ctx, invoice)
	if err != nil {
		return 0, gRepo.TranslateWriteError(err, model.EntityName)
	}

	return id, nil
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	if err := r.Repository.Update(ctx, req, filter); err != nil {
		return gRepo.TranslateWriteError(err, model.EntityName)
	}

	return nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	return r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}
