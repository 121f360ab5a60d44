package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/hotelservice/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type HotelService interface {
	Insert(ctx context.Context, service model.Service, employeeIDs []int64) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, id int64, req map[string]any, employeeIDs []int64) error
	Delete(ctx context.Context, id int64) (int64, error)
	GetEmployeeIDs(ctx context.Context, serviceIDs []int64) (map[int64][]int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Service]
	links gRepo.Repository[model.ServiceEmployee]
}

func New(db *postgres.Connection, otel otel.Otel) HotelService {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.ServiceEmployee](model.EmployeeLinkEntityName, model.EmployeeLinkTable, "", db, otel),
	}
}

// Insert stores the service and its employee links in one transaction.
func (r *repositoryImpl) Insert(ctx context.Context, service model.Service, employeeIDs []int64) (id int64, err error) {
	err = gRepo.WithTransaction(ctx, r, func(tx *sqlx.Tx) error {
		id, err = r.InsertTx(ctx, tx, service)
		if err != nil {
			return err
		}

		return r.links.InsertBulkTx(ctx, tx, model.NewEmployeeLinks(id, employeeIDs))
	})
	if err != nil {
		return 0, gRepo.TranslateWriteError(err, model.EntityName)
	}

	return id, nil
}

// Update rewrites the service columns and replaces its employee links.
func (r *repositoryImpl) Update(ctx context.Context, id int64, req map[string]any, employeeIDs []int64) error {
	err := gRepo.WithTransaction(ctx, r, func(tx *sqlx.Tx) error {
		if err := r.UpdateTx(ctx, tx, req, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		linkFilter := shared.FilterByID(id, model.FieldLinkServiceID, model.EmployeeLinkTable)
		if _, err := r.links.DeleteTx(ctx, tx, linkFilter); err != nil {
			return err
		}

		return r.links.InsertBulkTx(ctx, tx, model.NewEmployeeLinks(id, employeeIDs))
	})
	if err != nil {
		return gRepo.TranslateWriteError(err, model.EntityName)
	}

	return nil
}

// Delete removes the service with its employee links and reports how many services were deleted.
// A reservation still listing the service surfaces as a Conflict.
func (r *repositoryImpl) Delete(ctx context.Context, id int64) (deleted int64, err error) {
	err = gRepo.WithTransaction(ctx, r, func(tx *sqlx.Tx) error {
		linkFilter := shared.FilterByID(id, model.FieldLinkServiceID, model.EmployeeLinkTable)
		if _, err := r.links.DeleteTx(ctx, tx, linkFilter); err != nil {
			return err
		}

		deleted, err = r.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))

		return err
	})
	if err != nil {
		return 0, gRepo.TranslateConstraintError(err, model.EntityName)
	}

	return deleted, nil
}

// GetEmployeeIDs loads the employee ids linked to each of serviceIDs.
func (r *repositoryImpl) GetEmployeeIDs(ctx context.Context, serviceIDs []int64) (map[int64][]int64, error) {
	res := make(map[int64][]int64, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return res, nil
	}

	links, err := r.links.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(serviceIDs, model.FieldLinkServiceID, model.EmployeeLinkTable))
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		res[link.ServiceID] = append(res[link.ServiceID], link.EmployeeID)
	}

	return res, nil
}
