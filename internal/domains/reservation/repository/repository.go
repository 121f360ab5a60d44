package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/reservation/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	Insert(ctx context.Context, reservation model.Reservation, serviceIDs []int64) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, id int64, req map[string]any, serviceIDs []int64) error
	DeleteIfUnreferenced(ctx context.Context, id int64) (gRepo.DeleteResult, error)
	GetServiceIDs(ctx context.Context, reservationIDs []int64) (map[int64][]int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	links gRepo.Repository[model.ReservationService]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.ReservationService](model.ServiceLinkEntityName, model.ServiceLinkTable, "", db, otel),
	}
}

// Insert stores the reservation and its service links in one transaction.
func (r *repositoryImpl) Insert(ctx context.Context, reservation model.Reservation, serviceIDs []int64) (id int64, err error) {
	err = gRepo.WithTransaction(ctx, r, func(tx *sqlx.Tx) error {
		id, err = r.InsertTx(ctx, tx, reservation)
		if err != nil {
			return err
		}

		return r.links.InsertBulkTx(ctx, tx, model.NewServiceLinks(id, serviceIDs))
	})
	if err != nil {
		return 0, gRepo.TranslateWriteError(err, model.EntityName)
	}

	return id, nil
}

// Update rewrites the reservation columns and replaces its service links.
func (r *repositoryImpl) Update(ctx context.Context, id int64, req map[string]any, serviceIDs []int64) error {
	err := gRepo.WithTransaction(ctx, r, func(tx *sqlx.Tx) error {
		if err := r.UpdateTx(ctx, tx, req, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		linkFilter := shared.FilterByID(id, model.FieldLinkReservationID, model.ServiceLinkTable)
		if _, err := r.links.DeleteTx(ctx, tx, linkFilter); err != nil {
			return err
		}

		return r.links.InsertBulkTx(ctx, tx, model.NewServiceLinks(id, serviceIDs))
	})
	if err != nil {
		return gRepo.TranslateWriteError(err, model.EntityName)
	}

	return nil
}

// DeleteIfUnreferenced removes the reservation unless an invoice was issued for it.
// Service links go with it.
func (r *repositoryImpl) DeleteIfUnreferenced(ctx context.Context, id int64) (gRepo.DeleteResult, error) {
	return r.DeleteUnreferenced(ctx, id, gRepo.Reference{
		Table:  model.ReferencedByTable,
		Column: model.ReferencedByColumn,
	})
}

// GetServiceIDs loads the service ids booked with each of reservationIDs.
func (r *repositoryImpl) GetServiceIDs(ctx context.Context, reservationIDs []int64) (map[int64][]int64, error) {
	res := make(map[int64][]int64, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return res, nil
	}

	filter := shared.FilterByIDs(reservationIDs, model.FieldLinkReservationID, model.ServiceLinkTable)

	links, err := r.links.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		res[link.ReservationID] = append(res[link.ReservationID], link.ServiceID)
	}

	return res, nil
}
