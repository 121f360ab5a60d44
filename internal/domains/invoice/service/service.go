package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Invoice=MockInvoiceService

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/s3"
	serviceModel "hotel/internal/domains/hotelservice/model"
	serviceRepo "hotel/internal/domains/hotelservice/repository"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/repository"
	reservationModel "hotel/internal/domains/reservation/model"
	reservationRepo "hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetInvoice              = constant.CachePrefixInvoice + ":get"
	cacheGetAllInvoice           = constant.CachePrefixInvoice + ":gets"
	cacheGetInvoiceByReservation = constant.CachePrefixInvoice + ":reservation"
)

type Invoice interface {
	GetAll(ctx context.Context, params gDto.QueryParams) ([]dto.InvoiceResponse, error)
	Get(ctx context.Context, id int64) (dto.InvoiceResponse, error)
	GetByReservation(ctx context.Context, reservationID int64) (dto.InvoiceResponse, error)
	Exists(ctx context.Context, id *int64) (bool, error)
	Create(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error)
	Update(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error)
	Generate(ctx context.Context, reservationID int64) (dto.InvoiceResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo            repository.Invoice
	reservationRepo reservationRepo.Reservation
	roomRepo        roomRepo.Room
	serviceRepo     serviceRepo.HotelService
	s3              s3.S3
	kafka           kafka.Client
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Invoice,
	reservationRepo reservationRepo.Reservation,
	roomRepo roomRepo.Room,
	serviceRepo serviceRepo.HotelService,
	s3 s3.S3,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		serviceRepo:     serviceRepo,
		s3:              s3,
		kafka:           kafka,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res []dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInvoice, params, gDto.FilterGroup{})

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoices")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}

	res = dto.FromModels(models)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetInvoice, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoice")

		return res, nil
	}

	invoice, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if invoice.ID == 0 {
		return res, failure.NotFoundf("invoice %d not found", id) // nolint:wrapcheck
	}

	res.FromModel(invoice)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetByReservation(ctx context.Context, reservationID int64) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetInvoiceByReservation, reservationID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation invoice")

		return res, nil
	}

	invoice, err := s.repo.Get(ctx, shared.FilterByID(reservationID, model.FieldReservationID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("reservationId", reservationID).Msg("failed to get reservation invoice")

		return res, fmt.Errorf("failed to get reservation invoice: %w", err)
	}

	if invoice.ID == 0 {
		return res, failure.NotFoundf("reservation %d has no invoice", reservationID) // nolint:wrapcheck
	}

	res.FromModel(invoice)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Exists(ctx context.Context, id *int64) (exist bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if id == nil {
		return false, nil
	}

	exist, err = s.repo.Exist(ctx, shared.FilterByID(*id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", *id).Msg("failed to check if invoice exists")

		return false, fmt.Errorf("failed to check if invoice exists: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.InvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		exist, err := s.Exists(ctx, req.ID)
		if err != nil {
			return res, err
		}

		if exist {
			return res, failure.BadRequestFromString(fmt.Sprintf("invoice %d already exists", *req.ID)) // nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("a new invoice must be sent without an id") // nolint:wrapcheck
	}

	if _, err = s.reservation(ctx, req.ReservationID); err != nil {
		return res, err
	}

	if err = s.ensureNotInvoiced(ctx, req.ReservationID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	invoice := req.ToModel(user)

	invoice.ID, err = s.repo.Insert(ctx, invoice)
	if err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(invoice)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.InvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID == nil {
		return res, failure.BadRequestFromString("a valid id is required to update an invoice") // nolint:wrapcheck
	}

	exist, err := s.Exists(ctx, req.ID)
	if err != nil {
		return res, err
	}

	if !exist {
		return res, failure.BadRequestFromString(fmt.Sprintf("invoice %d to update does not exist", *req.ID)) // nolint:wrapcheck
	}

	if _, err = s.reservation(ctx, req.ReservationID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(*req.ID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, req.ToUpdateFields(user), filter); err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to update invoice")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.invalidate(ctx)

	invoice, err := s.load(ctx, *req.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(invoice)

	return res, nil
}

// Generate bills a reservation: the invoice carries the reservation total and a summary of what was booked.
func (s *serviceImpl) Generate(ctx context.Context, reservationID int64) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Generate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.reservation(ctx, reservationID)
	if err != nil {
		return res, err
	}

	if err = s.ensureNotInvoiced(ctx, reservationID); err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(reservation.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("roomId", reservation.RoomID).Msg("failed to get invoiced room")

		return res, fmt.Errorf("failed to get invoiced room: %w", err)
	}

	services, err := s.bookedServices(ctx, reservationID)
	if err != nil {
		return res, err
	}

	names := make([]string, len(services))
	for i, service := range services {
		names[i] = service.Name
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	invoice := model.Invoice{
		ReservationID: reservationID,
		Total:         reservation.TotalPrice,
		Details:       model.Summary(room.Number, reservation.Nights, names),
		Metadata:      gModel.NewMetadata(user, now),
	}

	invoice.ID, err = s.repo.Insert(ctx, invoice)
	if err != nil {
		log.Error().Err(err).Int64("reservationId", reservationID).Msg("failed to generate invoice")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to generate invoice: %w", err)
	}

	if s.s3.Enabled() {
		document := newDocument(invoice, reservation, room, services, now)
		invoice.DocumentURL = s.archive(ctx, document)
	}

	s.invalidate(ctx)

	res.FromModel(invoice)

	s.publish(ctx, res, now)

	return res, nil
}

// Delete removes the invoice and its archived document. A failed object removal is only logged.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	invoice, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if invoice.ID == 0 {
		return failure.NotFoundf("invoice %d not found", id) // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete invoice")

		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if deleted == 0 {
		return failure.NotFoundf("invoice %d not found", id) // nolint:wrapcheck
	}

	if invoice.DocumentURL != "" && s.s3.Enabled() {
		objectName := s.s3.GetObjectNameFromURL(constant.Empty, invoice.DocumentURL)
		if objectName != "" {
			if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
				log.Error().Err(err).Str("object", objectName).Msg("failed to delete archived invoice")
			}
		}
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id int64) (model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get invoice")

		return invoice, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

func (s *serviceImpl) reservation(ctx context.Context, id int64) (reservationModel.Reservation, error) {
	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(id, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("reservationId", id).Msg("failed to get reservation to invoice")

		return reservation, fmt.Errorf("failed to get reservation to invoice: %w", err)
	}

	if reservation.ID == 0 {
		return reservation, failure.NotFoundf("reservation %d not found", id) // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) ensureNotInvoiced(ctx context.Context, reservationID int64) error {
	invoiced, err := s.repo.Exist(ctx, shared.FilterByID(reservationID, model.FieldReservationID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("reservationId", reservationID).Msg("failed to check reservation invoice")

		return fmt.Errorf("failed to check reservation invoice: %w", err)
	}

	if invoiced {
		return failure.Conflictf("reservation %d is already invoiced", reservationID) // nolint:wrapcheck
	}

	return nil
}

// bookedServices returns the services of the reservation ordered by id.
func (s *serviceImpl) bookedServices(ctx context.Context, reservationID int64) ([]serviceModel.Service, error) {
	links, err := s.reservationRepo.GetServiceIDs(ctx, []int64{reservationID})
	if err != nil {
		log.Error().Err(err).Int64("reservationId", reservationID).Msg("failed to get booked services")

		return nil, fmt.Errorf("failed to get booked services: %w", err)
	}

	ids := links[reservationID]
	if len(ids) == 0 {
		return []serviceModel.Service{}, nil
	}

	params := gDto.QueryParams{SortBy: serviceModel.FieldID, SortDir: constant.DefaultValueSortDir}

	services, err := s.serviceRepo.GetAll(ctx, params, shared.FilterByIDs(ids, serviceModel.FieldID, serviceModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("reservationId", reservationID).Msg("failed to get booked services")

		return nil, fmt.Errorf("failed to get booked services: %w", err)
	}

	return services, nil
}

// archive uploads the invoice document and records its URL. It returns an empty URL when either step fails.
func (s *serviceImpl) archive(ctx context.Context, document dto.Document) string {
	body, err := json.Marshal(document)
	if err != nil {
		log.Error().Err(err).Int64("id", document.InvoiceID).Msg("failed to encode invoice document")

		return constant.Empty
	}

	fileName := fmt.Sprintf("%d-%s.json", document.InvoiceID, uuid.NewString())

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, model.DocumentDirectory, fileName, constant.ContentTypeJSON, body)
	if err != nil {
		log.Error().Err(err).Int64("id", document.InvoiceID).Msg("failed to archive invoice document")

		return constant.Empty
	}

	filter := shared.FilterByID(document.InvoiceID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, map[string]any{model.FieldDocumentURL: url}, filter); err != nil {
		log.Error().Err(err).Int64("id", document.InvoiceID).Msg("failed to store invoice document url")

		return constant.Empty
	}

	return url
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save invoice to cache")
		}
	}()
}

func (s *serviceImpl) publish(ctx context.Context, invoice dto.InvoiceResponse, at time.Time) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   strconv.FormatInt(invoice.ID, 10),
			Value: dto.NewInvoiceEvent(constant.EventInvoiceGenerated, invoice, at),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Reservation, message); err != nil {
			log.Error().Err(err).Int64("id", invoice.ID).Msg("failed to publish invoice event")
		}
	}()
}

// invalidate drops invoice lookups. Reservation views do not embed invoices.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixInvoice)
	}()
}

func newDocument(
	invoice model.Invoice,
	reservation reservationModel.Reservation,
	room roomModel.Room,
	services []serviceModel.Service,
	issuedAt time.Time,
) dto.Document {
	lines := make([]dto.DocumentLine, len(services))
	for i, service := range services {
		lines[i] = dto.DocumentLine{
			Name:   service.Name,
			Price:  service.Price,
			Amount: service.Price * float64(reservation.Nights),
		}
	}

	return dto.Document{
		InvoiceID:     invoice.ID,
		ReservationID: reservation.ID,
		ClientID:      reservation.ClientID,
		RoomNumber:    room.Number,
		RoomPrice:     room.Price,
		StartDate:     reservation.StartDate.String(),
		EndDate:       reservation.EndDate.String(),
		Nights:        reservation.Nights,
		Services:      lines,
		Total:         invoice.Total,
		IssuedAt:      timezone.Format(issuedAt, constant.DateFormat),
	}
}
