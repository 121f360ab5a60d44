package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	clientModel "hotel/internal/domains/client/model"
	clientDto "hotel/internal/domains/client/model/dto"
	clientRepo "hotel/internal/domains/client/repository"
	serviceModel "hotel/internal/domains/hotelservice/model"
	serviceDto "hotel/internal/domains/hotelservice/model/dto"
	serviceRepo "hotel/internal/domains/hotelservice/repository"
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = constant.CachePrefixReservation + ":get"
	cacheGetAllReservation = constant.CachePrefixReservation + ":gets"
)

type Reservation interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ReservationFilter) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	Exists(ctx context.Context, id *int64) (bool, error)
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Save(ctx context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo        repository.Reservation
	roomRepo    roomRepo.Room
	clientRepo  clientRepo.Client
	serviceRepo serviceRepo.HotelService
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	clientRepo clientRepo.Client,
	serviceRepo serviceRepo.HotelService,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// quote is a priced stay together with the records it was priced from.
type quote struct {
	room     roomModel.Room
	client   clientModel.Client
	services []serviceModel.Service
	stay     dto.Stay
	nights   int
	total    float64
}

func (q quote) serviceIDs() []int64 {
	ids := make([]int64, len(q.services))
	for i, service := range q.services {
		ids[i] = service.ID
	}

	return ids
}

func (q quote) toModel(state, user string) model.Reservation {
	return model.Reservation{
		StartDate:  q.stay.Start,
		EndDate:    q.stay.End,
		Nights:     q.nights,
		TotalPrice: q.total,
		RoomID:     q.room.ID,
		ClientID:   q.client.ID,
		State:      state,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

func (q quote) toUpdateFields(state, user string) map[string]any {
	return map[string]any{
		model.FieldStartDate:     q.stay.Start,
		model.FieldEndDate:       q.stay.End,
		model.FieldNights:        q.nights,
		model.FieldTotalPrice:    q.total,
		model.FieldRoomID:        q.room.ID,
		model.FieldClientID:      q.client.ID,
		model.FieldState:         state,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ReservationFilter) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filterGroup := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filterGroup)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	res, err = s.toResponses(ctx, models)
	if err != nil {
		return nil, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	res, err = s.load(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return res, failure.NotFoundf("reservation %d not found", id) // nolint:wrapcheck
	}

	responses, err := s.toResponses(ctx, []model.Reservation{reservation})
	if err != nil {
		return res, err
	}

	return responses[0], nil
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
		log.Error().Err(err).Int64("id", *id).Msg("failed to check if reservation exists")

		return false, fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	return exist, nil
}

// Create books a room for a client: it resolves the room, the client and the services, prices the
// stay and stores it as PENDING. Nothing is written when any of those steps fails.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	q, err := s.price(ctx, req.StartDate, req.EndDate, req.RoomID, req.ClientID, req.ServiceIDs)
	if err != nil {
		return res, err
	}

	return s.insert(ctx, q, constant.ReservationStatePending)
}

// Save stores a reservation sent in full. Its price is derived the same way Create does.
func (s *serviceImpl) Save(ctx context.Context, req dto.ReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		exist, err := s.Exists(ctx, req.ID)
		if err != nil {
			return res, err
		}

		if exist {
			return res, failure.BadRequestFromString(fmt.Sprintf("reservation %d already exists", *req.ID)) // nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("a new reservation must be sent without an id") // nolint:wrapcheck
	}

	q, err := s.price(ctx, req.StartDate, req.EndDate, req.RoomID, req.ClientID, req.ServiceIDs)
	if err != nil {
		return res, err
	}

	return s.insert(ctx, q, stateOrDefault(req.State))
}

func (s *serviceImpl) Update(ctx context.Context, req dto.ReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID == nil {
		return res, failure.BadRequestFromString("a valid id is required to update a reservation") // nolint:wrapcheck
	}

	exist, err := s.Exists(ctx, req.ID)
	if err != nil {
		return res, err
	}

	if !exist {
		return res, failure.BadRequestFromString(fmt.Sprintf("reservation %d to update does not exist", *req.ID)) // nolint:wrapcheck
	}

	q, err := s.price(ctx, req.StartDate, req.EndDate, req.RoomID, req.ClientID, req.ServiceIDs)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, *req.ID, q.toUpdateFields(stateOrDefault(req.State), user), q.serviceIDs()); err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to update reservation")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	s.invalidate(ctx)

	res, err = s.load(ctx, *req.ID)
	if err != nil {
		return res, err
	}

	s.publish(ctx, constant.EventReservationUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	result, err := s.repo.DeleteIfUnreferenced(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		if failure.IsFailure(err) {
			return err
		}

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	if !result.Found {
		return failure.NotFoundf("reservation %d not found", id) // nolint:wrapcheck
	}

	if result.Dependents > 0 {
		return failure.Conflictf("reservation %d has %d invoice(s)", id, result.Dependents) // nolint:wrapcheck
	}

	s.invalidate(ctx)
	s.publish(ctx, constant.EventReservationDeleted, dto.ReservationResponse{ID: id})

	return nil
}

func (s *serviceImpl) insert(ctx context.Context, q quote, state string) (res dto.ReservationResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	reservation := q.toModel(state, user)

	reservation.ID, err = s.repo.Insert(ctx, reservation, q.serviceIDs())
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.invalidate(ctx)

	services, err := s.describeServices(ctx, q.services)
	if err != nil {
		return res, err
	}

	room := roomDto.RoomResponse{}
	room.FromModel(q.room)

	client := clientDto.ClientResponse{}
	client.FromModel(q.client)

	res.FromModel(reservation)
	res.Room = &room
	res.Client = &client
	res.WithServices(services)

	s.publish(ctx, constant.EventReservationCreated, res)

	return res, nil
}

// price resolves the room, the client and the services of a stay and computes nights and total.
func (s *serviceImpl) price(ctx context.Context, startDate, endDate string, roomID, clientID int64, serviceIDs []int64) (q quote, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".price")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	q.room, err = s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("roomId", roomID).Msg("failed to get room")

		return q, fmt.Errorf("failed to get room: %w", err)
	}

	if q.room.ID == 0 {
		return q, failure.NotFoundf("room %d not found", roomID) // nolint:wrapcheck
	}

	q.client, err = s.clientRepo.Get(ctx, shared.FilterByID(clientID, clientModel.FieldID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("clientId", clientID).Msg("failed to get client")

		return q, fmt.Errorf("failed to get client: %w", err)
	}

	if q.client.ID == 0 {
		return q, failure.NotFoundf("client %d not found", clientID) // nolint:wrapcheck
	}

	q.services, err = s.resolveServices(ctx, serviceIDs)
	if err != nil {
		return q, err
	}

	q.stay, err = dto.ParseStay(startDate, endDate)
	if err != nil {
		return q, err
	}

	q.nights = model.Nights(q.stay.Start, q.stay.End)
	if s.cfg.Reservation.RequirePositiveStay && q.nights <= 0 {
		return q, failure.BadRequestFromString("endDate must be after startDate") // nolint:wrapcheck
	}

	servicePrices := make([]float64, len(q.services))
	for i, service := range q.services {
		servicePrices[i] = service.Price
	}

	q.total = model.Total(q.nights, q.room.Price, servicePrices...)

	scope.SetAttribute("reservation.nights", int64(q.nights))
	scope.SetAttribute("reservation.total", q.total)

	return q, nil
}

// resolveServices loads the services with the given ids in request order. Unknown ids are dropped.
func (s *serviceImpl) resolveServices(ctx context.Context, ids []int64) ([]serviceModel.Service, error) {
	requested := dedupe(ids)
	if len(requested) == 0 {
		return []serviceModel.Service{}, nil
	}

	services, err := s.serviceRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(requested, serviceModel.FieldID, serviceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve reservation services")

		return nil, fmt.Errorf("failed to resolve reservation services: %w", err)
	}

	byID := make(map[int64]serviceModel.Service, len(services))
	for _, service := range services {
		byID[service.ID] = service
	}

	res := make([]serviceModel.Service, 0, len(requested))
	dropped := []int64{}

	for _, id := range requested {
		if service, ok := byID[id]; ok {
			res = append(res, service)
		} else {
			dropped = append(dropped, id)
		}
	}

	if len(dropped) > 0 {
		log.Warn().Ints64("serviceIds", dropped).Msg("dropping unknown services from reservation")
	}

	return res, nil
}

func (s *serviceImpl) describeServices(ctx context.Context, services []serviceModel.Service) ([]serviceDto.ServiceResponse, error) {
	ids := make([]int64, len(services))
	for i, service := range services {
		ids[i] = service.ID
	}

	employeeIDs, err := s.serviceRepo.GetEmployeeIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service employees")

		return nil, fmt.Errorf("failed to get service employees: %w", err)
	}

	return serviceDto.FromModels(services, employeeIDs), nil
}

// toResponses attaches room, client and services to each reservation with one query per relation.
func (s *serviceImpl) toResponses(ctx context.Context, models []model.Reservation) ([]dto.ReservationResponse, error) {
	res := make([]dto.ReservationResponse, len(models))
	if len(models) == 0 {
		return res, nil
	}

	reservationIDs := make([]int64, 0, len(models))
	roomIDs := make([]int64, 0, len(models))
	clientIDs := make([]int64, 0, len(models))

	for _, mod := range models {
		reservationIDs = append(reservationIDs, mod.ID)
		roomIDs = append(roomIDs, mod.RoomID)
		clientIDs = append(clientIDs, mod.ClientID)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(dedupe(roomIDs), roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation rooms")

		return nil, fmt.Errorf("failed to get reservation rooms: %w", err)
	}

	clients, err := s.clientRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(dedupe(clientIDs), clientModel.FieldID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation clients")

		return nil, fmt.Errorf("failed to get reservation clients: %w", err)
	}

	serviceIDs, err := s.repo.GetServiceIDs(ctx, reservationIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation services")

		return nil, fmt.Errorf("failed to get reservation services: %w", err)
	}

	allServiceIDs := []int64{}
	for _, ids := range serviceIDs {
		allServiceIDs = append(allServiceIDs, ids...)
	}

	services, err := s.resolveServices(ctx, allServiceIDs)
	if err != nil {
		return nil, err
	}

	described, err := s.describeServices(ctx, services)
	if err != nil {
		return nil, err
	}

	roomByID := make(map[int64]roomDto.RoomResponse, len(rooms))
	for _, room := range rooms {
		var r roomDto.RoomResponse
		r.FromModel(room)
		roomByID[room.ID] = r
	}

	clientByID := make(map[int64]clientDto.ClientResponse, len(clients))
	for _, client := range clients {
		var c clientDto.ClientResponse
		c.FromModel(client)
		clientByID[client.ID] = c
	}

	serviceByID := make(map[int64]serviceDto.ServiceResponse, len(described))
	for _, service := range described {
		serviceByID[service.ID] = service
	}

	for i, mod := range models {
		res[i].FromModel(mod)

		if room, ok := roomByID[mod.RoomID]; ok {
			res[i].Room = &room
		}

		if client, ok := clientByID[mod.ClientID]; ok {
			res[i].Client = &client
		}

		booked := make([]serviceDto.ServiceResponse, 0, len(serviceIDs[mod.ID]))
		for _, id := range serviceIDs[mod.ID] {
			if service, ok := serviceByID[id]; ok {
				booked = append(booked, service)
			}
		}

		res[i].WithServices(booked)
	}

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, event string, reservation dto.ReservationResponse) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   strconv.FormatInt(reservation.ID, 10),
			Value: dto.NewReservationEvent(event, reservation),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Reservation, message); err != nil {
			log.Error().Err(err).Str("event", event).Int64("id", reservation.ID).Msg("failed to publish reservation event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReservation)
	}()
}

func stateOrDefault(state string) string {
	if state == "" {
		return constant.ReservationStatePending
	}

	return state
}

func dedupe(ids []int64) []int64 {
	res := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(res, id) {
			res = append(res, id)
		}
	}

	return res
}
