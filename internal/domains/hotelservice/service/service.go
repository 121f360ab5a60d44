package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=HotelService=MockHotelServiceService

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	employeeModel "hotel/internal/domains/employee/model"
	employeeRepo "hotel/internal/domains/employee/repository"
	"hotel/internal/domains/hotelservice/model"
	"hotel/internal/domains/hotelservice/model/dto"
	"hotel/internal/domains/hotelservice/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService    = constant.CachePrefixService + ":get"
	cacheGetAllService = constant.CachePrefixService + ":gets"
)

type HotelService interface {
	GetAll(ctx context.Context, params gDto.QueryParams) ([]dto.ServiceResponse, error)
	Get(ctx context.Context, id int64) (dto.ServiceResponse, error)
	Exists(ctx context.Context, id *int64) (bool, error)
	Create(ctx context.Context, req dto.ServiceRequest) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.ServiceRequest) (dto.ServiceResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo         repository.HotelService
	employeeRepo employeeRepo.Employee
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.HotelService, employeeRepo employeeRepo.Employee, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) HotelService {
	return &serviceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res []dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, params, gDto.FilterGroup{})

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return nil, fmt.Errorf("failed to get services: %w", err)
	}

	ids := make([]int64, len(models))
	for i, mod := range models {
		ids[i] = mod.ID
	}

	employeeIDs, err := s.repo.GetEmployeeIDs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service employees")

		return nil, fmt.Errorf("failed to get service employees: %w", err)
	}

	res = dto.FromModels(models, employeeIDs)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	res, err = s.load(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id int64) (res dto.ServiceResponse, err error) {
	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == 0 {
		return res, failure.NotFoundf("service %d not found", id) // nolint:wrapcheck
	}

	employeeIDs, err := s.repo.GetEmployeeIDs(ctx, []int64{id})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get service employees")

		return res, fmt.Errorf("failed to get service employees: %w", err)
	}

	res.FromModel(service, employeeIDs[id])

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
		log.Error().Err(err).Int64("id", *id).Msg("failed to check if service exists")

		return false, fmt.Errorf("failed to check if service exists: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.ServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		exist, err := s.Exists(ctx, req.ID)
		if err != nil {
			return res, err
		}

		if exist {
			return res, failure.BadRequestFromString(fmt.Sprintf("service %d already exists", *req.ID)) // nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("a new service must be sent without an id") // nolint:wrapcheck
	}

	employeeIDs, err := s.resolveEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	service := req.ToModel(user)

	service.ID, err = s.repo.Insert(ctx, service, employeeIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to create service")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(service, employeeIDs)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.ServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID == nil {
		return res, failure.BadRequestFromString("a valid id is required to update a service") // nolint:wrapcheck
	}

	exist, err := s.Exists(ctx, req.ID)
	if err != nil {
		return res, err
	}

	if !exist {
		return res, failure.BadRequestFromString(fmt.Sprintf("service %d to update does not exist", *req.ID)) // nolint:wrapcheck
	}

	employeeIDs, err := s.resolveEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, *req.ID, req.ToUpdateFields(user), employeeIDs); err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to update service")

		if failure.IsFailure(err) {
			return res, err
		}

		return res, fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidate(ctx)

	return s.load(ctx, *req.ID)
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete service")

		if failure.IsFailure(err) {
			return err
		}

		return fmt.Errorf("failed to delete service: %w", err)
	}

	if deleted == 0 {
		return failure.NotFoundf("service %d not found", id) // nolint:wrapcheck
	}

	s.invalidate(ctx)

	return nil
}

// resolveEmployees keeps the ids of stored employees, in request order without duplicates.
// Unknown ids are dropped.
func (s *serviceImpl) resolveEmployees(ctx context.Context, ids []int64) ([]int64, error) {
	requested := dedupe(ids)
	if len(requested) == 0 {
		return []int64{}, nil
	}

	employees, err := s.employeeRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByIDs(requested, employeeModel.FieldID, employeeModel.TableName), employeeModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve service employees")

		return nil, fmt.Errorf("failed to resolve service employees: %w", err)
	}

	known := make([]int64, 0, len(employees))
	for _, employee := range employees {
		known = append(known, employee.ID)
	}

	res := make([]int64, 0, len(requested))
	dropped := []int64{}

	for _, id := range requested {
		if slices.Contains(known, id) {
			res = append(res, id)
		} else {
			dropped = append(dropped, id)
		}
	}

	if len(dropped) > 0 {
		log.Warn().Ints64("employeeIds", dropped).Msg("dropping unknown employees from service")
	}

	return res, nil
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

// invalidate drops service lookups and reservation views embedding a service.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixService)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReservation)
	}()
}
