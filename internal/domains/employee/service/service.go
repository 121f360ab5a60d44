package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Employee=MockEmployeeService

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/employee/model"
	"hotel/internal/domains/employee/model/dto"
	"hotel/internal/domains/employee/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEmployee    = constant.CachePrefixEmployee + ":get"
	cacheGetAllEmployee = constant.CachePrefixEmployee + ":gets"
)

type Employee interface {
	GetAll(ctx context.Context, params gDto.QueryParams) ([]dto.EmployeeResponse, error)
	Get(ctx context.Context, id int64) (dto.EmployeeResponse, error)
	Exists(ctx context.Context, id *int64) (bool, error)
	Create(ctx context.Context, req dto.EmployeeRequest) (dto.EmployeeResponse, error)
	Update(ctx context.Context, req dto.EmployeeRequest) (dto.EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Employee
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Employee, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Employee {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res []dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEmployee, params, gDto.FilterGroup{})

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for employees")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get employees")

		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save employees to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetEmployee, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for employee")

		return res, nil
	}

	employee, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get employee")

		return res, fmt.Errorf("failed to get employee: %w", err)
	}

	if employee.ID == 0 {
		return res, failure.NotFoundf("employee %d not found", id) // nolint:wrapcheck
	}

	res.FromModel(employee)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save employee to cache")
		}
	}()

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
		log.Error().Err(err).Int64("id", *id).Msg("failed to check if employee exists")

		return false, fmt.Errorf("failed to check if employee exists: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.EmployeeRequest) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		exist, err := s.Exists(ctx, req.ID)
		if err != nil {
			return res, err
		}

		if exist {
			return res, failure.BadRequestFromString(fmt.Sprintf("employee %d already exists", *req.ID)) // nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("a new employee must be sent without an id") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	employee := req.ToModel(user)

	employee.ID, err = s.repo.Insert(ctx, employee)
	if err != nil {
		log.Error().Err(err).Msg("failed to create employee")

		return res, fmt.Errorf("failed to create employee: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(employee)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.EmployeeRequest) (res dto.EmployeeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID == nil {
		return res, failure.BadRequestFromString("a valid id is required to update an employee") // nolint:wrapcheck
	}

	exist, err := s.Exists(ctx, req.ID)
	if err != nil {
		return res, err
	}

	if !exist {
		return res, failure.BadRequestFromString(fmt.Sprintf("employee %d to update does not exist", *req.ID)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(*req.ID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, req.ToUpdateFields(user), filter); err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to update employee")

		return res, fmt.Errorf("failed to update employee: %w", err)
	}

	s.invalidate(ctx)

	employee, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to reload employee")

		return res, fmt.Errorf("failed to reload employee: %w", err)
	}

	res.FromModel(employee)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	result, err := s.repo.DeleteIfUnreferenced(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete employee")

		if failure.IsFailure(err) {
			return err
		}

		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if !result.Found {
		return failure.NotFoundf("employee %d not found", id) // nolint:wrapcheck
	}

	if result.Dependents > 0 {
		return failure.Conflictf("employee %d is assigned to %d service(s)", id, result.Dependents) // nolint:wrapcheck
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixEmployee)
	}()
}
