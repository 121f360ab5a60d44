package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Client=MockClientService

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/client/model"
	"hotel/internal/domains/client/model/dto"
	"hotel/internal/domains/client/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetClient    = constant.CachePrefixClient + ":get"
	cacheGetAllClient = constant.CachePrefixClient + ":gets"
)

type Client interface {
	GetAll(ctx context.Context, params gDto.QueryParams) ([]dto.ClientResponse, error)
	Get(ctx context.Context, id int64) (dto.ClientResponse, error)
	Exists(ctx context.Context, id *int64) (bool, error)
	Create(ctx context.Context, req dto.ClientRequest) (dto.ClientResponse, error)
	Update(ctx context.Context, req dto.ClientRequest) (dto.ClientResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Client {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res []dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllClient, params, gDto.FilterGroup{})

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for clients")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get clients")

		return nil, fmt.Errorf("failed to get clients: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save clients to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetClient, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for client")

		return res, nil
	}

	client, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get client")

		return res, fmt.Errorf("failed to get client: %w", err)
	}

	if client.ID == 0 {
		return res, failure.NotFoundf("client %d not found", id) // nolint:wrapcheck
	}

	res.FromModel(client)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save client to cache")
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
		log.Error().Err(err).Int64("id", *id).Msg("failed to check if client exists")

		return false, fmt.Errorf("failed to check if client exists: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.ClientRequest) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID != nil {
		exist, err := s.Exists(ctx, req.ID)
		if err != nil {
			return res, err
		}

		if exist {
			return res, failure.BadRequestFromString(fmt.Sprintf("client %d already exists", *req.ID)) // nolint:wrapcheck
		}

		return res, failure.BadRequestFromString("a new client must be sent without an id") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	client := req.ToModel(user)

	client.ID, err = s.repo.Insert(ctx, client)
	if err != nil {
		log.Error().Err(err).Msg("failed to create client")

		return res, fmt.Errorf("failed to create client: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(client)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.ClientRequest) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID == nil {
		return res, failure.BadRequestFromString("a valid id is required to update a client") // nolint:wrapcheck
	}

	exist, err := s.Exists(ctx, req.ID)
	if err != nil {
		return res, err
	}

	if !exist {
		return res, failure.BadRequestFromString(fmt.Sprintf("client %d to update does not exist", *req.ID)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(*req.ID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, req.ToUpdateFields(user), filter); err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to update client")

		return res, fmt.Errorf("failed to update client: %w", err)
	}

	s.invalidate(ctx)

	client, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", *req.ID).Msg("failed to reload client")

		return res, fmt.Errorf("failed to reload client: %w", err)
	}

	res.FromModel(client)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	result, err := s.repo.DeleteIfUnreferenced(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete client")

		if failure.IsFailure(err) {
			return err
		}

		return fmt.Errorf("failed to delete client: %w", err)
	}

	if !result.Found {
		return failure.NotFoundf("client %d not found", id) // nolint:wrapcheck
	}

	if result.Dependents > 0 {
		return failure.Conflictf("client %d has %d reservation(s)", id, result.Dependents) // nolint:wrapcheck
	}

	s.invalidate(ctx)

	return nil
}

// invalidate drops client lookups and reservation views embedding a client.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixClient)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixReservation)
	}()
}
