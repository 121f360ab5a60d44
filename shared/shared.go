package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseID reads a path or query identifier. Anything but a positive base 10 integer is a bad request.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 1 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid id %q", value)) // nolint:wrapcheck
	}

	return id, nil
}

// FilterByID matches rows whose fieldID equals id.
func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

// FilterByIDs matches any of ids. An empty list yields a filter that matches nothing.
func FilterByIDs[T any](ids []T, fieldID, table string) dto.FilterGroup {
	filter := dto.Filter{Field: fieldID, Value: ids, Operator: dto.FilterOperatorIn, Table: table}
	if len(ids) == 0 {
		filter = dto.Filter{Operator: dto.FilterOperatorNone}
	}

	return dto.FilterGroup{Filters: []any{filter}}
}

func BuildCacheKey(prefix string, id any) string {
	return fmt.Sprintf("%s:%v", prefix, id)
}

// BuildCacheKeyWithQuery derives a stable key from the paging parameters and the filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	encodedArgs, err := json.Marshal(args)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to encode cache key arguments")
	}

	return fmt.Sprintf("%s:%d:%d:%s:%s:%s:%s", prefix, params.Page, params.Limit, params.SortBy, params.SortDir, where, encodedArgs)
}

// InvalidateCaches removes every key under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
