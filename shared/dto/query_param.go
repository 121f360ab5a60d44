package dto

import (
	"hotel/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams are the paging and ordering options accepted by every listing endpoint.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sortBy"   validate:"omitempty"`
	SortDir string `json:"sortDir"  validate:"omitempty,oneof=ASC DESC"`
}

func positiveInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}

	return n
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string, ignoring malformed values.
// With withDefaults, a missing page or limit falls back to the first page of DefaultValueLimit rows.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	query := r.URL.Query()

	if page := positiveInt(query.Get(constant.RequestParamPage)); page > 0 {
		q.Page = page
	}

	if limit := positiveInt(query.Get(constant.RequestParamLimit)); limit > 0 {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := strings.TrimSpace(query.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Pagination returns the LIMIT/OFFSET clause for q and binds its arguments into args.
// A zero limit means no paging.
func (q QueryParams) Pagination(args map[string]any) string {
	if q.Limit <= 0 {
		return ""
	}

	args["limit"] = q.Limit

	if q.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = (q.Page - 1) * q.Limit

	return "LIMIT :limit OFFSET :offset"
}
