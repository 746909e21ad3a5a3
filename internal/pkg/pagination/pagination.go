// Package pagination is the single place raw page/skip/limit query values
// are coerced to integers; handlers never parse these themselves.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

const DefaultLimit = 10

var ErrInvalidParam = errors.New("invalid pagination parameter")

type Params struct {
	Page  int
	Skip  int
	Limit int
}

// Parse coerces the raw query values once. get returns the raw string for
// a key ("" when absent). pageSize is honored as an alias for limit when
// limit itself is absent.
func Parse(get func(key string) string) (Params, error) {
	limit, err := parseIntDefault(get("limit"), DefaultLimit)
	if err != nil || limit <= 0 {
		return Params{}, ErrInvalidParam
	}
	if strings.TrimSpace(get("limit")) == "" {
		if ps, psErr := parseIntDefault(get("pageSize"), limit); psErr == nil && ps > 0 {
			limit = ps
		} else if psErr != nil {
			return Params{}, ErrInvalidParam
		}
	}

	skip, err := parseIntDefault(get("skip"), 0)
	if err != nil || skip < 0 {
		return Params{}, ErrInvalidParam
	}

	page, err := parseIntDefault(get("page"), 0)
	if err != nil || page < 0 {
		return Params{}, ErrInvalidParam
	}
	if page == 0 {
		page = skip/limit + 1
	}

	return Params{Page: page, Skip: skip, Limit: limit}, nil
}

type Meta struct {
	MatchingResults int `json:"matchingResults"`
	TotalPages      int `json:"totalPages"`
	CurrentPage     int `json:"currentPage"`
	PageSize        int `json:"pageSize"`
	ReturnedResults int `json:"returnedResults"`
}

// Meta computes the response metadata block for a page that actually
// returned `returned` records out of `matching` total matches.
func (p Params) Meta(matching, returned int) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (matching + p.Limit - 1) / p.Limit
	}
	return Meta{
		MatchingResults: matching,
		TotalPages:      totalPages,
		CurrentPage:     p.Page,
		PageSize:        p.Limit,
		ReturnedResults: returned,
	}
}

func parseIntDefault(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidParam
	}
	return v, nil
}
