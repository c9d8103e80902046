// Package pagination turns raw listing parameters into bounded page windows,
// safe ORDER BY fragments and the page-link metadata returned to clients.
//
// Nothing in here talks to the store: every function is a pure transformation
// of its inputs, which keeps the listing contract testable without a database.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100

	DefaultSortBy  = "created_at"
	DefaultSortDir = "desc"

	// maxPage keeps the offset arithmetic inside int range for absurd inputs.
	maxPage = math.MaxInt32
)

// Query parameter names understood by list endpoints.
const (
	ParamPage    = "page"
	ParamPerPage = "per_page"
	ParamSearch  = "search"
	ParamSortBy  = "sort_by"
	ParamSortDir = "sort_dir"
)

// Params is a sanitized page window.
type Params struct {
	Page    int
	PerPage int
	Offset  int
}

// Request carries the raw listing input of a single call.
type Request struct {
	Page     float64
	PerPage  float64
	Search   string
	SortBy   string
	SortDir  string
	BasePath string
	Query    url.Values
}

// Sanitize clamps page and perPage to safe bounds. Malformed values are
// normalized, never rejected: a non-finite or sub-1 page becomes 1, a
// non-finite perPage becomes DefaultPerPage and perPage is kept in [1, MaxPerPage].
func Sanitize(page, perPage float64) Params {
	p := float64(DefaultPage)
	if isFinite(page) && page >= 1 {
		p = math.Min(page, maxPage)
	}

	pp := float64(DefaultPerPage)
	if isFinite(perPage) {
		pp = perPage
	}
	pp = math.Max(1, math.Min(MaxPerPage, pp))

	params := Params{
		Page:    int(math.Trunc(p)),
		PerPage: int(math.Trunc(pp)),
	}
	params.Offset = (params.Page - 1) * params.PerPage
	return params
}

// ParseNumber parses a query value, returning NaN when it is not a number.
func ParseNumber(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// FromQuery extracts a listing request from query parameters. Missing or
// empty page values fall back to the defaults; everything else is passed
// through for Sanitize and ResolveSortField to normalize.
func FromQuery(basePath string, query url.Values) Request {
	req := Request{
		Page:     DefaultPage,
		PerPage:  DefaultPerPage,
		Search:   strings.TrimSpace(query.Get(ParamSearch)),
		SortBy:   query.Get(ParamSortBy),
		SortDir:  query.Get(ParamSortDir),
		BasePath: basePath,
		Query:    query,
	}
	if raw := query.Get(ParamPage); raw != "" {
		req.Page = ParseNumber(raw)
	}
	if raw := query.Get(ParamPerPage); raw != "" {
		req.PerPage = ParseNumber(raw)
	}
	if req.SortBy == "" {
		req.SortBy = DefaultSortBy
	}
	if req.SortDir == "" {
		req.SortDir = DefaultSortDir
	}
	return req
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
