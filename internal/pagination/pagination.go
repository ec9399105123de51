package pagination

import (
	"net/http"
	"net/url"
	"strconv"

	apperrors "blogcms/internal/errors"
)

const (
	// DefaultPageSize is the explore feed page size.
	DefaultPageSize = 9
	// AdminPageSize is the admin console list page size.
	AdminPageSize = 10
	// MaxPageSize caps caller-supplied page sizes.
	MaxPageSize = 100
)

// Params is a validated page request.
type Params struct {
	Page     int
	PageSize int
}

// Parse reads page and page_size from the query string. Missing values fall
// back to page 1 and defaultSize; malformed or out-of-bound values produce
// field-level errors instead of being silently ignored.
func Parse(values url.Values, defaultSize int) (Params, error) {
	p := Params{Page: 1, PageSize: defaultSize}
	ferrs := apperrors.FieldErrors{}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			ferrs.Add("page", "A valid integer is required.")
		case n < 1:
			ferrs.Add("page", "Page numbers start at 1.")
		default:
			p.Page = n
		}
	}

	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			ferrs.Add("page_size", "A valid integer is required.")
		case n < 1:
			ferrs.Add("page_size", "Page size must be at least 1.")
		case n > MaxPageSize:
			ferrs.Add("page_size", "Page size may not exceed "+strconv.Itoa(MaxPageSize)+".")
		default:
			p.PageSize = n
		}
	}

	if len(ferrs) > 0 {
		return Params{}, ferrs
	}
	return p, nil
}

// Offset returns the row offset for the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// totalPages never reports fewer than one page: an empty result set still
// has a valid (empty) first page.
func (p Params) totalPages(total int64) int {
	pages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Check validates the requested page against the total item count.
func (p Params) Check(total int64) error {
	if p.Page > p.totalPages(total) {
		return apperrors.ErrPageOutOfRange
	}
	return nil
}

// Envelope is the paginated response body.
type Envelope struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewEnvelope wraps a page of results with count and next/previous links
// derived from the request URL.
func NewEnvelope(r *http.Request, p Params, total int64, results interface{}) Envelope {
	env := Envelope{Count: total, Results: results}
	if p.Page < p.totalPages(total) {
		env.Next = pageURL(r, p.Page+1)
	}
	if p.Page > 1 {
		env.Previous = pageURL(r, p.Page-1)
	}
	return env
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}
	s := u.String()
	return &s
}
