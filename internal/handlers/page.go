package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"devblog/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parsePageRequest reads page, size and sort query parameters.
// Page numbers are 0-based; size is clamped to 1..100. The sort parameter
// uses the "field,direction" form (e.g. "title,asc"); a missing or
// unparseable sort yields nil, which the store treats as creation time
// descending.
func parsePageRequest(r *http.Request) (page, size int, sort *store.Sort) {
	q := r.URL.Query()

	page, _ = strconv.Atoi(q.Get("page"))
	if page < 0 {
		page = 0
	}

	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size, parseSort(q.Get("sort"))
}

// parseSort parses "field" or "field,asc|desc". Unknown directions
// default to descending.
func parseSort(raw string) *store.Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	field, dir, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	return &store.Sort{
		Field:     field,
		Ascending: strings.EqualFold(strings.TrimSpace(dir), "asc"),
	}
}
