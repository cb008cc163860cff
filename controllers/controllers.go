package controllers

import (
	"net/http"
	"strconv"
)

const defaultPageSize = 10
const maxPageSize = 100

// pagination holds the page window requested by the client. DynamoDB has no
// offsets, so services fetch up to Fetch() rows and the controller keeps the
// last page of the result.
type pagination struct {
	Page  int
	Limit int
}

func parsePagination(r *http.Request) pagination {
	p := pagination{Page: 1, Limit: defaultPageSize}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			p.Limit = parsed
		}
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			p.Page = parsed
		}
	}
	return p
}

// Fetch is how many rows storage must return to cover this page.
func (p pagination) Fetch() int32 {
	return int32(p.Page * p.Limit)
}

// Window slices a fetched result down to the requested page.
func pageOf[T any](rows []T, p pagination) []T {
	start := (p.Page - 1) * p.Limit
	if start >= len(rows) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
