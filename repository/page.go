package repository

import "time"

const maxPageLimit = 100

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page/limit the way list endpoints expect: page >= 1,
// 1 <= limit <= 100 (10 when out of range).
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = 10
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// DateRange filters on creation time; nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
