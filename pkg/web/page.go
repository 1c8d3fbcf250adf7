package web

import (
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
)

// PageQuery binds the limit and offset query parameters of list endpoints.
type PageQuery struct {
	Limit  *int64 `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int64  `form:"offset" binding:"min=0"`
}

// Page returns the requested window, defaulting the limit.
func (q PageQuery) Page() domain.Page {
	p := domain.Page{
		Limit:  domain.DefaultLimit,
		Offset: uint64(q.Offset),
	}

	if q.Limit != nil {
		p.Limit = uint64(*q.Limit)
	}

	return p
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a date that already passed the datetime=2006-01-02 binding.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateRangeQuery binds the inclusive start_date and end_date query parameters.
type DateRangeQuery struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
}

// DateRange returns the bounds; zero bounds are open.
func (q DateRangeQuery) DateRange() domain.DateRange {
	return domain.DateRange{From: q.StartDate, To: q.EndDate}
}
