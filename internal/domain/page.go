package domain

import "time"

// Pagination bounds shared by all list operations.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page selects a window of a list.
type Page struct {
	Limit  uint64
	Offset uint64
}

// DateRange is an inclusive date interval; zero bounds are open.
type DateRange struct {
	From time.Time
	To   time.Time
}
