package domain

import (
	"strings"
	"time"
)

// Record holds the bookkeeping fields shared by every soft-deletable entity.
// A record is live while DeletedAt is nil.
type Record struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

func (r *Record) Meta() *Record {
	return r
}

// containsNul reports whether value holds a character PostgreSQL text columns
// cannot store.
func containsNul(value string) bool {
	return strings.ContainsRune(value, 0)
}
