package entity

import (
	"time"
)

// Base carries the storage-assigned identity of a record.
type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
