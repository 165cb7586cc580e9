package models

import "time"

// Deletable marks a row as soft-deleted instead of physically removing it.
// Queries over soft-deletable tables must filter on is_deleted.
type Deletable struct {
	IsDeleted bool       `json:"is_deleted"`
	DeletedOn *time.Time `json:"deleted_on,omitempty"`
}
