package model

import "time"

// Category groups products in the catalog.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// CategoryPatch enumerates the fields a category update may change.
type CategoryPatch struct {
	Name        *string
	Description *string
}
