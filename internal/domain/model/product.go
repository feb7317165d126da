package model

import "time"

// Product is a sellable catalog item. Quantity is the count of units on
// hand; InStock is derived from it and must be recomputed on every change.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	InStock     bool
	CategoryID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch enumerates the fields a product update may change. A nil
// field is left untouched. Patching Quantity recomputes InStock.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int64
	Quantity    *int
}
