package model

import "time"

// Product is a catalog fabric entry. Name and slug are globally unique.
type Product struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Slug           string    `db:"slug" json:"slug"`
	Img            string    `db:"img" json:"img,omitempty"`
	Video          string    `db:"video" json:"video,omitempty"`
	SubstructureID *int64    `db:"substructure_id" json:"substructureId,omitempty"`
	SubsuitableID  *int64    `db:"subsuitable_id" json:"subsuitableId,omitempty"`
	GroupcodeID    *int64    `db:"groupcode_id" json:"groupcodeId,omitempty"`
	Unit           string    `db:"unit" json:"unit,omitempty"`
	Currency       string    `db:"currency" json:"currency,omitempty"`
	GSM            *float64  `db:"gsm" json:"gsm,omitempty"`
	Oz             *float64  `db:"oz" json:"oz,omitempty"`
	Quantity       *int      `db:"quantity" json:"quantity,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateProductParams contains parameters for creating a product.
type CreateProductParams struct {
	Name           string
	Slug           string
	Img            string
	Video          string
	SubstructureID *int64
	SubsuitableID  *int64
	GroupcodeID    *int64
	Unit           string
	Currency       string
	GSM            *float64
	Oz             *float64
	Quantity       *int
}
