package model

import "time"

// Country is the top of the geographic taxonomy. Slugs are globally unique.
type Country struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code,omitempty"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// State belongs to a country. Names are unique within their country;
// slugs are globally unique (two "Texas" states under different countries
// share the name but get distinct slugs via the numeric suffix).
type State struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code,omitempty"`
	CountryID *int64    `db:"country_id" json:"countryId,omitempty"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// City belongs to a state and country.
type City struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Pincode   string    `db:"pincode" json:"pincode,omitempty"`
	CountryID *int64    `db:"country_id" json:"countryId,omitempty"`
	StateID   *int64    `db:"state_id" json:"stateId,omitempty"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateCountryParams contains parameters for creating a country.
type CreateCountryParams struct {
	Name string
	Code string
	Slug string
}

// CreateStateParams contains parameters for creating a state.
type CreateStateParams struct {
	Name      string
	Code      string
	CountryID *int64
	Slug      string
}

// CreateCityParams contains parameters for creating a city.
type CreateCityParams struct {
	Name      string
	Pincode   string
	CountryID *int64
	StateID   *int64
	Slug      string
}
