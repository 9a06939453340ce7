package model

import "time"

// Role is a role-registry entry authorizing an email for admin login and
// carrying its permission fields.
type Role struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Filter    string    `db:"filter" json:"filter"`
	Product   string    `db:"product" json:"product"`
	Seo       string    `db:"seo" json:"seo"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
