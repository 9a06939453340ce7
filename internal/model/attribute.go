package model

import "time"

// Product taxonomy attributes. Structure/Suitablefor are top-level lookup
// tables; Substructure/Subsuitable reference their parent; Groupcode carries
// optional media URLs.

type Structure struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type Substructure struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	StructureID int64     `db:"structure_id" json:"structureId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type Suitablefor struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type Subsuitable struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	SuitableforID int64     `db:"suitablefor_id" json:"suitableforId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

type Groupcode struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Img       string    `db:"img" json:"img,omitempty"`
	Video     string    `db:"video" json:"video,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
