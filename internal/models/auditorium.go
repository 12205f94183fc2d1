package models

import "time"

// Auditorium is a bookable room inside a building.
type Auditorium struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	BuildingID          string    `db:"building_id" json:"building_id"`
	Capacity            int       `db:"capacity" json:"capacity"`
	Department          *string   `db:"department" json:"department,omitempty"`
	HasProjector        bool      `db:"has_projector" json:"has_projector"`
	HasElectronicScreen bool      `db:"has_electronic_screen" json:"has_electronic_screen"`
	Description         *string   `db:"description" json:"description,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// AuditoriumFilter captures filtering options when listing a building's rooms.
type AuditoriumFilter struct {
	Name        string
	Department  string
	MinCapacity int
	Page        int
	PageSize    int
}
