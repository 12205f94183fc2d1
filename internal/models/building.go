package models

import "time"

// Building represents a campus building that hosts auditoriums.
type Building struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BuildingFilter captures filtering options for listing buildings.
type BuildingFilter struct {
	Name     string
	Address  string
	Page     int
	PageSize int
}
