package models

import "time"

// Destination is a city a traveler can build tripcards for.
type Destination struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	City      string    `gorm:"not null;index" json:"city"`
	State     string    `gorm:"not null" json:"state"`
	Country   string    `gorm:"not null" json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Businesses []Business `gorm:"foreignKey:DestinationID" json:"businesses,omitempty"`
}

// TableName specifies the table name for GORM
func (Destination) TableName() string {
	return "destinations"
}
