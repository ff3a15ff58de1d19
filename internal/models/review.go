package models

import "time"

// Review is a user's review of a saved business. Username and business name
// are denormalized at create time. A user may review the same business more
// than once; the original behavior allows it and callers rely on it.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessID   uint      `gorm:"not null;index" json:"business_id"`
	BusinessName string    `json:"business_name"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Username     string    `json:"username"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Rating       float64   `gorm:"not null" json:"rating"`
	ImageURL     string    `json:"image_url"`
	CreatedOn    time.Time `json:"created_on"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Review) TableName() string {
	return "reviews"
}
