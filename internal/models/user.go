// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered traveler. Rows are removed with hard deletes;
// the original account lifecycle has no soft-delete state.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tripcards []Tripcard `gorm:"foreignKey:UserID" json:"tripcards,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
