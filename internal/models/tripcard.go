package models

import "time"

// Tripcard is a user-owned, destination-scoped collection of saved
// businesses. Username and the destination's city/state/country are copied
// onto the row at create time; they are snapshots, not live references.
type Tripcard struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	DestinationID uint      `gorm:"not null;index" json:"destination_id"`
	Username      string    `json:"username"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Country       string    `json:"country"`
	CreatedOn     time.Time `json:"created_on"`
	KeepPrivate   bool      `gorm:"default:false" json:"keep_private"`
	HasVisited    bool      `gorm:"default:false" json:"has_visited"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User        User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Destination Destination        `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
	Businesses  []TripcardBusiness `gorm:"foreignKey:TripcardID" json:"tripcard_businesses,omitempty"`
}

// TableName specifies the table name for GORM
func (Tripcard) TableName() string {
	return "tripcards"
}

// TripcardBusiness links a business to a tripcard. The composite unique
// index guarantees a business appears on a tripcard at most once.
type TripcardBusiness struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TripcardID uint      `gorm:"not null;uniqueIndex:idx_tripcard_business" json:"tripcard_id"`
	BusinessID uint      `gorm:"not null;uniqueIndex:idx_tripcard_business" json:"business_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (TripcardBusiness) TableName() string {
	return "tripcard_businesses"
}

// DestinationCount is a top-destinations aggregation row: a destination id
// and the number of tripcards that reference it.
type DestinationCount struct {
	DestinationID uint  `json:"destination_id"`
	TripcardCount int64 `json:"tripcard_count"`
}
