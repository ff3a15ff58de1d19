package models

import "time"

// Business is a point of interest, sourced from the external directory API or
// created directly. The (external_id, name) pair is unique at the schema
// level; concurrent duplicate creates lose on the constraint rather than on
// an application-level existence check.
type Business struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"uniqueIndex:idx_business_external_name;not null" json:"external_id"`
	Name       string `gorm:"uniqueIndex:idx_business_external_name;not null" json:"name"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `gorm:"index" json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	ZipCode    string `json:"zip_code"`
	Phone      string `json:"phone"`
	URL        string `json:"url"`
	ImageURL   string `json:"image_url"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Rating     float64 `json:"rating"`
	// ExternalReviewCount mirrors the directory-side review count at the time
	// the business was saved.
	ExternalReviewCount int    `json:"external_review_count"`
	SubCategory         string `json:"sub_category"`
	// CategoryName is a point-in-time copy; category renames do not cascade.
	CategoryName  string `json:"category_name"`
	CategoryID    uint   `gorm:"index" json:"category_id"`
	DestinationID uint   `gorm:"index" json:"destination_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:BusinessID" json:"reviews,omitempty"`
}

// TableName specifies the table name for GORM
func (Business) TableName() string {
	return "businesses"
}
