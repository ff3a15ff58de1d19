package models

import "time"

// Follow is a directed follow edge between two users. The composite unique
// index rejects duplicate edges at the schema level; self-follows are
// rejected in the service layer before the insert is attempted.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followed_id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`

	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
