package models

import (
	"time"
)

// DailyCount tracks how many reviews a user has performed against the
// five-a-day allowance. Exactly one row exists per user, created lazily on
// the first increment.
//
// The counter is a single monotonically-increasing total: no day-boundary
// reset is applied here. If a reset schedule is ever introduced it belongs
// in the storage key (a day-scoped row), not in the read path.
type DailyCount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Total     int       `gorm:"not null;default:0" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for DailyCount model.
func (DailyCount) TableName() string {
	return "daily_counts"
}
