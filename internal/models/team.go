package models

import (
	"time"
)

// Team is a named group of learners. Team management lives outside this
// service; the models exist so that account deletion can honor the
// cascade-delete contract over memberships.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	Creator   User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Team model.
func (Team) TableName() string {
	return "teams"
}

// TeamMembership records a user's (possibly unconfirmed) membership in a
// team, along with who invited them.
type TeamMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_membership_team_user" json:"team_id"`
	Team      Team      `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_membership_team_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	InviterID uint      `gorm:"not null;index" json:"inviter_id"`
	Inviter   User      `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Confirmed bool      `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for TeamMembership model.
func (TeamMembership) TableName() string {
	return "team_memberships"
}
