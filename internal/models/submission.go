package models

import (
	"time"
)

// Submission is one iteration of a user's solution to a problem. Only the
// most recent iteration per author and problem carries Latest=true; older
// iterations stay in the table but are never queued for review on their own.
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Language  string    `gorm:"not null;size:100;index:idx_submissions_problem" json:"language"`
	Slug      string    `gorm:"not null;size:255;index:idx_submissions_problem" json:"slug"`
	Latest    bool      `gorm:"not null;default:false;index" json:"latest"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Comments []Comment `gorm:"foreignKey:SubmissionID" json:"comments,omitempty"`
}

// TableName specifies the table name for Submission model.
func (Submission) TableName() string {
	return "submissions"
}

// Problem returns the submission's problem identifier.
func (s *Submission) Problem() Problem {
	return Problem{Language: s.Language, Slug: s.Slug}
}

// Comment is review feedback left on a submission by another user.
type Comment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubmissionID uint       `gorm:"not null;index" json:"submission_id"`
	Submission   Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Body         string     `gorm:"type:text" json:"body"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for Comment model.
func (Comment) TableName() string {
	return "comments"
}
