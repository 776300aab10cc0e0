package models

import (
	"time"
)

// Problem identifies an exercise by language track and slug, e.g. ("ruby", "leap").
type Problem struct {
	Language string `json:"language"`
	Slug     string `json:"slug"`
}

// String returns the canonical "language/slug" form.
func (p Problem) String() string {
	return p.Language + "/" + p.Slug
}

// ProblemACL grants a user permission to review submissions of a problem.
type ProblemACL struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_acl_user_problem" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Language  string    `gorm:"not null;size:100;uniqueIndex:idx_acl_user_problem" json:"language"`
	Slug      string    `gorm:"not null;size:255;uniqueIndex:idx_acl_user_problem" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ProblemACL model.
func (ProblemACL) TableName() string {
	return "problem_acls"
}

// Problem returns the grant's problem identifier.
func (a *ProblemACL) Problem() Problem {
	return Problem{Language: a.Language, Slug: a.Slug}
}
