package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/dkestel/practice-hub/internal/models"
)

// ACLRepository handles review-authorization grants.
type ACLRepository struct {
	db *DB
}

// NewACLRepository creates a new ACL repository.
func NewACLRepository(db *DB) *ACLRepository {
	return &ACLRepository{db: db}
}

// Authorize grants the user permission to review submissions of the problem.
// Granting an already-held permission is a no-op.
func (r *ACLRepository) Authorize(ctx context.Context, userID uint, problem models.Problem) error {
	grant := models.ProblemACL{
		UserID:   userID,
		Language: problem.Language,
		Slug:     problem.Slug,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&grant).Error
	if err != nil {
		return fmt.Errorf("failed to authorize user %d for %s: %w", userID, problem, err)
	}
	return nil
}

// AuthorizedProblems returns the problems the user may review, in grant order.
func (r *ACLRepository) AuthorizedProblems(ctx context.Context, userID uint) ([]models.Problem, error) {
	var grants []models.ProblemACL
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get authorized problems for user %d: %w", userID, err)
	}

	problems := make([]models.Problem, len(grants))
	for i := range grants {
		problems[i] = grants[i].Problem()
	}
	return problems, nil
}
