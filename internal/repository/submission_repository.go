package repository

import (
	"context"
	"fmt"

	"github.com/dkestel/practice-hub/internal/models"
)

// SubmissionRepository handles submissions and their review comments.
type SubmissionRepository struct {
	db *DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create stores a submission. When it is the author's latest iteration for
// the problem, any previous latest row for the same author and problem is
// demoted first so at most one latest iteration exists per author.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.Latest {
		err := r.db.WithContext(ctx).
			Model(&models.Submission{}).
			Where("user_id = ? AND language = ? AND slug = ? AND latest = ?",
				submission.UserID, submission.Language, submission.Slug, true).
			Update("latest", false).Error
		if err != nil {
			return fmt.Errorf("failed to demote previous latest submission: %w", err)
		}
	}
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// LatestForProblem returns every author's most recent submission for the
// problem, excluding the given author, in creation order. Superseded
// iterations are not returned.
func (r *SubmissionRepository) LatestForProblem(ctx context.Context, problem models.Problem, excludeUserID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("language = ? AND slug = ? AND latest = ? AND user_id <> ?",
			problem.Language, problem.Slug, true, excludeUserID).
		Order("created_at, id").
		Preload("User").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest submissions for %s: %w", problem, err)
	}
	return submissions, nil
}

// HasCommentFrom reports whether the user has already commented on the submission.
func (r *SubmissionRepository) HasCommentFrom(ctx context.Context, submissionID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("submission_id = ? AND user_id = ?", submissionID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check comments on submission %d: %w", submissionID, err)
	}
	return count > 0, nil
}

// CreateComment stores review feedback on a submission.
func (r *SubmissionRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
