package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dkestel/practice-hub/internal/models"
)

// UserRepository handles user-related database operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database
// transaction. Any error returned by fn rolls the whole transaction back.
func (r *UserRepository) Transaction(fn func(tx *UserRepository) error) error {
	return r.db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepository{db: &DB{tx}})
	})
}

// Create creates a new user. The public key token is assigned by the model's
// BeforeCreate hook when not set.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByGithubID retrieves the user linked to a GitHub account.
func (r *UserRepository) FindByGithubID(ctx context.Context, githubID int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("github_id = ?", githubID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by github_id %d: %w", githubID, err)
	}
	return &user, nil
}

// FindByUsernameCI retrieves a user by case-insensitive username match.
// Cleared (empty) usernames never match.
func (r *UserRepository) FindByUsernameCI(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ? AND username <> ''", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// FindByUsernamesCI retrieves the users whose usernames match any of the
// given names case-insensitively, ordered by username. Names with no match
// are simply absent from the result.
func (r *UserRepository) FindByUsernamesCI(ctx context.Context, usernames []string) ([]models.User, error) {
	lowered := make([]string, len(usernames))
	for i, name := range usernames {
		lowered[i] = strings.ToLower(name)
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) IN ? AND username <> ''", lowered).
		Order("username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users by usernames: %w", err)
	}
	return users, nil
}

// FindOrCreateByUsernames returns one user per given name, creating any that
// do not exist yet. Matching is case-insensitive; creation keeps the
// caller's casing.
func (r *UserRepository) FindOrCreateByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	users := make([]models.User, 0, len(usernames))
	err := r.Transaction(func(tx *UserRepository) error {
		for _, name := range usernames {
			user, err := tx.FindByUsernameCI(ctx, name)
			if err == nil {
				users = append(users, *user)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			username := name
			created := models.User{Username: &username}
			if err := tx.Create(ctx, &created); err != nil {
				return err
			}
			users = append(users, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists all fields of the user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// ClearUsername empties a user's username, the terminal state for a username
// collision victim. The username becomes "" rather than NULL so the account
// remains observably "had a username once".
func (r *UserRepository) ClearUsername(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("username", "").Error
	if err != nil {
		return fmt.Errorf("failed to clear username for user %d: %w", userID, err)
	}
	return nil
}

// Delete removes a user and every dependent record in one transaction:
// memberships held, invitations sent, review grants, the daily counter,
// comments written, and submissions authored.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	err := r.Transaction(func(tx *UserRepository) error {
		db := tx.db.WithContext(ctx)

		if err := db.Where("user_id = ? OR inviter_id = ?", id, id).Delete(&models.TeamMembership{}).Error; err != nil {
			return err
		}
		if err := db.Where("user_id = ?", id).Delete(&models.ProblemACL{}).Error; err != nil {
			return err
		}
		if err := db.Where("user_id = ?", id).Delete(&models.DailyCount{}).Error; err != nil {
			return err
		}
		if err := db.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := db.Where("submission_id IN (?)",
			tx.db.Model(&models.Submission{}).Select("id").Where("user_id = ?", id),
		).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := db.Where("user_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}

		return db.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
