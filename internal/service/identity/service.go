// Package identity reconciles external-login assertions with local accounts.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dkestel/practice-hub/internal/metrics"
	"github.com/dkestel/practice-hub/internal/models"
	"github.com/dkestel/practice-hub/internal/repository"
	"github.com/dkestel/practice-hub/pkg/logger"
)

// Assertion is the identity claim produced by a completed external login.
// Nil fields were not supplied by the provider and leave the corresponding
// account field untouched.
type Assertion struct {
	GithubID  int64
	Username  *string
	Email     *string
	AvatarURL *string
}

// UserStore is the account persistence surface the service needs.
type UserStore interface {
	Transaction(fn func(tx UserStore) error) error
	FindByGithubID(ctx context.Context, githubID int64) (*models.User, error)
	FindByUsernameCI(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ClearUsername(ctx context.Context, userID uint) error
}

// Service merges login assertions into account state.
type Service struct {
	users UserStore
	log   *logger.Logger
}

// NewService creates a new identity service.
func NewService(users *repository.UserRepository, log *logger.Logger) *Service {
	return &Service{users: userStoreAdapter{users}, log: log}
}

// NewServiceWithInterfaces creates a new identity service with interfaces (for testing).
func NewServiceWithInterfaces(users UserStore, log *logger.Logger) *Service {
	return &Service{users: users, log: log}
}

// userStoreAdapter rebinds the repository's transaction callback to the
// UserStore shape so transactional calls go through the same interface.
type userStoreAdapter struct {
	*repository.UserRepository
}

func (a userStoreAdapter) Transaction(fn func(tx UserStore) error) error {
	return a.UserRepository.Transaction(func(tx *repository.UserRepository) error {
		return fn(userStoreAdapter{tx})
	})
}

// ReconcileGithub finds or creates the account for the assertion and merges
// its fields under the precedence rules:
//
//   - target resolution: by github_id, else by case-insensitive username
//     (claiming an invited account), else a fresh account
//   - username: assigned to the target; any other current holder has theirs
//     cleared to "" inside the same transaction
//   - email: set only while the target has none (sticky)
//   - avatar: query fragment stripped, then always overwritten
//
// A uniqueness violation means a concurrent reconciliation won the race for
// the username or github_id; the merge is re-read and retried once before
// the error is surfaced.
func (s *Service) ReconcileGithub(ctx context.Context, assertion Assertion) (*models.User, error) {
	targetID, outcome, err := s.reconcile(ctx, assertion)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		s.log.Warn().
			Int64("github_id", assertion.GithubID).
			Msg("Uniqueness conflict during reconciliation, retrying merge")
		targetID, outcome, err = s.reconcile(ctx, assertion)
	}
	if err != nil {
		metrics.ReconciliationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("failed to reconcile github login %d: %w", assertion.GithubID, err)
	}

	metrics.ReconciliationsTotal.WithLabelValues(outcome).Inc()

	// Reload so the caller sees exactly what was persisted.
	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload reconciled user %d: %w", targetID, err)
	}

	s.log.Info().
		Int64("github_id", assertion.GithubID).
		Uint("user_id", user.ID).
		Str("outcome", outcome).
		Msg("Reconciled external login")

	return user, nil
}

// reconcile runs one resolution-and-merge attempt in a single transaction,
// so a collision victim's cleared username and the target's update are
// durable together or not at all.
func (s *Service) reconcile(ctx context.Context, assertion Assertion) (uint, string, error) {
	var (
		targetID uint
		outcome  string
	)
	err := s.users.Transaction(func(tx UserStore) error {
		target, res, err := s.resolveTarget(ctx, tx, assertion)
		if err != nil {
			return err
		}
		if err := s.merge(ctx, tx, target, assertion); err != nil {
			return err
		}
		targetID = target.ID
		outcome = res
		return nil
	})
	return targetID, outcome, err
}

// resolveTarget picks the account the assertion applies to, claiming an
// invited (username-only) account or creating a new one as needed.
func (s *Service) resolveTarget(ctx context.Context, tx UserStore, assertion Assertion) (*models.User, string, error) {
	target, err := tx.FindByGithubID(ctx, assertion.GithubID)
	if err == nil {
		return target, metrics.OutcomeLinked, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	if assertion.Username != nil && *assertion.Username != "" {
		invited, err := tx.FindByUsernameCI(ctx, *assertion.Username)
		switch {
		case err == nil && invited.GithubID == nil:
			githubID := assertion.GithubID
			invited.GithubID = &githubID
			if err := tx.Update(ctx, invited); err != nil {
				return nil, "", err
			}
			return invited, metrics.OutcomeClaimed, nil
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, "", err
		}
		// The username holder is already linked to another login. Their
		// github_id is immutable once set, so a fresh account is created and
		// the merge releases the username from them instead.
	}

	githubID := assertion.GithubID
	created := &models.User{GithubID: &githubID}
	if err := tx.Create(ctx, created); err != nil {
		return nil, "", err
	}
	return created, metrics.OutcomeCreated, nil
}

// merge applies the assertion's fields to the target, releasing a username
// from any other holder first.
func (s *Service) merge(ctx context.Context, tx UserStore, target *models.User, assertion Assertion) error {
	changed := false

	if assertion.Username != nil {
		if target.Username == nil || *target.Username != *assertion.Username {
			holder, err := tx.FindByUsernameCI(ctx, *assertion.Username)
			switch {
			case err == nil && holder.ID != target.ID:
				if err := tx.ClearUsername(ctx, holder.ID); err != nil {
					return err
				}
				metrics.UsernameConflictsTotal.Inc()
				s.log.Info().
					Str("username", *assertion.Username).
					Uint("previous_holder", holder.ID).
					Uint("new_holder", target.ID).
					Msg("Released username from previous holder")
			case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			username := *assertion.Username
			target.Username = &username
			changed = true
		}
	}

	if assertion.Email != nil && (target.Email == nil || *target.Email == "") {
		email := *assertion.Email
		target.Email = &email
		changed = true
	}

	if assertion.AvatarURL != nil {
		avatar := NormalizeAvatarURL(*assertion.AvatarURL)
		target.AvatarURL = &avatar
		changed = true
	}

	if !changed {
		return nil
	}
	return tx.Update(ctx, target)
}

// NormalizeAvatarURL strips the query fragment from an avatar URL.
// GitHub appends cache-busting parameters ("...?v=4") that must not be stored.
func NormalizeAvatarURL(raw string) string {
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[:i]
	}
	return raw
}
