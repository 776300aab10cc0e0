package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dkestel/practice-hub/internal/models"
	"github.com/dkestel/practice-hub/internal/service/identity"
	"github.com/dkestel/practice-hub/pkg/logger"
	"github.com/dkestel/practice-hub/test/mocks"
)

func TestNewServiceWithInterfaces_MergesThroughStore(t *testing.T) {
	var updated *models.User
	github := int64(42)
	existing := &models.User{Username: strp("alice"), GithubID: &github}
	existing.ID = 7

	store := &mocks.MockUserStore{
		FindByGithubIDFunc: func(ctx context.Context, githubID int64) (*models.User, error) {
			return existing, nil
		},
		FindByUsernameCIFunc: func(ctx context.Context, username string) (*models.User, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*models.User, error) {
			return existing, nil
		},
	}
	service := identity.NewServiceWithInterfaces(store, logger.New("error", "json"))

	_, err := service.ReconcileGithub(context.Background(), identity.Assertion{
		GithubID:  42,
		Username:  strp("alice"),
		AvatarURL: strp("https://avatars.example.com/u/42?v=4"),
	})
	if err != nil {
		t.Fatalf("ReconcileGithub() failed: %v", err)
	}

	if updated == nil {
		t.Fatal("Expected the store to receive an update")
	}
	if updated.AvatarURL == nil || *updated.AvatarURL != "https://avatars.example.com/u/42" {
		t.Errorf("Expected stripped avatar URL, got %v", updated.AvatarURL)
	}
}

func TestNewServiceWithInterfaces_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &mocks.MockUserStore{
		FindByGithubIDFunc: func(ctx context.Context, githubID int64) (*models.User, error) {
			return nil, storeErr
		},
	}
	service := identity.NewServiceWithInterfaces(store, logger.New("error", "json"))

	_, err := service.ReconcileGithub(context.Background(), identity.Assertion{GithubID: 42})
	if err == nil {
		t.Fatal("Expected the store error to surface")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("Expected error to wrap the store failure, got %v", err)
	}
}

func strp(s string) *string {
	return &s
}
