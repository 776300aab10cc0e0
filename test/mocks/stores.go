// Package mocks provides simple function-field mocks for service and
// handler tests.
package mocks

import (
	"context"

	"gorm.io/gorm"

	"github.com/dkestel/practice-hub/internal/auth"
	"github.com/dkestel/practice-hub/internal/models"
	"github.com/dkestel/practice-hub/internal/service/identity"
)

// MockACLStore is a simple mock for the authorization registry.
type MockACLStore struct {
	AuthorizedProblemsFunc func(ctx context.Context, userID uint) ([]models.Problem, error)
}

func (m *MockACLStore) AuthorizedProblems(ctx context.Context, userID uint) ([]models.Problem, error) {
	if m.AuthorizedProblemsFunc != nil {
		return m.AuthorizedProblemsFunc(ctx, userID)
	}
	return nil, nil
}

// MockSubmissionStore is a simple mock for the submission store.
type MockSubmissionStore struct {
	LatestForProblemFunc func(ctx context.Context, problem models.Problem, excludeUserID uint) ([]models.Submission, error)
	HasCommentFromFunc   func(ctx context.Context, submissionID, userID uint) (bool, error)
}

func (m *MockSubmissionStore) LatestForProblem(ctx context.Context, problem models.Problem, excludeUserID uint) ([]models.Submission, error) {
	if m.LatestForProblemFunc != nil {
		return m.LatestForProblemFunc(ctx, problem, excludeUserID)
	}
	return nil, nil
}

func (m *MockSubmissionStore) HasCommentFrom(ctx context.Context, submissionID, userID uint) (bool, error) {
	if m.HasCommentFromFunc != nil {
		return m.HasCommentFromFunc(ctx, submissionID, userID)
	}
	return false, nil
}

// MockCounterStore is a simple mock for the daily counter store.
type MockCounterStore struct {
	GetFunc             func(ctx context.Context, userID uint) (int, error)
	UpsertIncrementFunc func(ctx context.Context, userID uint) (int, error)
}

func (m *MockCounterStore) Get(ctx context.Context, userID uint) (int, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockCounterStore) UpsertIncrement(ctx context.Context, userID uint) (int, error) {
	if m.UpsertIncrementFunc != nil {
		return m.UpsertIncrementFunc(ctx, userID)
	}
	return 1, nil
}

// MockUserStore is a simple mock for the account persistence store.
// Transaction runs the callback against the mock itself unless overridden.
type MockUserStore struct {
	TransactionFunc      func(fn func(tx identity.UserStore) error) error
	FindByGithubIDFunc   func(ctx context.Context, githubID int64) (*models.User, error)
	FindByUsernameCIFunc func(ctx context.Context, username string) (*models.User, error)
	GetByIDFunc          func(ctx context.Context, id uint) (*models.User, error)
	CreateFunc           func(ctx context.Context, user *models.User) error
	UpdateFunc           func(ctx context.Context, user *models.User) error
	ClearUsernameFunc    func(ctx context.Context, userID uint) error
}

func (m *MockUserStore) Transaction(fn func(tx identity.UserStore) error) error {
	if m.TransactionFunc != nil {
		return m.TransactionFunc(fn)
	}
	return fn(m)
}

func (m *MockUserStore) FindByGithubID(ctx context.Context, githubID int64) (*models.User, error) {
	if m.FindByGithubIDFunc != nil {
		return m.FindByGithubIDFunc(ctx, githubID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserStore) FindByUsernameCI(ctx context.Context, username string) (*models.User, error) {
	if m.FindByUsernameCIFunc != nil {
		return m.FindByUsernameCIFunc(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.User{}, nil
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) Update(ctx context.Context, user *models.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) ClearUsername(ctx context.Context, userID uint) error {
	if m.ClearUsernameFunc != nil {
		return m.ClearUsernameFunc(ctx, userID)
	}
	return nil
}

// MockIdentityService is a simple mock for the identity service.
type MockIdentityService struct {
	ReconcileGithubFunc func(ctx context.Context, assertion identity.Assertion) (*models.User, error)
}

func (m *MockIdentityService) ReconcileGithub(ctx context.Context, assertion identity.Assertion) (*models.User, error) {
	if m.ReconcileGithubFunc != nil {
		return m.ReconcileGithubFunc(ctx, assertion)
	}
	return &models.User{}, nil
}

// MockDailiesService is a simple mock for the dailies service.
type MockDailiesService struct {
	DailiesFunc           func(ctx context.Context, userID uint) ([]models.Submission, error)
	DailyCountFunc        func(ctx context.Context, userID uint) (int, error)
	DailiesAvailableFunc  func(ctx context.Context, userID uint) (bool, error)
	IncrementFiveADayFunc func(ctx context.Context, userID uint) error
}

func (m *MockDailiesService) Dailies(ctx context.Context, userID uint) ([]models.Submission, error) {
	if m.DailiesFunc != nil {
		return m.DailiesFunc(ctx, userID)
	}
	return []models.Submission{}, nil
}

func (m *MockDailiesService) DailyCount(ctx context.Context, userID uint) (int, error) {
	if m.DailyCountFunc != nil {
		return m.DailyCountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockDailiesService) DailiesAvailable(ctx context.Context, userID uint) (bool, error) {
	if m.DailiesAvailableFunc != nil {
		return m.DailiesAvailableFunc(ctx, userID)
	}
	return true, nil
}

func (m *MockDailiesService) IncrementFiveADay(ctx context.Context, userID uint) error {
	if m.IncrementFiveADayFunc != nil {
		return m.IncrementFiveADayFunc(ctx, userID)
	}
	return nil
}

// MockOAuthProvider is a simple mock for the GitHub OAuth provider.
type MockOAuthProvider struct {
	AuthURLFunc  func(state string) string
	ExchangeFunc func(ctx context.Context, code string) (*auth.GithubUser, error)
}

func (m *MockOAuthProvider) AuthURL(state string) string {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(state)
	}
	return "https://github.com/login/oauth/authorize?state=" + state
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*auth.GithubUser, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &auth.GithubUser{ID: 1, Login: "alice"}, nil
}
