// Package dailies computes the per-user queue of peer submissions awaiting review.
package dailies

import (
	"context"
	"fmt"

	"github.com/dkestel/practice-hub/internal/metrics"
	"github.com/dkestel/practice-hub/internal/models"
	"github.com/dkestel/practice-hub/internal/repository"
	"github.com/dkestel/practice-hub/pkg/logger"
)

// FiveADayCap is the number of reviews a user may perform before the daily
// allowance is exhausted.
const FiveADayCap = 5

// ACLStore interface for authorization-grant lookups.
type ACLStore interface {
	AuthorizedProblems(ctx context.Context, userID uint) ([]models.Problem, error)
}

// SubmissionStore interface for submission and comment lookups.
type SubmissionStore interface {
	LatestForProblem(ctx context.Context, problem models.Problem, excludeUserID uint) ([]models.Submission, error)
	HasCommentFrom(ctx context.Context, submissionID, userID uint) (bool, error)
}

// CounterStore interface for the daily review counter.
type CounterStore interface {
	Get(ctx context.Context, userID uint) (int, error)
	UpsertIncrement(ctx context.Context, userID uint) (int, error)
}

// Service computes review queues and manages the five-a-day counter.
type Service struct {
	acls        ACLStore
	submissions SubmissionStore
	counters    CounterStore
	log         *logger.Logger
}

// NewService creates a new dailies service with concrete repositories. The
// counter store stays an interface because the backend (database or Redis)
// is chosen at wiring time.
func NewService(
	acls *repository.ACLRepository,
	submissions *repository.SubmissionRepository,
	counters CounterStore,
	log *logger.Logger,
) *Service {
	return &Service{acls: acls, submissions: submissions, counters: counters, log: log}
}

// NewServiceWithInterfaces creates a new dailies service with interface
// dependencies (useful for testing).
func NewServiceWithInterfaces(acls ACLStore, submissions SubmissionStore, counters CounterStore, log *logger.Logger) *Service {
	return &Service{acls: acls, submissions: submissions, counters: counters, log: log}
}

// Dailies returns the submissions currently owed to the user for review: for
// every problem the user is authorized on, each other author's latest
// iteration, minus anything the user already commented on, with the first
// N candidates dropped for the N reviews already consumed today.
//
// The queue is materialized fresh on every call; nothing is cached between
// requests.
func (s *Service) Dailies(ctx context.Context, userID uint) ([]models.Submission, error) {
	problems, err := s.acls.AuthorizedProblems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorized problems: %w", err)
	}

	candidates := []models.Submission{}
	for _, problem := range problems {
		submissions, err := s.submissions.LatestForProblem(ctx, problem, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get submissions for %s: %w", problem, err)
		}
		for _, submission := range submissions {
			reviewed, err := s.submissions.HasCommentFrom(ctx, submission.ID, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to check prior review of submission %d: %w", submission.ID, err)
			}
			if reviewed {
				continue
			}
			candidates = append(candidates, submission)
		}
	}

	consumed, err := s.counters.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily count: %w", err)
	}
	if consumed > len(candidates) {
		consumed = len(candidates)
	}
	queue := candidates[consumed:]

	metrics.DailiesServedTotal.Add(float64(len(queue)))
	metrics.DailiesQueueSize.Observe(float64(len(queue)))
	s.log.Debug().
		Uint("user_id", userID).
		Int("candidates", len(candidates)).
		Int("consumed", consumed).
		Int("queued", len(queue)).
		Msg("Computed dailies queue")

	return queue, nil
}

// DailyCount returns the number of reviews the user has performed, 0 when
// the user has no counter yet. It never fails on a missing row.
func (s *Service) DailyCount(ctx context.Context, userID uint) (int, error) {
	count, err := s.counters.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily count: %w", err)
	}
	return count, nil
}

// DailiesAvailable reports whether the user still has allowance left today,
// regardless of how many candidates remain in the queue.
func (s *Service) DailiesAvailable(ctx context.Context, userID uint) (bool, error) {
	count, err := s.DailyCount(ctx, userID)
	if err != nil {
		return false, err
	}
	return count < FiveADayCap, nil
}

// IncrementFiveADay records one performed review against the user's
// allowance. The store's create-or-increment is atomic, so concurrent
// reviews never lose an increment or duplicate the counter.
func (s *Service) IncrementFiveADay(ctx context.Context, userID uint) error {
	total, err := s.counters.UpsertIncrement(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to increment five a day counter: %w", err)
	}

	metrics.FiveADayIncrementsTotal.Inc()
	s.log.Debug().
		Uint("user_id", userID).
		Int("total", total).
		Msg("Incremented five a day counter")

	return nil
}
