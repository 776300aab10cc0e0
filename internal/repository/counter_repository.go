package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dkestel/practice-hub/internal/models"
)

// CounterRepository is the database-backed daily counter store. The unique
// index on daily_counts.user_id plus an ON CONFLICT arithmetic update keep
// concurrent increments lossless without a second row ever appearing.
type CounterRepository struct {
	db *DB
}

// NewCounterRepository creates a new counter repository.
func NewCounterRepository(db *DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Get returns the user's review count, 0 when no counter row exists.
func (r *CounterRepository) Get(ctx context.Context, userID uint) (int, error) {
	var count models.DailyCount
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&count).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get daily count for user %d: %w", userID, err)
	}
	return count.Total, nil
}

// UpsertIncrement atomically creates the user's counter row with total=1, or
// increments the existing row. Returns the new total.
func (r *CounterRepository) UpsertIncrement(ctx context.Context, userID uint) (int, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total": gorm.Expr("daily_counts.total + 1"),
			}),
		}).
		Create(&models.DailyCount{UserID: userID, Total: 1}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment daily count for user %d: %w", userID, err)
	}

	return r.Get(ctx, userID)
}
