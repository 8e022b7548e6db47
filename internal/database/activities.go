package database

import (
	"context"
	"fmt"

	"github.com/FehCode/financeflow1/internal/models"

	"gorm.io/gorm/clause"
)

// SaveActivity appends an audit record. The activities collection is
// append-only; nothing updates or deletes these rows in normal operation.
func (s *Store) SaveActivity(ctx context.Context, activity *models.Activity) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(activity).Error; err != nil {
		return fmt.Errorf("save activity: %w", err)
	}
	return nil
}

// ActivitiesByUser returns all activities recorded for userID via the
// user_id index.
func (s *Store) ActivitiesByUser(ctx context.Context, userID string) ([]models.Activity, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var activities []models.Activity
	if err := db.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// RecentActivities returns the newest activities across all users,
// newest first, capped at limit.
func (s *Store) RecentActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	var activities []models.Activity
	if err := db.Order("timestamp DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	return activities, nil
}
