package database

import (
	"context"
	"fmt"

	"github.com/FehCode/financeflow1/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveGoal inserts or replaces a goal by primary key.
func (s *Store) SaveGoal(ctx context.Context, goal *models.Goal) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(goal).Error; err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// GetGoal returns the goal or (nil, nil) when absent.
func (s *Store) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var goal models.Goal
	if err := db.First(&goal, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &goal, nil
}

// GoalsByUser returns all goals owned by userID. Having no goals yet is
// normal: an empty slice, not an error.
func (s *Store) GoalsByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var goals []models.Goal
	if err := db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// DeleteGoal removes by primary key; missing ids are a no-op.
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Delete(&models.Goal{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
