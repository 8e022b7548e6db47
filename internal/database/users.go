package database

import (
	"context"
	"fmt"

	"github.com/FehCode/financeflow1/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveUser inserts or replaces a user by primary key. Replaying the same
// record is a no-op in effect. A different user with an already-used email
// is rejected by the unique index.
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// GetUser returns the user or (nil, nil) when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail looks a user up through the unique email index. Absence
// is (nil, nil); callers decide whether that is an error.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// DeleteUserData wipes an account: the user's transactions first, then the
// user record. The sequence is not atomic as a whole; deleting
// dependent-first keeps a mid-sequence crash recoverable (an orphan-free
// user remains rather than orphaned transactions).
func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("delete user transactions: %w", err)
	}
	if err := db.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
