package database

import (
	"context"
	"fmt"
	"time"

	"github.com/FehCode/financeflow1/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveTransaction inserts or replaces a transaction by primary key.
func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(tx).Error; err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

// GetTransaction returns the transaction or (nil, nil) when absent.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var tx models.Transaction
	if err := db.First(&tx, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// TransactionsByUser returns all transactions owned by userID via the
// user_id index. Order is unspecified; callers sort as needed.
func (s *Store) TransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := db.Where("user_id = ?", userID).Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// TransactionsByDateRange returns the user's transactions with
// start <= date < end, using the date index.
func (s *Store) TransactionsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Transaction, error) {
	db, err := s.handle(ctx)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions by date: %w", err)
	}
	return txs, nil
}

// DeleteTransaction removes by primary key. Deleting a missing id is a
// no-op, not an error.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Delete(&models.Transaction{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
