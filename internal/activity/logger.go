// Package activity appends audit records to the activities collection.
// Recording is best-effort: a failed append never blocks the action that
// triggered it.
package activity

import (
	"context"
	"log"
	"time"

	"github.com/FehCode/financeflow1/internal/database"
	"github.com/FehCode/financeflow1/internal/models"

	"github.com/google/uuid"
)

// Logger writes Activity records through the record store.
type Logger struct {
	store *database.Store
}

// NewLogger constructs a Logger over an opened store.
func NewLogger(store *database.Store) *Logger {
	return &Logger{store: store}
}

// Record appends an activity with a fresh id and the current timestamp.
// An empty userID is recorded under the anonymous sentinel. The return
// value reports success; failures are logged locally and never propagate
// into the triggering flow.
func (l *Logger) Record(ctx context.Context, userID, activityType, description string) bool {
	if userID == "" {
		userID = models.AnonymousUser
	}

	entry := &models.Activity{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		Timestamp:    time.Now(),
	}

	if err := l.store.SaveActivity(ctx, entry); err != nil {
		log.Printf("activity: failed to record %s for %s: %v", activityType, userID, err)
		return false
	}
	return true
}

// ForUser returns the activities recorded for one user. Read failures
// degrade to an empty list, matching the best-effort contract.
func (l *Logger) ForUser(ctx context.Context, userID string) []models.Activity {
	activities, err := l.store.ActivitiesByUser(ctx, userID)
	if err != nil {
		log.Printf("activity: failed to list for %s: %v", userID, err)
		return nil
	}
	return activities
}

// Recent returns the newest activities across all users, capped at limit.
func (l *Logger) Recent(ctx context.Context, limit int) []models.Activity {
	activities, err := l.store.RecentActivities(ctx, limit)
	if err != nil {
		log.Printf("activity: failed to list recent: %v", err)
		return nil
	}
	return activities
}
