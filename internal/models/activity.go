package models

import "time"

// Activity types recorded in the audit trail.
const (
	ActivityLogin       = "login"
	ActivitySignup      = "signup"
	ActivityTransaction = "transaction"
	ActivityViewPage    = "view_page"
	ActivityLogout      = "logout"
	ActivityOther       = "other"
)

// AnonymousUser is the sentinel user id for activities recorded before
// a user is known.
const AnonymousUser = "anonymous"

// Activity is an append-only audit record. It is never updated or
// deleted by normal operation.
type Activity struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	UserID       string    `gorm:"size:64;index;not null" json:"user_id"` // user id or "anonymous"
	ActivityType string    `gorm:"size:32;not null" json:"activity_type"`
	Description  string    `gorm:"size:255" json:"description"`
	Timestamp    time.Time `gorm:"index;not null" json:"timestamp"`
}
