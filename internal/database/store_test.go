package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/FehCode/financeflow1/internal/config"
	"github.com/FehCode/financeflow1/internal/models"

	"github.com/shopspring/decimal"
)

// newTestStore opens an initialized store on a private in-memory database.
// cache=shared keeps the pool's connections on the same database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	store, err := Open(config.DatabaseConfig{Path: dsn})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize store: %v", err)
	}
	return store
}

func testUser(id, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Name:      "Test User",
		Email:     email,
		CreatedAt: now,
		LastLogin: now,
	}
}

func testTransaction(id, userID string, amount string) *models.Transaction {
	date, _ := time.Parse("2006-01-02", "2024-03-01")
	return &models.Transaction{
		ID:          id,
		UserID:      userID,
		Description: "test",
		Amount:      decimal.RequireFromString(amount),
		Category:    "General",
		Type:        models.TypeExpense,
		Date:        date,
		CreatedAt:   time.Now(),
	}
}

func TestStore_FailsFastBeforeInitialize(t *testing.T) {
	store, err := Open(config.DatabaseConfig{Path: "file:uninit?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()

	if err := store.SaveUser(ctx, testUser("u1", "a@b.c")); err != ErrStoreUnavailable {
		t.Errorf("SaveUser error = %v, want ErrStoreUnavailable", err)
	}
	if _, err := store.GetUser(ctx, "u1"); err != ErrStoreUnavailable {
		t.Errorf("GetUser error = %v, want ErrStoreUnavailable", err)
	}
	if _, err := store.TransactionsByUser(ctx, "u1"); err != ErrStoreUnavailable {
		t.Errorf("TransactionsByUser error = %v, want ErrStoreUnavailable", err)
	}
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveUser(ctx, testUser("u1", "a@b.c")); err != nil {
		t.Fatalf("save user: %v", err)
	}

	// re-running setup must not touch existing records
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("second initialize: %v", err)
	}

	user, err := store.GetUser(ctx, "u1")
	if err != nil || user == nil {
		t.Fatalf("user lost after re-initialize: %v, %v", user, err)
	}
}

func TestStore_IdempotentPut(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := testTransaction("t1", "u1", "100")
	if err := store.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("replayed save: %v", err)
	}

	txs, err := store.TransactionsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("got %d transactions after replayed put, want 1", len(txs))
	}
	if txs[0].ID != "t1" {
		t.Errorf("id = %s, want t1", txs[0].ID)
	}
}

func TestStore_PutReplacesByPrimaryKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveTransaction(ctx, testTransaction("t1", "u1", "100")); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated := testTransaction("t1", "u1", "250")
	updated.Description = "edited"
	if err := store.SaveTransaction(ctx, updated); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := store.GetTransaction(ctx, "t1")
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(250)) || got.Description != "edited" {
		t.Errorf("record not replaced: amount=%s description=%s", got.Amount, got.Description)
	}

	// the index must reflect the replacement, not the stale record
	txs, _ := store.TransactionsByUser(ctx, "u1")
	if len(txs) != 1 || !txs[0].Amount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("stale index read after replace: %+v", txs)
	}
}

func TestStore_GetAbsentIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.GetUser(ctx, "missing")
	if err != nil {
		t.Errorf("GetUser error = %v, want nil", err)
	}
	if user != nil {
		t.Errorf("GetUser = %+v, want nil", user)
	}

	byEmail, err := store.GetUserByEmail(ctx, "nobody@nowhere")
	if err != nil || byEmail != nil {
		t.Errorf("GetUserByEmail = %+v, %v; want nil, nil", byEmail, err)
	}
}

func TestStore_DeleteMissingIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.DeleteTransaction(ctx, "missing"); err != nil {
		t.Errorf("delete missing transaction: %v", err)
	}
	if err := store.DeleteGoal(ctx, "missing"); err != nil {
		t.Errorf("delete missing goal: %v", err)
	}
}

func TestStore_UniqueEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveUser(ctx, testUser("u1", "same@mail.com")); err != nil {
		t.Fatalf("first user: %v", err)
	}

	// a different user with the same email must be rejected, never
	// silently stored as a duplicate
	err := store.SaveUser(ctx, testUser("u2", "same@mail.com"))
	if err == nil {
		t.Fatal("duplicate email accepted")
	}

	// replaying the same user is still fine
	if err := store.SaveUser(ctx, testUser("u1", "same@mail.com")); err != nil {
		t.Errorf("replay of same user rejected: %v", err)
	}
}

func TestStore_CascadeDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveUser(ctx, testUser("u1", "a@b.c")); err != nil {
		t.Fatalf("save user: %v", err)
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("t%d", i)
		if err := store.SaveTransaction(ctx, testTransaction(id, "u1", "10")); err != nil {
			t.Fatalf("save transaction: %v", err)
		}
	}
	// another user's data must survive the wipe
	if err := store.SaveUser(ctx, testUser("u2", "x@y.z")); err != nil {
		t.Fatalf("save second user: %v", err)
	}
	if err := store.SaveTransaction(ctx, testTransaction("other", "u2", "10")); err != nil {
		t.Fatalf("save other transaction: %v", err)
	}

	if err := store.DeleteUserData(ctx, "u1"); err != nil {
		t.Fatalf("delete user data: %v", err)
	}

	user, _ := store.GetUser(ctx, "u1")
	if user != nil {
		t.Errorf("user still present after wipe")
	}
	txs, _ := store.TransactionsByUser(ctx, "u1")
	if len(txs) != 0 {
		t.Errorf("got %d orphaned transactions, want 0", len(txs))
	}
	otherTxs, _ := store.TransactionsByUser(ctx, "u2")
	if len(otherTxs) != 1 {
		t.Errorf("other user's transactions lost")
	}
}

func TestStore_TransactionsByDateRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dates := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	for i, d := range dates {
		tx := testTransaction(fmt.Sprintf("t%d", i), "u1", "10")
		tx.Date, _ = time.Parse("2006-01-02", d)
		if err := store.SaveTransaction(ctx, tx); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	start, _ := time.Parse("2006-01-02", "2024-02-01")
	end, _ := time.Parse("2006-01-02", "2024-03-01")

	txs, err := store.TransactionsByDateRange(ctx, "u1", start, end)
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != "t1" {
		t.Errorf("range query returned %+v, want only t1", txs)
	}
}

func TestStore_RecentActivities(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		act := &models.Activity{
			ID:           fmt.Sprintf("a%d", i),
			UserID:       "u1",
			ActivityType: models.ActivityOther,
			Description:  fmt.Sprintf("event %d", i),
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveActivity(ctx, act); err != nil {
			t.Fatalf("save activity: %v", err)
		}
	}

	recent, err := store.RecentActivities(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d activities, want 3", len(recent))
	}
	if recent[0].ID != "a4" || recent[2].ID != "a2" {
		t.Errorf("not ordered newest first: %s, %s, %s", recent[0].ID, recent[1].ID, recent[2].ID)
	}
}

func TestStore_GoalsByUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	deadline, _ := time.Parse("2006-01-02", "2025-01-01")
	goal := &models.Goal{
		ID:            "g1",
		UserID:        "u1",
		Name:          "Vacation",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(2500),
		Deadline:      deadline,
		CreatedAt:     time.Now(),
	}
	if err := store.SaveGoal(ctx, goal); err != nil {
		t.Fatalf("save goal: %v", err)
	}

	goals, err := store.GoalsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Name != "Vacation" {
		t.Errorf("got %+v", goals)
	}

	// no goals yet is normal, not an error
	empty, err := store.GoalsByUser(ctx, "u2")
	if err != nil {
		t.Errorf("empty list error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d goals for fresh user", len(empty))
	}

	if err := store.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	goals, _ = store.GoalsByUser(ctx, "u1")
	if len(goals) != 0 {
		t.Errorf("goal still indexed after delete")
	}
}
