package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// The contract functions below run against every adapter. Each adapter's
// test file supplies a constructor and an account that already exists.

func planFixture() map[string]any {
	return map[string]any{
		"title":         "Kyoto in spring",
		"destination":   "Kyoto",
		"duration_days": float64(3),
		"days":          []any{"Day 1", "Day 2", "Day 3"},
	}
}

func accountFixture() domain.Account {
	id := uuid.NewString()
	return domain.Account{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Ana",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func testItineraryCreateAndGet(t *testing.T, r repo.ItineraryRepo, accountID string) {
	ctx := context.Background()

	created, err := r.Create(ctx, accountID, planFixture())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, accountID, created.AccountID)
	assert.False(t, created.CreatedAt.IsZero(), "CreatedAt should be set")

	got, err := r.GetByID(ctx, accountID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, planFixture(), got.Plan)
}

func testItineraryGetUnknown(t *testing.T, r repo.ItineraryRepo, accountID string) {
	ctx := context.Background()

	_, err := r.GetByID(ctx, accountID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.GetByID(ctx, accountID, "not-a-trip")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testItineraryScopedToAccount(t *testing.T, r repo.ItineraryRepo, owner, other string) {
	ctx := context.Background()
	created, err := r.Create(ctx, owner, planFixture())
	require.NoError(t, err)

	_, err = r.GetByID(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Update(ctx, other, created.ID, map[string]any{"title": "stolen"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := r.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto in spring", got.Plan["title"])
}

func testItineraryShallowMerge(t *testing.T, r repo.ItineraryRepo, accountID string) {
	ctx := context.Background()
	created, err := r.Create(ctx, accountID, planFixture())
	require.NoError(t, err)

	updated, err := r.Update(ctx, accountID, created.ID, map[string]any{
		"title":      "Kyoto and Nara",
		"total_cost": 1250.5,
	})
	require.NoError(t, err)

	want := planFixture()
	want["title"] = "Kyoto and Nara"
	want["total_cost"] = 1250.5
	assert.Equal(t, want, updated.Plan)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt), "UpdatedAt should not go backwards")

	got, err := r.GetByID(ctx, accountID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got.Plan)
}

func testItineraryUpdateUnknown(t *testing.T, r repo.ItineraryRepo, accountID string) {
	_, err := r.Update(context.Background(), accountID, uuid.NewString(), map[string]any{"title": "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testAccountCreateAndGet(t *testing.T, r repo.AccountRepo) {
	ctx := context.Background()
	acct := accountFixture()

	require.NoError(t, r.Create(ctx, acct, "hash-1"))

	got, hash, err := r.GetByEmail(ctx, acct.Email)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)
	assert.Equal(t, acct.Email, got.Email)
	assert.Equal(t, acct.DisplayName, got.DisplayName)
	assert.True(t, got.CreatedAt.Equal(acct.CreatedAt), "CreatedAt mismatch")
	assert.Equal(t, "hash-1", hash)
}

func testAccountDuplicateEmail(t *testing.T, r repo.AccountRepo) {
	ctx := context.Background()
	acct := accountFixture()
	require.NoError(t, r.Create(ctx, acct, "hash-1"))

	dup := accountFixture()
	dup.Email = acct.Email
	err := r.Create(ctx, dup, "hash-2")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func testAccountUnknownEmail(t *testing.T, r repo.AccountRepo) {
	_, _, err := r.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
