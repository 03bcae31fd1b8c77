package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/testutil"
)

// newTestTx opens a transaction against the test database that is rolled
// back when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// seedAccount inserts an account row so itineraries can reference it.
func seedAccount(t *testing.T, tx pgx.Tx) string {
	t.Helper()
	acct := accountFixture()
	require.NoError(t, repo.NewAccountRepo(tx).Create(context.Background(), acct, "hash"))
	return acct.ID
}

func TestPostgresItineraryRepo(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		tx := newTestTx(t)
		testItineraryCreateAndGet(t, repo.NewItineraryRepo(tx), seedAccount(t, tx))
	})
	t.Run("get unknown", func(t *testing.T) {
		tx := newTestTx(t)
		testItineraryGetUnknown(t, repo.NewItineraryRepo(tx), seedAccount(t, tx))
	})
	t.Run("scoped to account", func(t *testing.T) {
		tx := newTestTx(t)
		testItineraryScopedToAccount(t, repo.NewItineraryRepo(tx), seedAccount(t, tx), seedAccount(t, tx))
	})
	t.Run("shallow merge", func(t *testing.T) {
		tx := newTestTx(t)
		testItineraryShallowMerge(t, repo.NewItineraryRepo(tx), seedAccount(t, tx))
	})
	t.Run("update unknown", func(t *testing.T) {
		tx := newTestTx(t)
		testItineraryUpdateUnknown(t, repo.NewItineraryRepo(tx), seedAccount(t, tx))
	})
}

func TestPostgresAccountRepo(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		testAccountCreateAndGet(t, repo.NewAccountRepo(newTestTx(t)))
	})
	t.Run("duplicate email", func(t *testing.T) {
		testAccountDuplicateEmail(t, repo.NewAccountRepo(newTestTx(t)))
	})
	t.Run("unknown email", func(t *testing.T) {
		testAccountUnknownEmail(t, repo.NewAccountRepo(newTestTx(t)))
	})
}
