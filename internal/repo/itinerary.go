package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ItineraryRepo defines the persistence operations for saved itineraries.
// Every operation is scoped to the owning account: an itinerary that exists
// under another account is reported as domain.ErrNotFound.
type ItineraryRepo interface {
	// Create stores plan under accountID and returns the persisted record
	// with its generated id and server timestamps.
	Create(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error)

	// GetByID returns the itinerary id owned by accountID.
	GetByID(ctx context.Context, accountID, id string) (domain.Itinerary, error)

	// Update merges patch into the top level of the stored plan in one
	// atomic step and returns the updated record. Keys absent from patch
	// keep their values. An unknown id returns domain.ErrNotFound and
	// mutates nothing.
	Update(ctx context.Context, accountID, id string, patch map[string]any) (domain.Itinerary, error)
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

func (r *pgItineraryRepo) Create(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (account_id, plan)
		VALUES (@account_id, @plan)
		RETURNING id, account_id, plan, created_at, updated_at`

	if plan == nil {
		plan = map[string]any{}
	}
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"account_id": accountID, "plan": plan})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, accountID, id string) (domain.Itinerary, error) {
	const q = `
		SELECT id, account_id, plan, created_at, updated_at
		FROM itineraries
		WHERE id = @id AND account_id = @account_id`

	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", domain.ErrNotFound)
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": uid, "account_id": accountID})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update uses the jsonb concatenation operator, which replaces top-level
// keys present on the right-hand side and keeps the rest.
func (r *pgItineraryRepo) Update(ctx context.Context, accountID, id string, patch map[string]any) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET plan       = plan || @patch::jsonb,
		    updated_at = now()
		WHERE id = @id AND account_id = @account_id
		RETURNING id, account_id, plan, created_at, updated_at`

	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", domain.ErrNotFound)
	}

	args := pgx.NamedArgs{
		"id":         uid,
		"account_id": accountID,
		"patch":      patch,
	}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

// scanItinerary maps a single database row into a domain.Itinerary.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it domain.Itinerary
		id pgtype.UUID
	)

	err := s.Scan(&id, &it.AccountID, &it.Plan, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes).String()
	if it.Plan == nil {
		it.Plan = map[string]any{}
	}
	return it, nil
}
