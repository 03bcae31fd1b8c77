package repo

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// memItineraryRepo keeps itineraries in an append-only arena with an index
// from (account, id) to arena slot. Each instance owns its own state.
type memItineraryRepo struct {
	mu    sync.RWMutex
	arena []domain.Itinerary
	index map[memKey]int
	now   func() time.Time
}

type memKey struct {
	accountID string
	id        string
}

// NewMemoryItineraryRepo returns an empty in-memory ItineraryRepo.
func NewMemoryItineraryRepo() ItineraryRepo {
	return &memItineraryRepo{index: make(map[memKey]int), now: time.Now}
}

func (r *memItineraryRepo) Create(_ context.Context, accountID string, plan map[string]any) (domain.Itinerary, error) {
	ts := r.now().UTC()
	it := domain.Itinerary{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Plan:      clonePlan(plan),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	r.mu.Lock()
	r.index[memKey{accountID, it.ID}] = len(r.arena)
	r.arena = append(r.arena, it)
	r.mu.Unlock()

	return copyItinerary(it), nil
}

func (r *memItineraryRepo) GetByID(_ context.Context, accountID, id string) (domain.Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.index[memKey{accountID, id}]
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("repo.memItineraryRepo.GetByID: %w", domain.ErrNotFound)
	}
	return copyItinerary(r.arena[slot]), nil
}

func (r *memItineraryRepo) Update(_ context.Context, accountID, id string, patch map[string]any) (domain.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.index[memKey{accountID, id}]
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("repo.memItineraryRepo.Update: %w", domain.ErrNotFound)
	}
	it := &r.arena[slot]
	plan := clonePlan(it.Plan)
	maps.Copy(plan, patch)
	it.Plan = plan
	it.UpdatedAt = r.now().UTC()
	return copyItinerary(*it), nil
}

// memAccountRepo keeps accounts keyed by email.
type memAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]memAccount
}

type memAccount struct {
	acct domain.Account
	hash string
}

// NewMemoryAccountRepo returns an empty in-memory AccountRepo.
func NewMemoryAccountRepo() AccountRepo {
	return &memAccountRepo{accounts: make(map[string]memAccount)}
}

func (r *memAccountRepo) Create(_ context.Context, acct domain.Account, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[acct.Email]; ok {
		return fmt.Errorf("repo.memAccountRepo.Create: %w", domain.ErrConflict)
	}
	for _, a := range r.accounts {
		if a.acct.ID == acct.ID {
			return fmt.Errorf("repo.memAccountRepo.Create: %w", domain.ErrConflict)
		}
	}
	r.accounts[acct.Email] = memAccount{acct: acct, hash: passwordHash}
	return nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (domain.Account, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[email]
	if !ok {
		return domain.Account{}, "", fmt.Errorf("repo.memAccountRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	return a.acct, a.hash, nil
}

// clonePlan copies the top level of plan. Nested values are shared, which
// is safe because updates only ever replace top-level keys.
func clonePlan(plan map[string]any) map[string]any {
	if plan == nil {
		return map[string]any{}
	}
	return maps.Clone(plan)
}

func copyItinerary(it domain.Itinerary) domain.Itinerary {
	it.Plan = clonePlan(it.Plan)
	return it
}
