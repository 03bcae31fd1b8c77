package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ItineraryService implements business logic for saved itineraries.
// Every call is scoped to the authenticated account.
type ItineraryService struct {
	repo repo.ItineraryRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repo.
func NewItineraryService(r repo.ItineraryRepo) *ItineraryService {
	return &ItineraryService{repo: r}
}

// Save stores plan for accountID. The plan is opaque and stored as given.
// Returns domain.ErrValidation if plan is nil.
func (s *ItineraryService) Save(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error) {
	if plan == nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Save: %w: plan is required", domain.ErrValidation)
	}
	it, err := s.repo.Create(ctx, accountID, plan)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Save: %w", err)
	}
	return it, nil
}

// Get returns the itinerary tripID owned by accountID.
// Returns domain.ErrNotFound if it does not exist under that account.
func (s *ItineraryService) Get(ctx context.Context, accountID, tripID string) (domain.Itinerary, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", domain.ErrNotFound)
	}
	it, err := s.repo.GetByID(ctx, accountID, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	return it, nil
}

// Update applies upd to the top level of the stored plan. Only the fields
// set in upd are written; every other plan key is left untouched.
// Returns domain.ErrValidation for an empty or invalid update and
// domain.ErrNotFound, with nothing written, for an unknown trip.
func (s *ItineraryService) Update(ctx context.Context, accountID, tripID string, upd domain.ItineraryUpdate) (domain.Itinerary, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w: trip_id is required", domain.ErrValidation)
	}
	if err := validateUpdate(upd); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}

	it, err := s.repo.Update(ctx, accountID, tripID, upd.Fields())
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return it, nil
}

func validateUpdate(upd domain.ItineraryUpdate) error {
	if upd.IsEmpty() {
		return fmt.Errorf("%w: updates must set at least one field", domain.ErrValidation)
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", domain.ErrValidation)
	}
	if upd.Destination != nil && strings.TrimSpace(*upd.Destination) == "" {
		return fmt.Errorf("%w: destination must not be blank", domain.ErrValidation)
	}
	if upd.DurationDays != nil && *upd.DurationDays < 1 {
		return fmt.Errorf("%w: duration_days must be at least 1", domain.ErrValidation)
	}
	if upd.TotalCost != nil && *upd.TotalCost < 0 {
		return fmt.Errorf("%w: total_cost must not be negative", domain.ErrValidation)
	}
	return nil
}
