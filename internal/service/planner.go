// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate the
// pipeline and storage ports. No SQL and no HTTP live here.
package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ContextAggregator gathers the real-time context for a destination.
// It never fails: upstream problems come back as fallback text.
type ContextAggregator interface {
	Aggregate(ctx context.Context, place string, start time.Time) domain.RealtimeContext
}

// ItineraryStreamer turns a request plus its context into itinerary fragments.
type ItineraryStreamer interface {
	Stream(ctx context.Context, req domain.TripRequest, rc domain.RealtimeContext) iter.Seq[domain.Fragment]
}

// PlannerService runs the planning pipeline: aggregate, prompt, relay.
type PlannerService struct {
	aggregator ContextAggregator
	streamer   ItineraryStreamer
	log        *slog.Logger
}

// NewPlannerService constructs a PlannerService. A nil logger uses slog.Default.
func NewPlannerService(aggregator ContextAggregator, streamer ItineraryStreamer, log *slog.Logger) *PlannerService {
	if log == nil {
		log = slog.Default()
	}
	return &PlannerService{aggregator: aggregator, streamer: streamer, log: log}
}

// Plan validates req and returns the itinerary as a lazy fragment sequence.
// Returns domain.ErrValidation before any upstream call if req is invalid.
//
// Nothing runs until the caller starts ranging; the real-time fetches
// happen on the first pull so a caller can commit its response headers first.
func (s *PlannerService) Plan(ctx context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error) {
	req = normalizeTripRequest(req)
	if err := validateTripRequest(req); err != nil {
		return nil, fmt.Errorf("service.PlannerService.Plan: %w", err)
	}

	return func(yield func(domain.Fragment) bool) {
		rc := s.aggregator.Aggregate(ctx, req.Destination, req.StartDate)
		s.log.DebugContext(ctx, "real-time context aggregated",
			"destination", rc.Destination,
			"weather_info", rc.WeatherInfo,
			"events_info", rc.EventsInfo,
		)
		for f := range s.streamer.Stream(ctx, req, rc) {
			if !yield(f) {
				return
			}
		}
	}, nil
}

func normalizeTripRequest(req domain.TripRequest) domain.TripRequest {
	req.Destination = strings.TrimSpace(req.Destination)
	req.Budget = strings.TrimSpace(req.Budget)
	req.Accommodation = strings.TrimSpace(req.Accommodation)
	req.Interests = trimNonEmpty(req.Interests)
	req.Activities = trimNonEmpty(req.Activities)
	return req
}

func validateTripRequest(req domain.TripRequest) error {
	if req.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if req.DurationDays < 1 {
		return fmt.Errorf("%w: duration_days must be at least 1", domain.ErrValidation)
	}
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if req.Travelers < 0 {
		return fmt.Errorf("%w: travelers must not be negative", domain.ErrValidation)
	}
	return nil
}

func trimNonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
