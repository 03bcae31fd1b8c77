package handler_test

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func fragments(fs ...domain.Fragment) iter.Seq[domain.Fragment] {
	return func(yield func(domain.Fragment) bool) {
		for _, f := range fs {
			if !yield(f) {
				return
			}
		}
	}
}

func planBody() map[string]any {
	return map[string]any{
		"destination":   "Lisbon",
		"duration_days": 3,
		"budget":        "moderate",
		"start_date":    "2025-06-01",
		"interests":     []string{"food", "history"},
		"travelers":     2,
	}
}

func TestPlanTrip_streamsFragmentsAsEvents(t *testing.T) {
	var got domain.TripRequest
	p := &mockPlanner{plan: func(_ context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error) {
		got = req
		return fragments(domain.Fragment{Text: "Day 1"}, domain.Fragment{Text: "Day 2"}, domain.Fragment{Text: "Day 3"}), nil
	}}

	rec := do(newTestRouter(deps{planner: p}), http.MethodPost, "/plan_trip", "", jsonBody(t, planBody()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t,
		"data: Day 1\n\ndata: Day 2\n\ndata: Day 3\n\nevent: done\ndata: [DONE]\n\n",
		rec.Body.String())

	assert.Equal(t, "Lisbon", got.Destination)
	assert.Equal(t, 3, got.DurationDays)
	assert.True(t, got.StartDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"food", "history"}, got.Interests)
	assert.Equal(t, 2, got.Travelers)
}

func TestPlanTrip_multiLineFragment(t *testing.T) {
	p := &mockPlanner{plan: func(context.Context, domain.TripRequest) (iter.Seq[domain.Fragment], error) {
		return fragments(domain.Fragment{Text: "### Day 1\r\nMorning: Alfama\n"}), nil
	}}

	rec := do(newTestRouter(deps{planner: p}), http.MethodPost, "/plan_trip", "", jsonBody(t, planBody()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(),
		"data: ### Day 1\ndata: Morning: Alfama\ndata: \n\n"), rec.Body.String())
}

func TestPlanTrip_errorFragmentEndsStream(t *testing.T) {
	p := &mockPlanner{plan: func(context.Context, domain.TripRequest) (iter.Seq[domain.Fragment], error) {
		return fragments(
			domain.Fragment{Text: "Day 1"},
			domain.Fragment{Err: "An error occurred: quota exhausted"},
			domain.Fragment{Text: "never sent"},
		), nil
	}}

	rec := do(newTestRouter(deps{planner: p}), http.MethodPost, "/plan_trip", "", jsonBody(t, planBody()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"data: Day 1\n\nevent: error\ndata: {\"error\":\"An error occurred: quota exhausted\"}\n\n",
		rec.Body.String())
}

func TestPlanTrip_validationErrorBeforeStreaming(t *testing.T) {
	p := &mockPlanner{plan: func(context.Context, domain.TripRequest) (iter.Seq[domain.Fragment], error) {
		return nil, fmt.Errorf("service.PlannerService.Plan: %w: duration_days must be at least 1", domain.ErrValidation)
	}}

	rec := do(newTestRouter(deps{planner: p}), http.MethodPost, "/plan_trip", "", jsonBody(t, planBody()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"validation_error","message":"duration_days must be at least 1"}}`, rec.Body.String())
}

func TestPlanTrip_badStartDate(t *testing.T) {
	called := false
	p := &mockPlanner{plan: func(context.Context, domain.TripRequest) (iter.Seq[domain.Fragment], error) {
		called = true
		return fragments(), nil
	}}
	body := planBody()
	body["start_date"] = "June 1st"

	rec := do(newTestRouter(deps{planner: p}), http.MethodPost, "/plan_trip", "", jsonBody(t, body))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
	assert.False(t, called)
}

func TestPlanTrip_missingStartDateReachesService(t *testing.T) {
	var got domain.TripRequest
	p := &mockPlanner{plan: func(_ context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error) {
		got = req
		return nil, fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}}
	body := planBody()
	delete(body, "start_date")

	rec := do(newTestRouter(deps{planner: p}), http.MethodPost, "/plan_trip", "", jsonBody(t, body))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.True(t, got.StartDate.IsZero())
}
