package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// planTripRequest is the POST /plan_trip body.
type planTripRequest struct {
	Destination   string              `json:"destination"`
	DurationDays  int                 `json:"duration_days"`
	Budget        string              `json:"budget"`
	StartDate     *openapi_types.Date `json:"start_date"`
	Interests     []string            `json:"interests"`
	Travelers     int                 `json:"travelers"`
	Accommodation string              `json:"accommodation"`
	Activities    []string            `json:"activities"`
}

func (p planTripRequest) toDomain() domain.TripRequest {
	req := domain.TripRequest{
		Destination:   p.Destination,
		DurationDays:  p.DurationDays,
		Budget:        p.Budget,
		Interests:     p.Interests,
		Travelers:     p.Travelers,
		Accommodation: p.Accommodation,
		Activities:    p.Activities,
	}
	if p.StartDate != nil {
		t := p.StartDate.Time
		req.StartDate = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return req
}

// PlanTrip handles POST /plan_trip.
//
// The itinerary is streamed as server-sent events: one data event per
// fragment, then either an "error" event or a final "done" event. Invalid
// requests are rejected with 422 before the stream starts.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var body planTripRequest
	if !decodeJSON(w, r, &body, false) {
		return
	}

	seq, err := s.planner.Plan(r.Context(), body.toDomain())
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}

	rc := http.NewResponseController(w)
	// The server-wide write timeout would cut long generations short.
	_ = rc.SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	for f := range seq {
		if f.IsError() {
			payload, _ := json.Marshal(map[string]string{"error": f.Err})
			_ = writeEvent(w, "error", string(payload))
			_ = rc.Flush()
			return
		}
		if err := writeEvent(w, "", f.Text); err != nil {
			s.log.InfoContext(r.Context(), "plan stream client gone", "error", err)
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
	if r.Context().Err() != nil {
		return
	}
	_ = writeEvent(w, "done", "[DONE]")
	_ = rc.Flush()
}

// writeEvent writes one server-sent event. Multi-line data becomes one
// data field per line, which clients join back with newlines.
func writeEvent(w io.Writer, event, data string) error {
	var b strings.Builder
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", strings.TrimSuffix(line, "\r"))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
