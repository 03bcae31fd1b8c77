package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/middleware"
)

const itineraryNotFound = "Itinerary not found or you do not have permission to view it."

type saveItineraryRequest struct {
	Plan map[string]any `json:"plan"`
}

type saveItineraryResponse struct {
	Message   string    `json:"message"`
	TripID    string    `json:"trip_id"`
	Timestamp time.Time `json:"timestamp"`
}

type itineraryResponse struct {
	TripID    string         `json:"trip_id"`
	Plan      map[string]any `json:"plan"`
	Timestamp time.Time      `json:"timestamp"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// updateItineraryRequest is the POST /update_itinerary body. Updates only
// accepts the named fields below; anything else is rejected.
type updateItineraryRequest struct {
	TripID  string           `json:"trip_id"`
	Updates itineraryUpdates `json:"updates"`
}

type itineraryUpdates struct {
	Title        *string             `json:"title"`
	Destination  *string             `json:"destination"`
	DurationDays *int                `json:"duration_days"`
	Budget       *string             `json:"budget"`
	StartDate    *openapi_types.Date `json:"start_date"`
	TotalCost    *float64            `json:"total_cost"`
	Notes        *string             `json:"notes"`
}

func (u itineraryUpdates) toDomain() domain.ItineraryUpdate {
	upd := domain.ItineraryUpdate{
		Title:        u.Title,
		Destination:  u.Destination,
		DurationDays: u.DurationDays,
		Budget:       u.Budget,
		TotalCost:    u.TotalCost,
		Notes:        u.Notes,
	}
	if u.StartDate != nil {
		t := u.StartDate.Time
		upd.StartDate = &t
	}
	return upd
}

func itineraryToResponse(it domain.Itinerary) itineraryResponse {
	return itineraryResponse{
		TripID:    it.ID,
		Plan:      it.Plan,
		Timestamp: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// SaveItinerary handles POST /itinerary/save.
func (s *Server) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.AccountID(r.Context())

	var body saveItineraryRequest
	if !decodeJSON(w, r, &body, false) {
		return
	}

	it, err := s.itineraries.Save(r.Context(), uid, body.Plan)
	if err != nil {
		s.respondError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, saveItineraryResponse{
		Message:   "Itinerary saved successfully",
		TripID:    it.ID,
		Timestamp: it.CreatedAt,
	})
}

// GetItinerary handles GET /itinerary/{trip_id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.AccountID(r.Context())

	it, err := s.itineraries.Get(r.Context(), uid, chi.URLParam(r, "trip_id"))
	if err != nil {
		s.respondError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// UpdateItinerary handles POST /update_itinerary.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.AccountID(r.Context())

	var body updateItineraryRequest
	if !decodeJSON(w, r, &body, true) {
		return
	}

	if _, err := s.itineraries.Update(r.Context(), uid, body.TripID, body.Updates.toDomain()); err != nil {
		s.respondError(w, r, err, "Itinerary not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Itinerary updated successfully."})
}
