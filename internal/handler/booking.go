package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

type bookTripRequest struct {
	TripID       string  `json:"trip_id"`
	PaymentToken string  `json:"payment_token"`
	TotalAmount  float64 `json:"total_amount"`
}

type bookTripResponse struct {
	Message      string `json:"message"`
	TripID       string `json:"trip_id"`
	Confirmation string `json:"confirmation"`
}

// BookTrip handles POST /book_trip.
// A declined payment answers 400; a booking failure after payment answers 500.
func (s *Server) BookTrip(w http.ResponseWriter, r *http.Request) {
	var body bookTripRequest
	if !decodeJSON(w, r, &body, false) {
		return
	}

	receipt, err := s.bookings.Book(r.Context(), domain.BookingRequest{
		TripID:       body.TripID,
		PaymentToken: body.PaymentToken,
		TotalAmount:  body.TotalAmount,
	})
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, bookTripResponse{
		Message:      "Trip booked successfully!",
		TripID:       receipt.TripID,
		Confirmation: receipt.Confirmation,
	})
}
