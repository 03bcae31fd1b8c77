package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondError maps a service error onto the API's error envelope.
// notFound is the message used for domain.ErrNotFound, since only the
// handler knows what was being looked up.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFound)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "an account with this email already exists")
	case errors.Is(err, domain.ErrPaymentDeclined):
		writeError(w, http.StatusBadRequest, "payment_declined", "Payment failed. Please try again.")
	case errors.Is(err, domain.ErrBookingFailed):
		s.log.ErrorContext(r.Context(), "booking failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "booking_failed", "Booking failed.")
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part that follows a wrapped
// sentinel, e.g.
// "service.ItineraryService.Update: validation error: title must not be blank"
// becomes "title must not be blank".
func unwrapMessage(err error, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// decodeJSON reads a JSON request body into dst. With strict set, unknown
// fields are rejected. It writes the error response itself and reports
// whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid request body: "+err.Error())
		return false
	}
	return true
}
