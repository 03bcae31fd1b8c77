package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (or does not belong to the calling account).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, duration below one day).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when an identity token is missing, malformed,
// expired, or when sign-in credentials do not match.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when creating a resource that already exists,
// such as an account for an email that is already registered.
var ErrConflict = errors.New("conflict")

// ErrPaymentDeclined is returned when the payment gateway rejects a charge.
var ErrPaymentDeclined = errors.New("payment declined")

// ErrBookingFailed is returned when the travel inventory cannot confirm a
// booking after payment has already succeeded. No refund is attempted.
var ErrBookingFailed = errors.New("booking failed")
