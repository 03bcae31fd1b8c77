package domain

// BookingRequest asks for payment and final booking of a saved trip.
// PaymentToken is an opaque token from the payment provider's client SDK.
type BookingRequest struct {
	TripID       string
	PaymentToken string
	TotalAmount  float64
}

// BookingReceipt confirms a completed booking.
type BookingReceipt struct {
	TripID       string
	Confirmation string
}
