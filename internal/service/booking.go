package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// PaymentGateway charges a payment token.
type PaymentGateway interface {
	Charge(ctx context.Context, token string, amount float64) error
}

// Inventory books every item of a trip and returns a confirmation code.
type Inventory interface {
	Book(ctx context.Context, tripID string) (string, error)
}

// BookingService charges the traveler and then books the trip.
type BookingService struct {
	gateway   PaymentGateway
	inventory Inventory
	log       *slog.Logger
}

// NewBookingService constructs a BookingService. A nil logger uses slog.Default.
func NewBookingService(gateway PaymentGateway, inventory Inventory, log *slog.Logger) *BookingService {
	if log == nil {
		log = slog.Default()
	}
	return &BookingService{gateway: gateway, inventory: inventory, log: log}
}

// Book charges req.TotalAmount and then books req.TripID.
//
// An empty payment token is declined before the gateway or inventory is
// contacted. A booking failure after a successful charge returns
// domain.ErrBookingFailed; the charge is not refunded.
func (s *BookingService) Book(ctx context.Context, req domain.BookingRequest) (domain.BookingReceipt, error) {
	req.TripID = strings.TrimSpace(req.TripID)
	if req.TripID == "" {
		return domain.BookingReceipt{}, fmt.Errorf("service.BookingService.Book: %w: trip_id is required", domain.ErrValidation)
	}
	if req.TotalAmount < 0 {
		return domain.BookingReceipt{}, fmt.Errorf("service.BookingService.Book: %w: total_amount must not be negative", domain.ErrValidation)
	}
	if strings.TrimSpace(req.PaymentToken) == "" {
		return domain.BookingReceipt{}, fmt.Errorf("service.BookingService.Book: %w: payment token is empty", domain.ErrPaymentDeclined)
	}

	if err := s.gateway.Charge(ctx, req.PaymentToken, req.TotalAmount); err != nil {
		return domain.BookingReceipt{}, fmt.Errorf("service.BookingService.Book: %w", err)
	}

	confirmation, err := s.inventory.Book(ctx, req.TripID)
	if err != nil {
		s.log.ErrorContext(ctx, "booking failed after payment", "trip_id", req.TripID, "error", err)
		return domain.BookingReceipt{}, fmt.Errorf("service.BookingService.Book: %w: %w", domain.ErrBookingFailed, err)
	}
	return domain.BookingReceipt{TripID: req.TripID, Confirmation: confirmation}, nil
}
