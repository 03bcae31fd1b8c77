// Package booking holds the simulated payment gateway and travel inventory
// used by the book_trip flow. Neither talks to a real provider.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// SimulatedGateway accepts any non-blank payment token.
type SimulatedGateway struct {
	log *slog.Logger
}

// NewSimulatedGateway constructs a SimulatedGateway. A nil logger uses slog.Default.
func NewSimulatedGateway(log *slog.Logger) *SimulatedGateway {
	if log == nil {
		log = slog.Default()
	}
	return &SimulatedGateway{log: log}
}

// Charge simulates charging amount against token. A blank token is
// declined with domain.ErrPaymentDeclined.
func (g *SimulatedGateway) Charge(ctx context.Context, token string, amount float64) error {
	if strings.TrimSpace(token) == "" {
		g.log.WarnContext(ctx, "payment declined", "reason", "empty token", "amount", amount)
		return fmt.Errorf("booking.Charge: %w", domain.ErrPaymentDeclined)
	}
	g.log.InfoContext(ctx, "payment accepted", "amount", amount)
	return nil
}

// SimulatedInventory confirms every booking.
type SimulatedInventory struct {
	log *slog.Logger
}

// NewSimulatedInventory constructs a SimulatedInventory. A nil logger uses slog.Default.
func NewSimulatedInventory(log *slog.Logger) *SimulatedInventory {
	if log == nil {
		log = slog.Default()
	}
	return &SimulatedInventory{log: log}
}

// Book reserves every item of the trip and returns a confirmation code.
func (i *SimulatedInventory) Book(ctx context.Context, tripID string) (string, error) {
	confirmation := uuid.NewString()
	i.log.InfoContext(ctx, "trip booked", "trip_id", tripID, "confirmation", confirmation)
	return confirmation, nil
}
