package itinerary

import (
	"context"
	"iter"
	"log/slog"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
)

// Relay submits the itinerary prompt to a Generator and forwards its output
// as domain fragments.
type Relay struct {
	gen Generator
	log *slog.Logger
}

// NewRelay constructs a Relay. A nil logger uses slog.Default.
func NewRelay(gen Generator, log *slog.Logger) *Relay {
	if log == nil {
		log = slog.Default()
	}
	return &Relay{gen: gen, log: log}
}

// Stream returns a lazy, single-use sequence of fragments for req and rc.
// Fragments arrive in model order. A generator failure, before or during
// streaming, ends the sequence with one error fragment.
//
// If the consumer stops ranging or ctx is cancelled, the relay stops
// pulling from the generator and yields nothing further.
func (r *Relay) Stream(ctx context.Context, req domain.TripRequest, rc domain.RealtimeContext) iter.Seq[domain.Fragment] {
	prompt := BuildPrompt(req, rc)
	return func(yield func(domain.Fragment) bool) {
		for text, err := range r.gen.GenerateStream(ctx, prompt) {
			if ctx.Err() != nil {
				r.log.InfoContext(ctx, "itinerary stream abandoned", "destination", req.Destination)
				return
			}
			if err != nil {
				r.log.ErrorContext(ctx, "itinerary stream failed", "destination", req.Destination, "error", err)
				metrics.StreamErrors.Inc()
				yield(domain.Fragment{Err: "An error occurred: " + err.Error()})
				return
			}
			if text == "" {
				continue
			}
			metrics.StreamFragments.Inc()
			if !yield(domain.Fragment{Text: text}) {
				return
			}
		}
	}
}
