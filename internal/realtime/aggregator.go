package realtime

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/internal/domain"
)

// WeatherSource produces the weather summary for a place. It never fails.
type WeatherSource interface {
	Fetch(ctx context.Context, place string) string
}

// EventSource produces the events summary for a place and date. It never fails.
type EventSource interface {
	Fetch(ctx context.Context, place string, start time.Time) string
}

// Aggregator joins the weather and events summaries into one RealtimeContext.
type Aggregator struct {
	weather WeatherSource
	events  EventSource
}

// NewAggregator constructs an Aggregator over the two sources.
func NewAggregator(weather WeatherSource, events EventSource) *Aggregator {
	return &Aggregator{weather: weather, events: events}
}

// Aggregate runs both fetches concurrently and waits for both.
// Neither fetch can cancel the other: each source already turns its own
// failures into fallback text, so the group never sees an error.
func (a *Aggregator) Aggregate(ctx context.Context, place string, start time.Time) domain.RealtimeContext {
	rc := domain.RealtimeContext{Destination: place}

	var g errgroup.Group
	g.Go(func() error {
		rc.WeatherInfo = a.weather.Fetch(ctx, place)
		return nil
	})
	g.Go(func() error {
		rc.EventsInfo = a.events.Fetch(ctx, place, start)
		return nil
	})
	_ = g.Wait()

	if rc.WeatherInfo == "" {
		rc.WeatherInfo = WeatherFallback
	}
	if rc.EventsInfo == "" {
		rc.EventsInfo = EventsUnavailable
	}
	return rc
}
