package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
)

const (
	// maxEventResults is the number of search hits considered as candidates.
	maxEventResults = 5

	// titleRunes bounds a candidate title when the snippet has no line break.
	titleRunes = 50

	// eventPlaceType filters places lookups that validate a candidate.
	eventPlaceType = "event"
)

// Fallbacks for the events summary.
const (
	EventsNoneVerified = "No verified, upcoming events found. The AI can still create an itinerary based on other interests."
	EventsUnavailable  = "Events data is unavailable or could not be verified."
)

// EventFetcher finds upcoming events with a web search and keeps only the
// candidates that an independent places lookup confirms.
type EventFetcher struct {
	search Searcher
	places PlacesLookup
	log    *slog.Logger
}

// NewEventFetcher constructs an EventFetcher. A nil logger uses slog.Default.
func NewEventFetcher(search Searcher, places PlacesLookup, log *slog.Logger) *EventFetcher {
	if log == nil {
		log = slog.Default()
	}
	return &EventFetcher{search: search, places: places, log: log}
}

// Fetch returns the verified events for place around start as one
// multi-paragraph block, or a fallback string. It never fails.
//
// Candidates are validated concurrently; the output keeps the search rank
// order regardless of which lookup finishes first.
func (f *EventFetcher) Fetch(ctx context.Context, place string, start time.Time) string {
	query := fmt.Sprintf("Upcoming events, festivals, and concerts in %s from %s for official sources.",
		place, start.Format(time.DateOnly))

	results, err := f.search.Search(ctx, query, maxEventResults)
	if err != nil {
		f.log.WarnContext(ctx, "event search failed", "place", place, "error", err)
		metrics.UpstreamFallbacks.WithLabelValues(metrics.SourceSearch).Inc()
		return EventsUnavailable
	}
	if len(results) > maxEventResults {
		results = results[:maxEventResults]
	}

	candidates := make([]domain.EventCandidate, len(results))
	var g errgroup.Group
	for i, r := range results {
		snippet := r.Content
		if snippet == "" {
			snippet = "No content"
		}
		candidates[i] = domain.EventCandidate{Title: eventTitle(snippet), Snippet: snippet}
		title := candidates[i].Title
		g.Go(func() error {
			candidates[i].Validated = f.validate(ctx, title, place)
			return nil
		})
	}
	_ = g.Wait() // validate never returns an error

	validated := lo.Filter(candidates, func(c domain.EventCandidate, _ int) bool { return c.Validated })
	if len(validated) == 0 {
		return EventsNoneVerified
	}

	blocks := lo.Map(validated, func(c domain.EventCandidate, _ int) string {
		return fmt.Sprintf("Title: %s\nSnippet: %s", c.Title, c.Snippet)
	})
	return "Verified Upcoming Events:\n" + strings.Join(blocks, "\n\n")
}

// validate reports whether the places provider knows an event named title
// in place. A failed lookup only drops this candidate.
func (f *EventFetcher) validate(ctx context.Context, title, place string) bool {
	matches, err := f.places.TextSearch(ctx, fmt.Sprintf("event %s in %s", title, place), eventPlaceType)
	if err != nil {
		f.log.WarnContext(ctx, "event validation failed", "title", title, "place", place, "error", err)
		metrics.UpstreamFallbacks.WithLabelValues(metrics.SourcePlaces).Inc()
		return false
	}
	return len(matches) > 0
}

// eventTitle derives a short title from a search snippet: the first line
// when the snippet spans several lines, otherwise its first 50 characters.
func eventTitle(snippet string) string {
	if first, _, ok := strings.Cut(snippet, "\n"); ok {
		return strings.TrimSpace(first)
	}
	if r := []rune(snippet); len(r) > titleRunes {
		return string(r[:titleRunes])
	}
	return snippet
}
