// Package domain contains the core data types for the trip planner.
// Everything here is request-scoped: constructed, used once, and discarded.
// The package only depends on the standard library.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// TripRequest carries the traveller's planning parameters.
// StartDate is a calendar date; its clock component is always midnight UTC.
type TripRequest struct {
	Destination   string
	DurationDays  int
	Budget        string
	StartDate     time.Time
	Interests     []string
	Travelers     int // 0 when the party size was not given
	Accommodation string
	Activities    []string
}

// RealtimeContext is the aggregated real-time data for one request.
// WeatherInfo and EventsInfo are never empty: upstream failures are
// represented by fallback strings, not by missing values.
type RealtimeContext struct {
	Destination string
	WeatherInfo string
	EventsInfo  string
}

// Lines renders the context as the bullet list embedded in the AI prompt.
// Field order is fixed: destination, weather_info, events_info.
func (c RealtimeContext) Lines() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- destination: %s\n", c.Destination)
	fmt.Fprintf(&b, "- weather_info: %s\n", c.WeatherInfo)
	fmt.Fprintf(&b, "- events_info: %s\n", c.EventsInfo)
	return b.String()
}

// EventCandidate is a search result considered for the events summary.
// Only candidates with Validated set survive into RealtimeContext.
type EventCandidate struct {
	Title     string
	Snippet   string
	Validated bool
}
