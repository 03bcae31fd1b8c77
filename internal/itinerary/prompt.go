// Package itinerary turns a trip request plus its real-time context into a
// prompt and relays the model's streamed answer as ordered fragments.
package itinerary

import (
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	noPreference = "no specific preference"
	notSpecified = "not specified"
)

var promptTmpl = template.Must(template.New("prompt").Parse(
	`You are a creative and friendly travel planning assistant. Present the plan as if you were a local friend guiding the traveler on an unforgettable journey.

## Trip
Design a {{.Days}}-day personalized itinerary for {{.Destination}}, starting on {{.StartDate}}.

## Traveler profile
- Budget: {{.Budget}}
- Interests: {{.Interests}}
- Preferred activities: {{.Activities}}
- Accommodation: {{.Accommodation}}
- Party size: {{.Travelers}}

## Real-time context
Use the following live information. Do not invent events that are not listed here.
{{.Context}}
## Instructions
Write exactly {{.Days}} day sections, in order, each starting with a level-three heading:
{{range .DayHeadings}}{{.}}
{{end}}
For every day suggest a balanced mix of famous attractions and hidden gems, must-try local food, and convenient transport between stops.
Adapt outdoor plans to the weather above and fit verified events into the matching day when they suit the traveler's interests.
Keep every recommendation within the stated budget.

## Tips
Finish with a short "### Tips" section covering accommodation ideas, local etiquette and anything the traveler should book in advance.
`))

type promptData struct {
	Days          int
	Destination   string
	StartDate     string
	Budget        string
	Interests     string
	Activities    string
	Accommodation string
	Travelers     string
	Context       string
	DayHeadings   []string
}

// BuildPrompt renders the model prompt for req and rc. It performs no I/O,
// and equal inputs always produce byte-identical output.
func BuildPrompt(req domain.TripRequest, rc domain.RealtimeContext) string {
	d := promptData{
		Days:          req.DurationDays,
		Destination:   req.Destination,
		StartDate:     req.StartDate.Format(time.DateOnly),
		Budget:        orDefault(req.Budget, notSpecified),
		Interests:     joinOrDefault(req.Interests, noPreference),
		Activities:    joinOrDefault(req.Activities, noPreference),
		Accommodation: orDefault(req.Accommodation, noPreference),
		Travelers:     notSpecified,
		Context:       rc.Lines(),
	}
	if req.Travelers > 0 {
		d.Travelers = strconv.Itoa(req.Travelers)
	}
	for i := 1; i <= req.DurationDays; i++ {
		d.DayHeadings = append(d.DayHeadings, "### Day "+strconv.Itoa(i))
	}

	var b strings.Builder
	// The template is static and every field is a string or int, so
	// execution into a strings.Builder cannot fail.
	_ = promptTmpl.Execute(&b, d)
	return b.String()
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func joinOrDefault(items []string, def string) string {
	var kept []string
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return def
	}
	return strings.Join(kept, ", ")
}
