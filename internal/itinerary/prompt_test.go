package itinerary_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

func sampleRequest() domain.TripRequest {
	return domain.TripRequest{
		Destination:   "Kyoto",
		DurationDays:  3,
		Budget:        "moderate",
		StartDate:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Interests:     []string{"temples", "food"},
		Travelers:     2,
		Accommodation: "ryokan",
		Activities:    []string{"tea ceremony"},
	}
}

func sampleContext() domain.RealtimeContext {
	return domain.RealtimeContext{
		Destination: "Kyoto",
		WeatherInfo: "Current weather in Kyoto: Clear, Temperature: 18°C",
		EventsInfo:  "Verified Upcoming Events:\nTitle: Miyako Odori\nSnippet: Miyako Odori",
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	first := itinerary.BuildPrompt(sampleRequest(), sampleContext())
	for range 5 {
		assert.Equal(t, first, itinerary.BuildPrompt(sampleRequest(), sampleContext()))
	}
}

func TestBuildPrompt_Contents(t *testing.T) {
	p := itinerary.BuildPrompt(sampleRequest(), sampleContext())

	for _, want := range []string{
		"Design a 3-day personalized itinerary for Kyoto, starting on 2025-04-02.",
		"- Budget: moderate",
		"- Interests: temples, food",
		"- Preferred activities: tea ceremony",
		"- Accommodation: ryokan",
		"- Party size: 2",
		"- destination: Kyoto\n- weather_info: Current weather in Kyoto: Clear, Temperature: 18°C\n- events_info: Verified Upcoming Events:",
		"### Day 1\n### Day 2\n### Day 3\n",
	} {
		assert.Contains(t, p, want)
	}
	assert.NotContains(t, p, "### Day 4")
}

func TestBuildPrompt_Defaults(t *testing.T) {
	req := domain.TripRequest{
		Destination:  "Oslo",
		DurationDays: 1,
		StartDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Interests:    []string{" ", ""},
	}

	p := itinerary.BuildPrompt(req, sampleContext())

	assert.Contains(t, p, "- Budget: not specified")
	assert.Contains(t, p, "- Interests: no specific preference")
	assert.Contains(t, p, "- Preferred activities: no specific preference")
	assert.Contains(t, p, "- Accommodation: no specific preference")
	assert.Contains(t, p, "- Party size: not specified")
}

func TestBuildPrompt_DaySectionsFollowDuration(t *testing.T) {
	req := sampleRequest()
	req.DurationDays = 7

	p := itinerary.BuildPrompt(req, sampleContext())

	require.Equal(t, 7, strings.Count(p, "### Day "))
	assert.Contains(t, p, "Write exactly 7 day sections")
}
