// Package realtime gathers the real-time context for a trip request:
// current weather and verified local events, fetched concurrently from
// third-party providers. Provider failures never escape this package; they
// are replaced by fixed fallback strings.
package realtime

import (
	"github.com/go-resty/resty/v2"
)

// NewHTTPClient returns the resty client shared by every provider of the
// pipeline. Weather, search and places calls reuse its connection pool.
// No timeout is set beyond the transport defaults.
func NewHTTPClient() *resty.Client {
	return resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "trip-planner/1.0")
}
