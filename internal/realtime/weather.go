package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/pkordes/trip-planner/internal/metrics"
)

// WeatherFallback replaces the weather summary whenever the provider fails.
const WeatherFallback = "Weather data unavailable."

// WeatherFetcher reads current conditions from a WeatherAPI.com compatible
// endpoint (GET {baseURL}/current.json).
type WeatherFetcher struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	log     *slog.Logger
}

// NewWeatherFetcher constructs a WeatherFetcher. A nil logger uses slog.Default.
func NewWeatherFetcher(client *resty.Client, baseURL, apiKey string, log *slog.Logger) *WeatherFetcher {
	if log == nil {
		log = slog.Default()
	}
	return &WeatherFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
	}
}

// Fetch returns a one-line summary such as
// "Current weather in Lisbon: Sunny, Temperature: 21.5°C".
// Transport errors, non-2xx statuses and bodies without the expected fields
// all yield WeatherFallback.
func (f *WeatherFetcher) Fetch(ctx context.Context, place string) string {
	summary, err := f.fetch(ctx, place)
	if err != nil {
		f.log.WarnContext(ctx, "weather lookup failed", "place", place, "error", err)
		metrics.UpstreamFallbacks.WithLabelValues(metrics.SourceWeather).Inc()
		return WeatherFallback
	}
	return summary
}

func (f *WeatherFetcher) fetch(ctx context.Context, place string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": f.apiKey,
			"q":   place,
			"aqi": "no", // air quality detail is not used
		}).
		Get(f.baseURL + "/current.json")
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("malformed response body")
	}
	temp := gjson.GetBytes(body, "current.temp_c")
	condition := gjson.GetBytes(body, "current.condition.text")
	if temp.Type != gjson.Number {
		return "", fmt.Errorf("response has no numeric current.temp_c")
	}
	if strings.TrimSpace(condition.String()) == "" {
		return "", fmt.Errorf("response has no current.condition.text")
	}

	return fmt.Sprintf("Current weather in %s: %s, Temperature: %s°C",
		place, condition.String(), strconv.FormatFloat(temp.Float(), 'f', -1, 64)), nil
}
