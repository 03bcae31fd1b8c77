package realtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Place is one match returned by a places lookup.
type Place struct {
	PlaceID string
	Name    string
	Address string
}

// PlacesLookup searches a maps provider by free text, filtered by a place type.
type PlacesLookup interface {
	TextSearch(ctx context.Context, query, placeType string) ([]Place, error)
}

// GooglePlacesClient is a PlacesLookup backed by the Google Places text search API.
type GooglePlacesClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

// NewGooglePlacesClient constructs a GooglePlacesClient using the shared HTTP client.
func NewGooglePlacesClient(client *resty.Client, baseURL, apiKey string) *GooglePlacesClient {
	return &GooglePlacesClient{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID          string `json:"place_id"`
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// TextSearch returns the matches for query. ZERO_RESULTS is not an error.
func (c *GooglePlacesClient) TextSearch(ctx context.Context, query, placeType string) ([]Place, error) {
	var out placesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query": query,
			"type":  placeType,
			"key":   c.apiKey,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Get(c.baseURL + "/textsearch/json")
	if err != nil {
		return nil, fmt.Errorf("realtime.GooglePlacesClient.TextSearch: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("realtime.GooglePlacesClient.TextSearch: unexpected status %d", resp.StatusCode())
	}
	switch out.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("realtime.GooglePlacesClient.TextSearch: %s: %s", out.Status, out.ErrorMessage)
	}

	places := make([]Place, 0, len(out.Results))
	for _, r := range out.Results {
		places = append(places, Place{PlaceID: r.PlaceID, Name: r.Name, Address: r.FormattedAddress})
	}
	return places, nil
}
