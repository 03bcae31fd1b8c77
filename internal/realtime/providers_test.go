package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/realtime"
)

func TestTavilyClient_Search(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"Fado Night","url":"https://a.example","content":"Fado Night\nLive music"},
			{"title":"Jazz","url":"https://b.example","content":"Jazz in the park"}
		]}`))
	}))
	defer srv.Close()

	c := realtime.NewTavilyClient(realtime.NewHTTPClient(), srv.URL, "tavily-key")
	results, err := c.Search(context.Background(), "events in Lisbon", 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Fado Night\nLive music", results[0].Content)
	assert.Equal(t, "https://b.example", results[1].URL)
	assert.Equal(t, "tavily-key", got["api_key"])
	assert.Equal(t, "basic", got["search_depth"])
	assert.EqualValues(t, 5, got["max_results"])
	assert.Equal(t, "events in Lisbon", got["query"])
}

func TestTavilyClient_Search_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := realtime.NewTavilyClient(realtime.NewHTTPClient(), srv.URL, "bad")
	_, err := c.Search(context.Background(), "q", 5)

	require.ErrorContains(t, err, "401")
}

func TestGooglePlacesClient_TextSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "event Fado Night in Lisbon", r.URL.Query().Get("query"))
		assert.Equal(t, "event", r.URL.Query().Get("type"))
		assert.Equal(t, "maps-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"p1","name":"Casa de Fado","formatted_address":"Alfama"}]}`))
	}))
	defer srv.Close()

	c := realtime.NewGooglePlacesClient(realtime.NewHTTPClient(), srv.URL, "maps-key")
	places, err := c.TextSearch(context.Background(), "event Fado Night in Lisbon", "event")

	require.NoError(t, err)
	require.Equal(t, []realtime.Place{{PlaceID: "p1", Name: "Casa de Fado", Address: "Alfama"}}, places)
}

func TestGooglePlacesClient_TextSearch_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	c := realtime.NewGooglePlacesClient(realtime.NewHTTPClient(), srv.URL, "k")
	places, err := c.TextSearch(context.Background(), "nothing", "event")

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestGooglePlacesClient_TextSearch_Denied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
	}))
	defer srv.Close()

	c := realtime.NewGooglePlacesClient(realtime.NewHTTPClient(), srv.URL, "bad")
	_, err := c.TextSearch(context.Background(), "q", "event")

	require.ErrorContains(t, err, "REQUEST_DENIED")
}
