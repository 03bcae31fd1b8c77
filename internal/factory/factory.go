// Package factory builds the long-lived collaborators shared by cmd/api and
// cmd/tripctl: the document stores and the planning pipeline.
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/realtime"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// Stores holds the repositories selected by STORE_DRIVER.
// Close releases the underlying connections and is always safe to call.
type Stores struct {
	Itineraries repo.ItineraryRepo
	Accounts    repo.AccountRepo
	Close       func()
}

// NewStores opens the store named by cfg.StoreDriver.
func NewStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		// pgxpool.New does not open connections; Ping verifies the DB is reachable.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("factory.NewStores: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("factory.NewStores: ping database: %w", err)
		}
		log.Info("database connection established")
		return &Stores{
			Itineraries: repo.NewItineraryRepo(pool),
			Accounts:    repo.NewAccountRepo(pool),
			Close:       pool.Close,
		}, nil

	case config.StoreFirestore:
		var opts []option.ClientOption
		if cfg.FirestoreCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
		}
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("factory.NewStores: firestore client: %w", err)
		}
		log.Info("firestore client ready", "project", cfg.FirestoreProjectID)
		return &Stores{
			Itineraries: repo.NewFirestoreItineraryRepo(client),
			Accounts:    repo.NewFirestoreAccountRepo(client),
			Close: func() {
				if err := client.Close(); err != nil {
					log.Warn("close firestore client", "error", err)
				}
			},
		}, nil

	case config.StoreMemory:
		log.Warn("using in-memory store; data is lost on restart")
		return &Stores{
			Itineraries: repo.NewMemoryItineraryRepo(),
			Accounts:    repo.NewMemoryAccountRepo(),
			Close:       func() {},
		}, nil
	}
	return nil, fmt.Errorf("factory.NewStores: unsupported store driver %q", cfg.StoreDriver)
}

// NewPlanner wires the planning pipeline: one shared HTTP client feeds the
// weather, search and places providers, whose results the aggregator joins
// before the relay streams Gemini output.
func NewPlanner(ctx context.Context, cfg config.Config, log *slog.Logger) (*service.PlannerService, error) {
	client := realtime.NewHTTPClient()

	weather := realtime.NewWeatherFetcher(client, cfg.WeatherAPIURL, cfg.WeatherAPIKey, log)
	events := realtime.NewEventFetcher(
		realtime.NewTavilyClient(client, cfg.TavilyAPIURL, cfg.TavilyAPIKey),
		realtime.NewGooglePlacesClient(client, cfg.PlacesAPIURL, cfg.GoogleAPIKey),
		log,
	)

	gen, err := itinerary.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("factory.NewPlanner: %w", err)
	}

	return service.NewPlannerService(
		realtime.NewAggregator(weather, events),
		itinerary.NewRelay(gen, log),
		log,
	), nil
}
