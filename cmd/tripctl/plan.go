package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/factory"
)

// planner is the slice of service.PlannerService the plan command drives.
type planner interface {
	Plan(ctx context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error)
}

func init() {
	var (
		req        domain.TripRequest
		start      string
		interests  []string
		activities []string
	)
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an itinerary and stream it to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(time.DateOnly, start)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
			req.StartDate = startDate
			req.Interests = interests
			req.Activities = activities

			cfg, err := config.LoadPipeline()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := factory.NewPlanner(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}
			return runPlan(ctx, p, req, cmd.OutOrStdout())
		},
	}
	f := planCmd.Flags()
	f.StringVar(&req.Destination, "destination", "", "Destination city or region (required)")
	f.IntVar(&req.DurationDays, "days", 3, "Trip length in days")
	f.StringVar(&start, "start", time.Now().Format(time.DateOnly), "First day of the trip (YYYY-MM-DD)")
	f.StringVar(&req.Budget, "budget", "", "Budget level, e.g. budget, moderate, luxury")
	f.StringSliceVar(&interests, "interest", nil, "Interest; repeat or comma-separate for several")
	f.StringSliceVar(&activities, "activity", nil, "Preferred activity; repeat or comma-separate for several")
	f.IntVar(&req.Travelers, "travelers", 1, "Party size")
	f.StringVar(&req.Accommodation, "accommodation", "", "Accommodation preference")
	_ = planCmd.MarkFlagRequired("destination")

	rootCmd.AddCommand(planCmd)
}

// runPlan streams the itinerary for req to w. An error fragment ends the
// stream and is returned as the command's error.
func runPlan(ctx context.Context, p planner, req domain.TripRequest, w io.Writer) error {
	seq, err := p.Plan(ctx, req)
	if err != nil {
		return err
	}
	wrote := false
	for f := range seq {
		if f.IsError() {
			return errors.New(f.Err)
		}
		if _, err := io.WriteString(w, f.Text); err != nil {
			return fmt.Errorf("write itinerary: %w", err)
		}
		wrote = true
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("plan interrupted: %w", err)
	}
	if wrote {
		_, _ = io.WriteString(w, "\n")
	}
	return nil
}
