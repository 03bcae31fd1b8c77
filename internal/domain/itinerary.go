package domain

import "time"

// Itinerary is a saved plan owned by one account.
// Plan is opaque to the service: it is stored and returned as a whole and
// only ever modified by a top-level shallow merge (see ItineraryUpdate).
type Itinerary struct {
	ID        string
	AccountID string
	Plan      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItineraryUpdate is a partial itinerary record. Nil fields are left
// untouched; set fields overwrite the plan key of the same name.
type ItineraryUpdate struct {
	Title        *string
	Destination  *string
	DurationDays *int
	Budget       *string
	StartDate    *time.Time
	TotalCost    *float64
	Notes        *string
}

// IsEmpty reports whether the update sets no field at all.
func (u ItineraryUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Fields returns the plan keys written by this update and their new values.
// Keys match the JSON names used by the API.
func (u ItineraryUpdate) Fields() map[string]any {
	out := make(map[string]any)
	if u.Title != nil {
		out["title"] = *u.Title
	}
	if u.Destination != nil {
		out["destination"] = *u.Destination
	}
	if u.DurationDays != nil {
		out["duration_days"] = *u.DurationDays
	}
	if u.Budget != nil {
		out["budget"] = *u.Budget
	}
	if u.StartDate != nil {
		out["start_date"] = u.StartDate.Format(time.DateOnly)
	}
	if u.TotalCost != nil {
		out["total_cost"] = *u.TotalCost
	}
	if u.Notes != nil {
		out["notes"] = *u.Notes
	}
	return out
}
