package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Firestore layout:
//
//	users/{account_id}/itineraries/{auto_id}  {plan, timestamp, updated_at}
//	accounts/{email}                          {id, email, display_name, password_hash, created_at}
const (
	usersCollection       = "users"
	itinerariesCollection = "itineraries"
	accountsCollection    = "accounts"
)

type fsItinerary struct {
	Plan      map[string]any `firestore:"plan"`
	Timestamp time.Time      `firestore:"timestamp"`
	UpdatedAt time.Time      `firestore:"updated_at"`
}

type fsAccount struct {
	ID           string    `firestore:"id"`
	Email        string    `firestore:"email"`
	DisplayName  string    `firestore:"display_name"`
	PasswordHash string    `firestore:"password_hash"`
	CreatedAt    time.Time `firestore:"created_at"`
}

// fsItineraryRepo is the Firestore implementation of ItineraryRepo.
type fsItineraryRepo struct {
	client *firestore.Client
}

// NewFirestoreItineraryRepo constructs an ItineraryRepo over a Firestore client.
func NewFirestoreItineraryRepo(client *firestore.Client) ItineraryRepo {
	return &fsItineraryRepo{client: client}
}

func (r *fsItineraryRepo) collection(accountID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(accountID).Collection(itinerariesCollection)
}

// doc returns nil for ids Firestore cannot address.
func (r *fsItineraryRepo) doc(accountID, id string) *firestore.DocumentRef {
	if !validDocID(accountID) || !validDocID(id) {
		return nil
	}
	return r.collection(accountID).Doc(id)
}

func (r *fsItineraryRepo) Create(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error) {
	if !validDocID(accountID) {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.Create: invalid account id %q", accountID)
	}
	if plan == nil {
		plan = map[string]any{}
	}
	ref := r.collection(accountID).NewDoc()
	wr, err := ref.Set(ctx, map[string]any{
		"plan":       plan,
		"timestamp":  firestore.ServerTimestamp,
		"updated_at": firestore.ServerTimestamp,
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.Create: %w", err)
	}
	return domain.Itinerary{
		ID:        ref.ID,
		AccountID: accountID,
		Plan:      plan,
		CreatedAt: wr.UpdateTime,
		UpdatedAt: wr.UpdateTime,
	}, nil
}

func (r *fsItineraryRepo) GetByID(ctx context.Context, accountID, id string) (domain.Itinerary, error) {
	ref := r.doc(accountID, id)
	if ref == nil {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.GetByID: %w", domain.ErrNotFound)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.GetByID: %w", mapFirestoreErr(err))
	}
	it, err := decodeItinerary(accountID, snap)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.GetByID: %w", err)
	}
	return it, nil
}

// Update reads and writes inside one transaction so a missing document is
// detected before anything is written.
func (r *fsItineraryRepo) Update(ctx context.Context, accountID, id string, patch map[string]any) (domain.Itinerary, error) {
	ref := r.doc(accountID, id)
	if ref == nil {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.Update: %w", domain.ErrNotFound)
	}

	var merged domain.Itinerary
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapFirestoreErr(err)
		}
		current, err := decodeItinerary(accountID, snap)
		if err != nil {
			return err
		}

		updates := make([]firestore.Update, 0, len(patch)+1)
		for k, v := range patch {
			updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{"plan", k}, Value: v})
			current.Plan[k] = v
		}
		updates = append(updates, firestore.Update{Path: "updated_at", Value: firestore.ServerTimestamp})
		current.UpdatedAt = time.Now().UTC()
		merged = current
		return tx.Update(ref, updates)
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.fsItineraryRepo.Update: %w", err)
	}
	return merged, nil
}

func decodeItinerary(accountID string, snap *firestore.DocumentSnapshot) (domain.Itinerary, error) {
	var doc fsItinerary
	if err := snap.DataTo(&doc); err != nil {
		return domain.Itinerary{}, fmt.Errorf("decode itinerary: %w", err)
	}
	if doc.Plan == nil {
		doc.Plan = map[string]any{}
	}
	updated := doc.UpdatedAt
	if updated.IsZero() {
		updated = doc.Timestamp
	}
	return domain.Itinerary{
		ID:        snap.Ref.ID,
		AccountID: accountID,
		Plan:      doc.Plan,
		CreatedAt: doc.Timestamp,
		UpdatedAt: updated,
	}, nil
}

// fsAccountRepo is the Firestore implementation of AccountRepo.
// Documents are keyed by email so that Create enforces uniqueness.
type fsAccountRepo struct {
	client *firestore.Client
}

// NewFirestoreAccountRepo constructs an AccountRepo over a Firestore client.
func NewFirestoreAccountRepo(client *firestore.Client) AccountRepo {
	return &fsAccountRepo{client: client}
}

func (r *fsAccountRepo) Create(ctx context.Context, acct domain.Account, passwordHash string) error {
	if !validDocID(acct.Email) {
		return fmt.Errorf("repo.fsAccountRepo.Create: invalid email %q: %w", acct.Email, domain.ErrValidation)
	}
	_, err := r.client.Collection(accountsCollection).Doc(acct.Email).Create(ctx, fsAccount{
		ID:           acct.ID,
		Email:        acct.Email,
		DisplayName:  acct.DisplayName,
		PasswordHash: passwordHash,
		CreatedAt:    acct.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.fsAccountRepo.Create: %w", mapFirestoreErr(err))
	}
	return nil
}

func (r *fsAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, string, error) {
	if !validDocID(email) {
		return domain.Account{}, "", fmt.Errorf("repo.fsAccountRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	snap, err := r.client.Collection(accountsCollection).Doc(email).Get(ctx)
	if err != nil {
		return domain.Account{}, "", fmt.Errorf("repo.fsAccountRepo.GetByEmail: %w", mapFirestoreErr(err))
	}
	var doc fsAccount
	if err := snap.DataTo(&doc); err != nil {
		return domain.Account{}, "", fmt.Errorf("repo.fsAccountRepo.GetByEmail: decode: %w", err)
	}
	return domain.Account{
		ID:          doc.ID,
		Email:       doc.Email,
		DisplayName: doc.DisplayName,
		CreatedAt:   doc.CreatedAt,
	}, doc.PasswordHash, nil
}

// mapFirestoreErr translates gRPC status codes into domain errors.
func mapFirestoreErr(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return domain.ErrNotFound
	case codes.AlreadyExists:
		return domain.ErrConflict
	default:
		return err
	}
}

// validDocID reports whether id can be used as a single document id.
func validDocID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.Contains(id, "/")
}
