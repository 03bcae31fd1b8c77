package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-planner/internal/domain"
)

// AccountRepo defines the persistence operations for accounts.
// Emails are stored exactly as given; callers normalise them first.
type AccountRepo interface {
	// Create inserts acct with its password hash.
	// Returns domain.ErrConflict if the email or id is already taken.
	Create(ctx context.Context, acct domain.Account, passwordHash string) error

	// GetByEmail returns the account and its password hash.
	// Returns domain.ErrNotFound if no account uses that email.
	GetByEmail(ctx context.Context, email string) (domain.Account, string, error)
}

// pgAccountRepo is the Postgres implementation of AccountRepo.
type pgAccountRepo struct {
	db db
}

// NewAccountRepo constructs an AccountRepo backed by the provided db connection.
func NewAccountRepo(db db) AccountRepo {
	return &pgAccountRepo{db: db}
}

func (r *pgAccountRepo) Create(ctx context.Context, acct domain.Account, passwordHash string) error {
	const q = `
		INSERT INTO accounts (id, email, display_name, password_hash, created_at)
		VALUES (@id, @email, @display_name, @password_hash, @created_at)`

	args := pgx.NamedArgs{
		"id":            acct.ID,
		"email":         acct.Email,
		"display_name":  acct.DisplayName,
		"password_hash": passwordHash,
		"created_at":    acct.CreatedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repo.AccountRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("repo.AccountRepo.Create: %w", err)
	}
	return nil
}

func (r *pgAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, string, error) {
	const q = `
		SELECT id, email, display_name, password_hash, created_at
		FROM accounts
		WHERE email = @email`

	var (
		acct domain.Account
		hash string
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}).
		Scan(&acct.ID, &acct.Email, &acct.DisplayName, &hash, &acct.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, "", fmt.Errorf("repo.AccountRepo.GetByEmail: %w", domain.ErrNotFound)
		}
		return domain.Account{}, "", fmt.Errorf("repo.AccountRepo.GetByEmail: %w", err)
	}
	return acct, hash, nil
}
