package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// IdentityProvider issues accounts and tokens.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (domain.Account, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

// AccountService delegates signup, login and token checks to the identity provider.
type AccountService struct {
	idp IdentityProvider
}

// NewAccountService constructs an AccountService.
func NewAccountService(idp IdentityProvider) *AccountService {
	return &AccountService{idp: idp}
}

// Signup creates an account. Returns domain.ErrValidation for malformed
// credentials and domain.ErrConflict when the email is taken.
func (s *AccountService) Signup(ctx context.Context, email, password, displayName string) (domain.Account, error) {
	acct, err := s.idp.CreateAccount(ctx, email, password, displayName)
	if err != nil {
		return domain.Account{}, fmt.Errorf("service.AccountService.Signup: %w", err)
	}
	return acct, nil
}

// Login exchanges credentials for an identity token.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	sess, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AccountService.Login: %w", err)
	}
	return sess, nil
}

// Authenticate returns the account id behind token.
// Returns domain.ErrUnauthorized for a missing, malformed or expired token.
func (s *AccountService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("service.AccountService.Authenticate: %w: missing token", domain.ErrUnauthorized)
	}
	uid, err := s.idp.VerifyToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("service.AccountService.Authenticate: %w", err)
	}
	return uid, nil
}
