package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// AccountStore persists accounts and their password hashes.
// Create returns domain.ErrConflict when the email is already registered;
// GetByEmail returns domain.ErrNotFound for an unknown email.
type AccountStore interface {
	Create(ctx context.Context, acct domain.Account, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (domain.Account, string, error)
}

// maxPasswordBytes is the longest password bcrypt accepts. It counts bytes,
// not characters.
const maxPasswordBytes = 72

// dummyHash is compared against on unknown emails so that failed sign-ins
// cost the same whether or not the account exists.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		panic("identity: generate dummy hash: " + err.Error())
	}
	return h
})

type signupInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Provider creates accounts, signs callers in and verifies their tokens.
type Provider struct {
	store    AccountStore
	tokens   *TokenIssuer
	validate *validator.Validate
	compare  func(hash, password []byte) error
}

// NewProvider constructs a Provider.
func NewProvider(store AccountStore, tokens *TokenIssuer) *Provider {
	return &Provider{store: store, tokens: tokens, validate: validator.New(), compare: bcrypt.CompareHashAndPassword}
}

// CreateAccount registers a new account. Malformed input wraps
// domain.ErrValidation and a duplicate email wraps domain.ErrConflict.
func (p *Provider) CreateAccount(ctx context.Context, email, password, displayName string) (domain.Account, error) {
	email = normalizeEmail(email)
	if err := p.validate.Struct(signupInput{Email: email, Password: password}); err != nil {
		return domain.Account{}, fmt.Errorf("identity.CreateAccount: %w: %s", domain.ErrValidation, describe(err))
	}
	if len(password) > maxPasswordBytes {
		return domain.Account{}, fmt.Errorf("identity.CreateAccount: %w: password must be at most %d bytes",
			domain.ErrValidation, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Account{}, fmt.Errorf("identity.CreateAccount: hash password: %w", err)
	}

	acct := domain.Account{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.store.Create(ctx, acct, string(hash)); err != nil {
		return domain.Account{}, fmt.Errorf("identity.CreateAccount: %w", err)
	}
	return acct, nil
}

// SignIn checks the credentials and issues a token. Unknown emails and
// wrong passwords both wrap domain.ErrUnauthorized.
func (p *Provider) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	acct, hash, err := p.store.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		_ = p.compare(dummyHash(), []byte(password))
		return domain.Session{}, fmt.Errorf("identity.SignIn: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("identity.SignIn: %w", err)
	}
	if err := p.compare([]byte(hash), []byte(password)); err != nil {
		return domain.Session{}, fmt.Errorf("identity.SignIn: %w", domain.ErrUnauthorized)
	}

	token, exp, err := p.tokens.Issue(acct.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("identity.SignIn: %w", err)
	}
	return domain.Session{AccountID: acct.ID, IDToken: token, ExpiresAt: exp}, nil
}

// VerifyToken returns the account id the token was issued for.
func (p *Provider) VerifyToken(_ context.Context, token string) (string, error) {
	return p.tokens.Verify(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// describe turns validator errors into a short client-facing message.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "email":
			msgs = append(msgs, "email is malformed")
		case "min":
			msgs = append(msgs, strings.ToLower(fe.Field())+" must be at least "+fe.Param()+" characters")
		default:
			msgs = append(msgs, strings.ToLower(fe.Field())+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
