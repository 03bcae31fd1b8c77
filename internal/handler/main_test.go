package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// Test doubles for the handler's consumer interfaces.
// Set only the method fields your test needs.

type mockPlanner struct {
	plan func(ctx context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error)
}

func (m *mockPlanner) Plan(ctx context.Context, req domain.TripRequest) (iter.Seq[domain.Fragment], error) {
	return m.plan(ctx, req)
}

type mockAccounts struct {
	signup       func(ctx context.Context, email, password, displayName string) (domain.Account, error)
	login        func(ctx context.Context, email, password string) (domain.Session, error)
	authenticate func(ctx context.Context, token string) (string, error)
}

func (m *mockAccounts) Signup(ctx context.Context, email, password, displayName string) (domain.Account, error) {
	return m.signup(ctx, email, password, displayName)
}
func (m *mockAccounts) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockAccounts) Authenticate(ctx context.Context, token string) (string, error) {
	if m.authenticate == nil {
		return tokenAuth(ctx, token)
	}
	return m.authenticate(ctx, token)
}

type mockItineraries struct {
	save   func(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error)
	get    func(ctx context.Context, accountID, tripID string) (domain.Itinerary, error)
	update func(ctx context.Context, accountID, tripID string, upd domain.ItineraryUpdate) (domain.Itinerary, error)
}

func (m *mockItineraries) Save(ctx context.Context, accountID string, plan map[string]any) (domain.Itinerary, error) {
	return m.save(ctx, accountID, plan)
}
func (m *mockItineraries) Get(ctx context.Context, accountID, tripID string) (domain.Itinerary, error) {
	return m.get(ctx, accountID, tripID)
}
func (m *mockItineraries) Update(ctx context.Context, accountID, tripID string, upd domain.ItineraryUpdate) (domain.Itinerary, error) {
	return m.update(ctx, accountID, tripID, upd)
}

type mockBookings struct {
	book func(ctx context.Context, req domain.BookingRequest) (domain.BookingReceipt, error)
}

func (m *mockBookings) Book(ctx context.Context, req domain.BookingRequest) (domain.BookingReceipt, error) {
	return m.book(ctx, req)
}

var (
	_ handler.Planner     = (*mockPlanner)(nil)
	_ handler.Accounts    = (*mockAccounts)(nil)
	_ handler.Itineraries = (*mockItineraries)(nil)
	_ handler.Bookings    = (*mockBookings)(nil)
)

const (
	testToken   = "valid-token"
	testAccount = "acct-1"
)

// tokenAuth accepts only testToken.
func tokenAuth(_ context.Context, token string) (string, error) {
	if token == testToken {
		return testAccount, nil
	}
	return "", domain.ErrUnauthorized
}

// deps collects the mocks for one test. Nil fields get empty mocks.
type deps struct {
	planner     *mockPlanner
	accounts    *mockAccounts
	itineraries *mockItineraries
	bookings    *mockBookings
}

// newTestRouter wires a Server with the given mocks exactly as main.go does.
func newTestRouter(d deps) http.Handler {
	if d.planner == nil {
		d.planner = &mockPlanner{}
	}
	if d.accounts == nil {
		d.accounts = &mockAccounts{}
	}
	if d.itineraries == nil {
		d.itineraries = &mockItineraries{}
	}
	if d.bookings == nil {
		d.bookings = &mockBookings{}
	}
	return handler.NewServer(d.planner, d.accounts, d.itineraries, d.bookings, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request through h. A non-empty token is set as the id-token header.
func do(h http.Handler, method, path, token string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("id-token", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// errorCode decodes the error envelope and returns its code.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}
