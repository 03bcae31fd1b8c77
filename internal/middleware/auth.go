package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// IDTokenHeader carries the caller's identity token. It is a raw token,
// not an Authorization bearer value.
const IDTokenHeader = "id-token"

type ctxKey int

const accountIDKey ctxKey = iota

// TokenVerifier resolves an identity token to an account id.
type TokenVerifier interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// NewAuthenticator returns a middleware that requires a valid identity token
// in the id-token header. Requests without one are answered with 401 and
// never reach the next handler. The account id is stored on the request
// context; read it with AccountID.
func NewAuthenticator(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := verifier.Authenticate(r.Context(), r.Header.Get(IDTokenHeader))
			if err != nil {
				log.DebugContext(r.Context(), "authentication failed", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing id-token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), uid)))
		})
	}
}

// WithAccountID returns a copy of ctx carrying the authenticated account id.
func WithAccountID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, accountIDKey, uid)
}

// AccountID returns the authenticated account id stored by NewAuthenticator.
func AccountID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(accountIDKey).(string)
	return uid, ok && uid != ""
}

// writeError writes the API's JSON error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
