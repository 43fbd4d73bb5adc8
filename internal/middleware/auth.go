package middleware

import (
	"context"
	"net/http"
	"strings"

	"devblog-api/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (string, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id string) (model.User, error)
}

type contextKey string

const currentUserContextKey contextKey = "current_user"

// AuthMiddleware resolves the request's bearer token to a live user
// record. The token only proves identity; the role used by RequireRole
// always comes from the store fetch done here, never from anything the
// client presented. A user deleted after issuance therefore stops
// authenticating immediately even though the token itself still
// verifies.
type AuthMiddleware struct {
	verifier tokenVerifier
	users    userLoader
}

func NewAuthMiddleware(verifier tokenVerifier, users userLoader) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthorized(w, "UNAUTHENTICATED", "missing or invalid authorization header")
			return
		}

		tokenString := strings.TrimSpace(header[7:])
		userID, err := m.verifier.Verify(tokenString)
		if err != nil {
			// Signature and expiry failures are not distinguished
			// to the client.
			writeUnauthorized(w, "UNAUTHENTICATED", "invalid or expired token")
			return
		}

		user, err := m.users.FindByID(r.Context(), userID)
		if err != nil {
			writeUnauthorized(w, "UNAUTHENTICATED", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserContextKey, user.Public())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route behind a minimum capability. The check
// runs against the store-resolved role RequireAuth put in the context.
func (m *AuthMiddleware) RequireRole(required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "UNAUTHENTICATED", "authentication required")
				return
			}

			if !user.Role.AtLeast(required) {
				writeUnauthorized(w, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func UserFromContext(ctx context.Context) (model.PublicUser, bool) {
	user, ok := ctx.Value(currentUserContextKey).(model.PublicUser)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, code string, message string) {
	status := http.StatusUnauthorized
	if code == "FORBIDDEN" {
		status = http.StatusForbidden
	}
	writeJSONError(w, status, code, message)
}
