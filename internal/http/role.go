package http

import (
	"context"
	"net/http"

	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IRoleStore encompasses all manners by which role assignments may be read.
type IRoleStore interface {
	Roles(context.Context, uuid.UUID) (roles.Set, error)
}

// RequireRole builds middleware that rejects requests whose session user does
// not hold the specified role. A role-store failure is treated as the user
// holding no roles; it is logged and never surfaced to the client as an
// authentication failure.
func RequireRole(logger *zap.Logger, store IRoleStore, role roles.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess, ok := session.FromContext(r.Context())
				if !ok {
					ErrUnauthorized(w)
					return
				}

				set, err := store.Roles(r.Context(), sess.User.ID)
				if err != nil {
					logger.Warn(
						"role lookup failed; treating user as role-less",
						zap.Stringer("user-id", sess.User.ID),
						zap.Error(err),
					)
					ErrForbidden(w)
					return
				}

				if !set.Contains(role) {
					ErrForbidden(w)
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}
