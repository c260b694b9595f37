package rest

import (
	errors "errors"
	http "net/http"

	"github.com/SR0NAK/insurebharat/internal/auth"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"go.uber.org/zap"
)

// AuthState serves a point-in-time snapshot of the caller's authentication
// state: the session, the user, and the derived capability flags. A request
// without a live session receives the signed-out state, not an error.
type AuthState struct{ API }

func (ep AuthState) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := auth.State{Roles: roles.NewSet()}

	sessionID := ihttp.SessionFromRequest(r)
	if sessionID == "" {
		ep.write(w, http.StatusOK, state)
		return
	}

	sess, err := ep.sessionManager.RetrieveSession(r.Context(), sessionID)
	if errors.Is(err, session.ErrSessionDNE) {
		ep.write(w, http.StatusOK, state)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	user := sess.User
	state.Session = sess
	state.User = &user

	set, err := ep.ctrl.Roles(r.Context(), sess.User.ID)
	if err != nil {
		// Role resolution failure is not an authentication failure. The caller
		// stays signed in with no capabilities.
		ep.logger.Warn(
			"role lookup failed; treating user as role-less",
			zap.Stringer("user-id", sess.User.ID),
			zap.Error(err),
		)
		set = roles.NewSet()
	}
	state.Roles = set

	ep.write(w, http.StatusOK, state)
}
