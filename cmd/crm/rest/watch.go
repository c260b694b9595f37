package rest

import (
	"context"
	errors "errors"
	http "net/http"

	"github.com/SR0NAK/insurebharat/internal/auth"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/session"

	"go.uber.org/zap"
)

// AuthWatch upgrades the connection to a websocket and pushes an
// authentication state snapshot on every change: sign-in, sign-out, and role
// resolution. Each connection runs its own coordinator seeded with the
// request's session and fed fleet-wide changes from the event stream.
type AuthWatch struct{ API }

func (ep AuthWatch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var sess *session.Session
	if sessionID := ihttp.SessionFromRequest(r); sessionID != "" {
		fetched, err := ep.sessionManager.RetrieveSession(r.Context(), sessionID)
		switch {
		case errors.Is(err, session.ErrSessionDNE):
		case err != nil:
			ihttp.ErrInternal(ep.logger, w, err)
			return
		default:
			sess = fetched
		}
	}

	conn, err := ep.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade writes the HTTP error response itself.
		ep.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	provider := identity.NewService(
		ep.logger,
		ep.ctrl,
		ep.sessionManager,
		nil,
		identity.WithSession(sess),
	)

	coordinator := auth.NewCoordinator(
		ep.logger,
		provider,
		ep.ctrl,
		auth.WithRoleFetchDelay(ep.roleFetchDelay),
	)
	defer coordinator.Close()

	states, cancelWatch := coordinator.Watch()
	defer cancelWatch()

	coordinator.Start(ctx)

	if sess != nil {
		changes, unsubscribe := ep.events.Subscribe(sess.User.ID)
		defer unsubscribe()

		go func() {
			for change := range changes {
				if change.Kind == identity.Refreshed && change.Session == nil {
					change.Session = coordinator.Session()
				}
				provider.Notify(change)
			}
		}()
	}

	// Drain client frames so close and ping/pong handling runs; the watch is
	// push-only.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-states:
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		}
	}
}
