package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/SR0NAK/insurebharat/internal/event"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/stream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IStream interface {
	Read(context.Context) (*stream.Message, error)
	Ack(context.Context, *stream.Message) error
}

func NewHandler(
	logger *zap.Logger,
	stream IStream,
) *Handler {
	return &Handler{
		logger:      logger,
		stream:      stream,
		mutex:       new(sync.Mutex),
		subscribers: make(map[uuid.UUID]map[int]chan identity.Change),
	}
}

// Handler consumes the interservice event stream and fans session changes out
// to per-user subscribers. Watch connections subscribe to the user whose
// session they carry; a sign-out or role change anywhere in the fleet reaches
// them here.
type Handler struct {
	logger *zap.Logger
	stream IStream

	mutex       *sync.Mutex
	subscribers map[uuid.UUID]map[int]chan identity.Change
	nextID      int
}

// Launch reads the event stream until ctx is cancelled or the stream fails.
func (h *Handler) Launch(ctx context.Context) error {
	for {
		message, err := h.stream.Read(ctx)
		if err != nil {
			return fmt.Errorf("read stream; error: %w", err)
		}

		eventI, err := event.Parse(message.Payload)
		if err != nil {
			h.logger.Error("parse event", zap.Error(err))
			continue
		}

		switch e := eventI.(type) {
		case *event.SessionSignedInEvent:
			sess := e.Session
			h.dispatch(sess.User.ID, identity.Change{
				Kind:    identity.SignedIn,
				Session: &sess,
			})
		case *event.SessionSignedOutEvent:
			h.dispatch(e.UserID, identity.Change{Kind: identity.SignedOut})
		case *event.RolesChangedEvent:
			// Session is left nil; the subscriber substitutes its own current
			// session before applying the change.
			h.dispatch(e.UserID, identity.Change{Kind: identity.Refreshed})
		}

		if err := h.stream.Ack(ctx, message); err != nil {
			h.logger.Error("ack stream message", zap.Error(err))
		}
	}
}

// Subscribe registers a channel that receives the session changes concerning
// the specified user. The returned function cancels the subscription.
func (h *Handler) Subscribe(userID uuid.UUID) (<-chan identity.Change, func()) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	id := h.nextID
	h.nextID++

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[int]chan identity.Change)
	}

	ch := make(chan identity.Change, 16)
	h.subscribers[userID][id] = ch

	return ch, func() {
		h.mutex.Lock()
		defer h.mutex.Unlock()

		if subscriber, ok := h.subscribers[userID][id]; ok {
			delete(h.subscribers[userID], id)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			close(subscriber)
		}
	}
}

// --- private ---

func (h *Handler) dispatch(userID uuid.UUID, change identity.Change) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, subscriber := range h.subscribers[userID] {
		select {
		case subscriber <- change:
		default:
			h.logger.Warn(
				"dropping session change; subscriber full",
				zap.Stringer("user-id", userID),
			)
		}
	}
}
