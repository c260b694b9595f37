package identity

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/SR0NAK/insurebharat/internal/event"
	"github.com/SR0NAK/insurebharat/internal/session"

	"go.uber.org/zap"
)

// IAuthenticator is the credential backend behind the provider.
type IAuthenticator interface {
	Register(context.Context, SignUpInput) error
	Login(context.Context, string, string) (*session.Session, error)
	Logout(context.Context, session.Session) error
}

// ISessionManager encompasses the session interactions the provider needs to
// validate its current-session snapshot.
type ISessionManager interface {
	RetrieveSession(context.Context, string) (*session.Session, error)
}

// IEventWriter writes serialized events to the interservice event stream.
type IEventWriter interface {
	Write(context.Context, []byte) error
}

// NewService creates a Service instance.
func NewService(
	logger *zap.Logger,
	auth IAuthenticator,
	sessions ISessionManager,
	writer IEventWriter,
	options ...ServiceOption,
) *Service {
	s := &Service{
		logger:      logger,
		auth:        auth,
		sessions:    sessions,
		writer:      writer,
		mutex:       new(sync.Mutex),
		subscribers: make(map[int]func(Change)),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// ServiceOption is a function that mutates a Service instance. This is
// typically used with NewService.
type ServiceOption func(*Service)

// WithSession creates a ServiceOption that seeds the Service with an already
// established session. Used when a Service is bound to an existing client,
// e.g. a watch connection authenticated by its session cookie.
func WithSession(sess *session.Session) ServiceOption {
	return func(s *Service) { s.current = sess }
}

// Service is an in-process identity provider. It owns the "current session"
// of one client, fans session changes out to subscribers, and mirrors them
// onto the interservice event stream so other instances observe them.
type Service struct {
	logger   *zap.Logger
	auth     IAuthenticator
	sessions ISessionManager
	writer   IEventWriter

	mutex       *sync.Mutex
	current     *session.Session
	subscribers map[int]func(Change)
	nextID      int
}

// Subscribe registers fn to be invoked on every session change. The returned
// function cancels the subscription.
func (s *Service) Subscribe(fn func(Change)) func() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.subscribers, id)
	}
}

// CurrentSession retrieves the provider's current session, revalidated
// against the session store. A nil session with a nil error indicates no user
// is signed in.
func (s *Service) CurrentSession(ctx context.Context) (*session.Session, error) {
	s.mutex.Lock()
	current := s.current
	s.mutex.Unlock()

	if current == nil {
		return nil, nil
	}

	sess, err := s.sessions.RetrieveSession(ctx, current.ID)
	if errors.Is(err, session.ErrSessionDNE) {
		s.mutex.Lock()
		if s.current != nil && s.current.ID == current.ID {
			s.current = nil
		}
		s.mutex.Unlock()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.mutex.Lock()
	s.current = sess
	s.mutex.Unlock()

	return sess, nil
}

// SignUp delegates to the credential backend's registration entry point. It
// does not change provider state; a session arrives later, after the user
// confirms their registration and signs in.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) error {
	return s.auth.Register(ctx, input)
}

// SignInWithPassword establishes a session for the passed credentials. On
// success, subscribers are notified and a signed-in event is written to the
// event stream.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) error {
	sess, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	s.current = sess
	s.mutex.Unlock()

	s.publish(Change{Kind: SignedIn, Session: sess})
	s.writeEvent(ctx, event.NewSessionSignedInEvent(*sess))

	return nil
}

// SignOut destroys the current session, if any. Subscribers observe the
// sign-out through the subscription callback, which fires with a nil session.
func (s *Service) SignOut(ctx context.Context) error {
	s.mutex.Lock()
	current := s.current
	s.mutex.Unlock()

	if current == nil {
		return nil
	}

	if err := s.auth.Logout(ctx, *current); err != nil {
		return err
	}

	s.mutex.Lock()
	s.current = nil
	s.mutex.Unlock()

	s.publish(Change{Kind: SignedOut})
	s.writeEvent(ctx, event.NewSessionSignedOutEvent(current.ID, current.User.ID))

	return nil
}

// Notify feeds an externally observed session change into the provider. This
// is how stream-delivered events (a sign-out on another instance, a role
// re-assignment) reach this provider's subscribers.
func (s *Service) Notify(change Change) {
	s.mutex.Lock()
	switch change.Kind {
	case SignedOut:
		s.current = nil
	case SignedIn, Refreshed:
		if change.Session != nil {
			s.current = change.Session
		}
	}
	s.mutex.Unlock()

	s.publish(change)
}

// --- private ---

func (s *Service) publish(change Change) {
	s.mutex.Lock()
	fns := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mutex.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

func (s *Service) writeEvent(ctx context.Context, e interface{}) {
	if s.writer == nil {
		return
	}

	b, err := json.Marshal(e)
	if err != nil {
		s.logger.Error("marshal session event", zap.Error(err))
		return
	}

	if err := s.writer.Write(ctx, b); err != nil {
		s.logger.Error("write session event", zap.Error(err))
	}
}
