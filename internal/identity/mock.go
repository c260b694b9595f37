package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/SR0NAK/insurebharat/internal/session"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewProviderMock creates a new ProviderMock instance.
func NewProviderMock(options ...ProviderMockOption) *ProviderMock {
	mock := &ProviderMock{
		mutex:       new(sync.Mutex),
		subscribers: make(map[int]func(Change)),
	}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// ProviderMockOption is a function type that may configure a ProviderMock
// instance.
type ProviderMockOption func(*ProviderMock)

// WithCurrentSession returns a ProviderMockOption that configures a
// ProviderMock to call fn when CurrentSession is called.
func WithCurrentSession(fn currentSessionFunc) ProviderMockOption {
	return func(mock *ProviderMock) { mock.currentSession = fn }
}

// WithSignUp returns a ProviderMockOption that configures a ProviderMock to
// call fn when SignUp is called.
func WithSignUp(fn signUpFunc) ProviderMockOption {
	return func(mock *ProviderMock) { mock.signUp = fn }
}

// WithSignIn returns a ProviderMockOption that configures a ProviderMock to
// call fn when SignInWithPassword is called.
func WithSignIn(fn signInFunc) ProviderMockOption {
	return func(mock *ProviderMock) { mock.signIn = fn }
}

// WithSignOut returns a ProviderMockOption that configures a ProviderMock to
// call fn when SignOut is called.
func WithSignOut(fn signOutFunc) ProviderMockOption {
	return func(mock *ProviderMock) { mock.signOut = fn }
}

type (
	currentSessionFunc func(context.Context) (*session.Session, error)
	signUpFunc         func(context.Context, SignUpInput) error
	signInFunc         func(context.Context, string, string) error
	signOutFunc        func(context.Context) error
)

// ProviderMock provides an implementation for mock identity provider
// interactions. This is typically used for unit-testing. Tests emit session
// changes through Emit.
type ProviderMock struct {
	currentSession currentSessionFunc
	signUp         signUpFunc
	signIn         signInFunc
	signOut        signOutFunc

	mutex        *sync.Mutex
	subscribers  map[int]func(Change)
	nextID       int
	unsubscribed int
}

// Subscribe registers fn to be invoked whenever Emit is called.
func (mock *ProviderMock) Subscribe(fn func(Change)) func() {
	mock.mutex.Lock()
	defer mock.mutex.Unlock()

	id := mock.nextID
	mock.nextID++
	mock.subscribers[id] = fn

	return func() {
		mock.mutex.Lock()
		defer mock.mutex.Unlock()
		delete(mock.subscribers, id)
		mock.unsubscribed++
	}
}

// Emit delivers the passed Change to all subscribers.
func (mock *ProviderMock) Emit(change Change) {
	mock.mutex.Lock()
	fns := make([]func(Change), 0, len(mock.subscribers))
	for _, fn := range mock.subscribers {
		fns = append(fns, fn)
	}
	mock.mutex.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// Unsubscribed reports how many subscriptions have been cancelled.
func (mock *ProviderMock) Unsubscribed() int {
	mock.mutex.Lock()
	defer mock.mutex.Unlock()
	return mock.unsubscribed
}

// CurrentSession calls the function configured with WithCurrentSession.
func (mock *ProviderMock) CurrentSession(ctx context.Context) (*session.Session, error) {
	if mock.currentSession == nil {
		return nil, errUnconfigured
	}
	return mock.currentSession(ctx)
}

// SignUp calls the function configured with WithSignUp.
func (mock *ProviderMock) SignUp(ctx context.Context, input SignUpInput) error {
	if mock.signUp == nil {
		return errUnconfigured
	}
	return mock.signUp(ctx, input)
}

// SignInWithPassword calls the function configured with WithSignIn.
func (mock *ProviderMock) SignInWithPassword(ctx context.Context, email, password string) error {
	if mock.signIn == nil {
		return errUnconfigured
	}
	return mock.signIn(ctx, email, password)
}

// SignOut calls the function configured with WithSignOut.
func (mock *ProviderMock) SignOut(ctx context.Context) error {
	if mock.signOut == nil {
		return errUnconfigured
	}
	return mock.signOut(ctx)
}
