package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func TestStartWithoutSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return nil, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(context.Context, uuid.UUID) (roles.Set, error) {
				t.Fatal("unexpected role fetch")
				return nil, nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	require.True(t, coordinator.Loading())

	coordinator.Start(ctx)
	defer coordinator.Close()

	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)

	state := coordinator.State()
	assert.Nil(t, state.Session)
	assert.Nil(t, state.User)
	assert.False(t, state.IsAdmin())
	assert.False(t, state.IsBroker())
	assert.False(t, state.IsAgent())
}

func TestStartWithExistingSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := testSession("existing-session")

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return sess, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(_ context.Context, userID uuid.UUID) (roles.Set, error) {
				require.Equal(t, sess.User.ID, userID)
				return roles.NewSet(roles.RoleBroker), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)
	require.Eventually(t, func() bool { return coordinator.IsBroker() }, waitFor, tick)

	state := coordinator.State()
	require.NotNil(t, state.User)
	assert.Equal(t, sess.User.ID, state.User.ID)
	assert.False(t, state.IsAdmin())
	assert.False(t, state.IsAgent())
}

func TestLoadingClearsBeforeRoleFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := testSession("slow-roles-session")
	release := make(chan struct{})

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return sess, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(ctx context.Context, _ uuid.UUID) (roles.Set, error) {
				select {
				case <-release:
				case <-ctx.Done():
				}
				return roles.NewSet(roles.RoleAdmin), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	// The loading flag clears on session determination, not role resolution.
	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)
	require.NotNil(t, coordinator.User())
	require.False(t, coordinator.IsAdmin())

	close(release)
	require.Eventually(t, func() bool { return coordinator.IsAdmin() }, waitFor, tick)
}

func TestLoadingClearsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return nil, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(context.Context, uuid.UUID) (roles.Set, error) {
				return roles.NewSet(roles.RoleAgent), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	watch, cancelWatch := coordinator.Watch()
	defer cancelWatch()

	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)

	sess := testSession("later-session")
	provider.Emit(identity.Change{Kind: identity.SignedIn, Session: sess})
	require.Eventually(t, func() bool { return coordinator.IsAgent() }, waitFor, tick)
	provider.Emit(identity.Change{Kind: identity.SignedOut})
	require.Eventually(t, func() bool { return coordinator.User() == nil }, waitFor, tick)

	cancelWatch()
	for snapshot := range watch {
		assert.False(t, snapshot.Loading)
	}
}

func TestSignInEstablishesRoles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := testSession("sign-in-session")

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return nil, nil },
		),
		identity.WithSignIn(
			func(context.Context, string, string) error { return nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(context.Context, uuid.UUID) (roles.Set, error) {
				return roles.NewSet(roles.RoleAgent), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)

	err := coordinator.SignIn(ctx, "agent@insurebharat.in", "valid-password")
	require.Nil(t, err)

	// The mock provider does not emit on SignIn; the change arrives the way a
	// real provider delivers it, through the subscription.
	provider.Emit(identity.Change{Kind: identity.SignedIn, Session: sess})

	require.Eventually(t, func() bool { return coordinator.IsAgent() }, waitFor, tick)
	require.NotNil(t, coordinator.Session())
	assert.Equal(t, sess.ID, coordinator.Session().ID)
}

func TestSignOutClearsState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := testSession("sign-out-session")

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return sess, nil },
		),
		identity.WithSignOut(
			func(context.Context) error { return nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(context.Context, uuid.UUID) (roles.Set, error) {
				return roles.NewSet(roles.RoleAdmin, roles.RoleBroker), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	require.Eventually(t, func() bool { return coordinator.IsAdmin() }, waitFor, tick)

	err := coordinator.SignOut(ctx)
	require.Nil(t, err)
	provider.Emit(identity.Change{Kind: identity.SignedOut})

	require.Eventually(t, func() bool { return coordinator.User() == nil }, waitFor, tick)

	state := coordinator.State()
	assert.Nil(t, state.Session)
	assert.False(t, state.IsAdmin())
	assert.False(t, state.IsBroker())
	assert.False(t, state.Loading)
}

func TestRoleFetchFailureIsRoleless(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := testSession("fetch-failure-session")
	var calls int
	var mutex sync.Mutex

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return sess, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(context.Context, uuid.UUID) (roles.Set, error) {
				mutex.Lock()
				defer mutex.Unlock()
				calls++
				if calls == 1 {
					return nil, errors.New("role store unavailable")
				}
				return roles.NewSet(roles.RoleBroker), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	require.Eventually(t, func() bool {
		mutex.Lock()
		defer mutex.Unlock()
		return calls == 1
	}, waitFor, tick)

	// Failure leaves the user signed in with no capabilities.
	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)
	require.NotNil(t, coordinator.User())
	assert.False(t, coordinator.IsBroker())

	// A later session change retries and succeeds.
	provider.Emit(identity.Change{Kind: identity.Refreshed, Session: sess})
	require.Eventually(t, func() bool { return coordinator.IsBroker() }, waitFor, tick)
}

func TestStaleRoleResolutionDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := testSession("stale-first-session")
	second := testSession("stale-second-session")
	releaseFirst := make(chan struct{})

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return nil, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(ctx context.Context, userID uuid.UUID) (roles.Set, error) {
				if userID == first.User.ID {
					select {
					case <-releaseFirst:
					case <-ctx.Done():
					}
					return roles.NewSet(roles.RoleAdmin), nil
				}
				return roles.NewSet(roles.RoleAgent), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)
	defer coordinator.Close()

	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)

	provider.Emit(identity.Change{Kind: identity.SignedIn, Session: first})
	require.Eventually(t, func() bool { return coordinator.User() != nil }, waitFor, tick)

	provider.Emit(identity.Change{Kind: identity.SignedIn, Session: second})
	require.Eventually(t, func() bool { return coordinator.IsAgent() }, waitFor, tick)

	// The first user's fetch resolves after the second user signed in. Its
	// result belongs to a superseded session and must not apply.
	close(releaseFirst)
	time.Sleep(50 * time.Millisecond)

	state := coordinator.State()
	require.NotNil(t, state.User)
	assert.Equal(t, second.User.ID, state.User.ID)
	assert.True(t, state.IsAgent())
	assert.False(t, state.IsAdmin())
}

func TestWatchObservesUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := testSession("watch-session")

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return nil, nil },
		),
	)
	store := roles.NewMock(
		roles.WithRoles(
			func(context.Context, uuid.UUID) (roles.Set, error) {
				return roles.NewSet(roles.RoleAdmin), nil
			},
		),
	)

	coordinator := newTestCoordinator(t, provider, store)

	watch, cancelWatch := coordinator.Watch()
	defer cancelWatch()

	coordinator.Start(ctx)
	defer coordinator.Close()

	snapshot := nextSnapshot(t, watch)
	assert.False(t, snapshot.Loading)
	assert.Nil(t, snapshot.User)

	provider.Emit(identity.Change{Kind: identity.SignedIn, Session: sess})

	snapshot = nextSnapshot(t, watch)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, sess.User.ID, snapshot.User.ID)
	assert.False(t, snapshot.IsAdmin())

	snapshot = nextSnapshot(t, watch)
	assert.True(t, snapshot.IsAdmin())
}

func TestCloseUnsubscribes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := identity.NewProviderMock(
		identity.WithCurrentSession(
			func(context.Context) (*session.Session, error) { return nil, nil },
		),
	)
	store := roles.NewMock()

	coordinator := newTestCoordinator(t, provider, store)
	coordinator.Start(ctx)

	require.Eventually(t, func() bool { return !coordinator.Loading() }, waitFor, tick)

	coordinator.Close()
	coordinator.Close()

	require.Equal(t, 1, provider.Unsubscribed())
}

// --- helpers ---

func newTestCoordinator(t *testing.T, provider Provider, store RoleStore) *Coordinator {
	t.Helper()
	return NewCoordinator(
		zap.NewNop(),
		provider,
		store,
		WithRoleFetchDelay(time.Millisecond),
	)
}

func testSession(id string) *session.Session {
	return session.New(
		id,
		session.User{
			ID:    uuid.New(),
			Email: id + "@insurebharat.in",
		},
		time.Hour,
	)
}

func nextSnapshot(t *testing.T, watch <-chan State) State {
	t.Helper()
	select {
	case snapshot := <-watch:
		return snapshot
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for state snapshot")
		return State{}
	}
}
