// Package auth owns process-wide authentication state: who is signed in and
// what they may do. A Coordinator subscribes to session-change notifications
// from an identity provider, resolves the signed-in user's role assignments
// through a role store, and exposes the derived capability flags to
// consumers.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provider encompasses the identity-provider interactions the Coordinator
// depends on.
type Provider interface {
	Subscribe(func(identity.Change)) func()
	CurrentSession(context.Context) (*session.Session, error)
	SignUp(context.Context, identity.SignUpInput) error
	SignInWithPassword(context.Context, string, string) error
	SignOut(context.Context) error
}

// RoleStore encompasses the role-store interactions the Coordinator depends
// on.
type RoleStore interface {
	Roles(context.Context, uuid.UUID) (roles.Set, error)
}

// defaultRoleFetchDelay is how long the Coordinator waits after a session
// change before fetching roles. The delay tolerates replication lag between
// account/session creation and role-row availability; it is a heuristic, not
// a correctness guarantee.
const defaultRoleFetchDelay = 50 * time.Millisecond

// NewCoordinator creates a Coordinator instance. Call Start to begin
// processing session changes.
func NewCoordinator(
	logger *zap.Logger,
	provider Provider,
	roleStore RoleStore,
	options ...CoordinatorOption,
) *Coordinator {
	c := &Coordinator{
		logger:      logger,
		provider:    provider,
		roleStore:   roleStore,
		fetchDelay:  defaultRoleFetchDelay,
		mutex:       new(sync.RWMutex),
		state:       State{Roles: roles.NewSet(), Loading: true},
		changes:     make(chan change, 16),
		resolutions: make(chan resolution, 16),
		watchers:    make(map[int]chan State),
		done:        make(chan struct{}),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// CoordinatorOption is a function that mutates a Coordinator instance. This
// is typically used with NewCoordinator.
type CoordinatorOption func(*Coordinator)

// WithRoleFetchDelay creates a CoordinatorOption that configures how long the
// Coordinator waits before issuing a role fetch.
func WithRoleFetchDelay(delay time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.fetchDelay = delay }
}

// Coordinator is the single authority for session and role state. All state
// mutation happens on the goroutine launched by Start; consumers read through
// the snapshot accessors and may register a watcher to observe updates.
type Coordinator struct {
	logger    *zap.Logger
	provider  Provider
	roleStore RoleStore

	fetchDelay time.Duration

	mutex *sync.RWMutex
	state State
	// epoch increments on every applied session change. Role fetches are
	// tagged with the epoch current when they were issued; a resolution whose
	// epoch no longer matches is stale and discarded.
	epoch uint64

	changes     chan change
	resolutions chan resolution

	watchers  map[int]chan State
	watcherID int

	unsubscribe func()
	closeOnce   sync.Once
	done        chan struct{}
}

type change struct {
	sess *session.Session
}

type resolution struct {
	epoch  uint64
	userID uuid.UUID
	set    roles.Set
	err    error
}

// Start registers the Coordinator's subscription with the identity provider,
// requests the provider's current session snapshot, and launches the event
// loop. The first of the two paths to produce a session determination clears
// the loading flag; neither waits for the role fetch.
func (c *Coordinator) Start(ctx context.Context) {
	c.mutex.Lock()
	c.unsubscribe = c.provider.Subscribe(func(ch identity.Change) {
		c.enqueue(change{sess: ch.Session})
	})
	c.mutex.Unlock()

	go c.run(ctx)

	go func() {
		sess, err := c.provider.CurrentSession(ctx)
		if err != nil {
			c.logger.Error("initial session check", zap.Error(err))
			sess = nil
		}
		c.enqueue(change{sess: sess})
	}()
}

// Close cancels the provider subscription and stops the event loop. Watcher
// channels are not closed; their cancel functions remain valid.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		c.mutex.Lock()
		unsubscribe := c.unsubscribe
		c.mutex.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		close(c.done)
	})
}

// SignUp delegates to the identity provider's registration entry point. The
// coordinator's state is unchanged; a state change arrives later through the
// subscription.
func (c *Coordinator) SignUp(ctx context.Context, input identity.SignUpInput) error {
	return c.provider.SignUp(ctx, input)
}

// SignIn delegates to the identity provider's credential-based sign-in entry
// point. On success the subscription callback fires afterward; SignIn itself
// does not mutate coordinator state.
func (c *Coordinator) SignIn(ctx context.Context, email, password string) error {
	return c.provider.SignInWithPassword(ctx, email, password)
}

// SignOut delegates to the identity provider's sign-out entry point. The
// subscription callback fires with an empty session, which clears the user
// and role set.
func (c *Coordinator) SignOut(ctx context.Context) error {
	return c.provider.SignOut(ctx)
}

// State retrieves a snapshot of the coordinator's current state.
func (c *Coordinator) State() State {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.state
}

// Session retrieves the current session; nil while no user is signed in.
func (c *Coordinator) Session() *session.Session {
	return c.State().Session
}

// User retrieves the current user; nil while no user is signed in.
func (c *Coordinator) User() *session.User {
	return c.State().User
}

// Loading indicates whether the first session determination is still
// outstanding.
func (c *Coordinator) Loading() bool {
	return c.State().Loading
}

// IsAdmin indicates the current user holds the admin role.
func (c *Coordinator) IsAdmin() bool { return c.State().IsAdmin() }

// IsBroker indicates the current user holds the broker role.
func (c *Coordinator) IsBroker() bool { return c.State().IsBroker() }

// IsAgent indicates the current user holds the agent role.
func (c *Coordinator) IsAgent() bool { return c.State().IsAgent() }

// Watch registers a watcher that receives a state snapshot after every
// update. A slow watcher may miss intermediate snapshots; the next update
// supersedes them. The returned function cancels the watcher.
func (c *Coordinator) Watch() (<-chan State, func()) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	id := c.watcherID
	c.watcherID++

	ch := make(chan State, 16)
	c.watchers[id] = ch

	return ch, func() {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		if watcher, ok := c.watchers[id]; ok {
			delete(c.watchers, id)
			close(watcher)
		}
	}
}

// --- private ---

func (c *Coordinator) enqueue(ch change) {
	select {
	case c.changes <- ch:
	case <-c.done:
	}
}

func (c *Coordinator) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case ch := <-c.changes:
			c.applyChange(ctx, ch)
		case res := <-c.resolutions:
			c.applyResolution(res)
		}
	}
}

func (c *Coordinator) applyChange(ctx context.Context, ch change) {
	c.mutex.Lock()
	c.epoch++
	epoch := c.epoch

	c.state.Session = ch.sess
	if ch.sess != nil {
		user := ch.sess.User
		c.state.User = &user
	} else {
		// Sign-out or expiry. Roles are cleared immediately; there is no user
		// left to hold capabilities.
		c.state.User = nil
		c.state.Roles = roles.NewSet()
	}
	c.state.Loading = false
	snapshot := c.state
	c.mutex.Unlock()

	c.notify(snapshot)

	// Role resolution is asynchronous. Until it lands, the role set still
	// describes the previously fetched user.
	if ch.sess != nil {
		go c.fetchRoles(ctx, epoch, ch.sess.User.ID)
	}
}

func (c *Coordinator) fetchRoles(ctx context.Context, epoch uint64, userID uuid.UUID) {
	timer := time.NewTimer(c.fetchDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	case <-c.done:
		return
	}

	set, err := c.roleStore.Roles(ctx, userID)

	select {
	case c.resolutions <- resolution{epoch: epoch, userID: userID, set: set, err: err}:
	case <-ctx.Done():
	case <-c.done:
	}
}

func (c *Coordinator) applyResolution(res resolution) {
	c.mutex.Lock()
	if res.epoch != c.epoch {
		c.mutex.Unlock()
		c.logger.Debug(
			"discarding stale role resolution",
			zap.Stringer("user-id", res.userID),
		)
		return
	}

	switch {
	case res.err != nil:
		// Not an authentication failure. The user simply has no elevated
		// capabilities until a later fetch succeeds.
		c.logger.Warn(
			"role fetch failed; treating user as role-less",
			zap.Stringer("user-id", res.userID),
			zap.Error(res.err),
		)
		c.state.Roles = roles.NewSet()
	case res.set == nil:
		c.state.Roles = roles.NewSet()
	default:
		c.state.Roles = res.set
	}
	snapshot := c.state
	c.mutex.Unlock()

	c.notify(snapshot)
}

func (c *Coordinator) notify(snapshot State) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, watcher := range c.watchers {
		select {
		case watcher <- snapshot:
		default:
		}
	}
}
