package rest

import (
	"context"
	"errors"

	"github.com/SR0NAK/insurebharat/cmd/crm/model"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
)

// ErrMisconfiguredMock indicates an instance of ControllerMock is being
// utilized in an unexpected way.
var ErrMisconfiguredMock = errors.New("mock configuration does not support this functionality")

// NewControllerMock creates a new ControllerMock instance. Utilize
// ControllerMockOption functions to configure the instance.
func NewControllerMock(options ...ControllerMockOption) *ControllerMock {
	mock := &ControllerMock{}

	for _, option := range options {
		option(mock)
	}
	return mock
}

// ControllerMockOption is a function type that should configure the
// ControllerMock instance.
type ControllerMockOption func(*ControllerMock)

// WithRegister provides a ControllerMockOption that configures a
// ControllerMock to utilize the passed function to mock Register
// functionality.
func WithRegister(fn registerFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.register = fn
	}
}

// WithLogin provides a ControllerMockOption that configures a ControllerMock
// to utilize the passed function to mock Login functionality.
func WithLogin(fn loginFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.login = fn
	}
}

// WithLogout provides a ControllerMockOption that configures a ControllerMock
// to utilize the passed function to mock Logout functionality.
func WithLogout(fn logoutFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.logout = fn
	}
}

// WithUser provides a ControllerMockOption that configures a ControllerMock
// to utilize the passed function to mock User functionality.
func WithUser(fn userFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.user = fn
	}
}

// WithVerifyEmail provides a ControllerMockOption that configures a
// ControllerMock to utilize the passed function to mock VerifyEmail
// functionality.
func WithVerifyEmail(fn verifyEmailFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.verifyEmail = fn
	}
}

// WithRoles provides a ControllerMockOption that configures a ControllerMock
// to utilize the passed function to mock Roles functionality.
func WithRoles(fn rolesFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.roles = fn
	}
}

// WithAssignRole provides a ControllerMockOption that configures a
// ControllerMock to utilize the passed function to mock AssignRole
// functionality.
func WithAssignRole(fn roleChangeFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.assignRole = fn
	}
}

// WithRevokeRole provides a ControllerMockOption that configures a
// ControllerMock to utilize the passed function to mock RevokeRole
// functionality.
func WithRevokeRole(fn roleChangeFunc) ControllerMockOption {
	return func(mock *ControllerMock) {
		mock.revokeRole = fn
	}
}

type (
	registerFunc    func(context.Context, identity.SignUpInput) error
	loginFunc       func(context.Context, string, string) (*session.Session, error)
	logoutFunc      func(context.Context, session.Session) error
	userFunc        func(context.Context, uuid.UUID) (*model.User, error)
	verifyEmailFunc func(context.Context, string) (*model.User, error)
	rolesFunc       func(context.Context, uuid.UUID) (roles.Set, error)
	roleChangeFunc  func(context.Context, uuid.UUID, roles.Role) error
)

// ControllerMock mocks the rest package's controller dependency. Tests
// configure the behavior they exercise; unconfigured calls fail with
// ErrMisconfiguredMock.
type ControllerMock struct {
	register    registerFunc
	login       loginFunc
	logout      logoutFunc
	user        userFunc
	verifyEmail verifyEmailFunc
	roles       rolesFunc
	assignRole  roleChangeFunc
	revokeRole  roleChangeFunc
}

func (m ControllerMock) Register(ctx context.Context, input identity.SignUpInput) error {
	if m.register == nil {
		return ErrMisconfiguredMock
	}
	return m.register(ctx, input)
}

func (m ControllerMock) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if m.login == nil {
		return nil, ErrMisconfiguredMock
	}
	return m.login(ctx, email, password)
}

func (m ControllerMock) Logout(ctx context.Context, sess session.Session) error {
	if m.logout == nil {
		return ErrMisconfiguredMock
	}
	return m.logout(ctx, sess)
}

func (m ControllerMock) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.user == nil {
		return nil, ErrMisconfiguredMock
	}
	return m.user(ctx, id)
}

func (m ControllerMock) VerifyEmail(ctx context.Context, hash string) (*model.User, error) {
	if m.verifyEmail == nil {
		return nil, ErrMisconfiguredMock
	}
	return m.verifyEmail(ctx, hash)
}

func (m ControllerMock) Roles(ctx context.Context, userID uuid.UUID) (roles.Set, error) {
	if m.roles == nil {
		return nil, ErrMisconfiguredMock
	}
	return m.roles(ctx, userID)
}

func (m ControllerMock) AssignRole(ctx context.Context, userID uuid.UUID, role roles.Role) error {
	if m.assignRole == nil {
		return ErrMisconfiguredMock
	}
	return m.assignRole(ctx, userID, role)
}

func (m ControllerMock) RevokeRole(ctx context.Context, userID uuid.UUID, role roles.Role) error {
	if m.revokeRole == nil {
		return ErrMisconfiguredMock
	}
	return m.revokeRole(ctx, userID, role)
}
