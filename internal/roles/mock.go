package roles

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var errUnconfigured = errors.New("unconfigured mock call")

// NewMock creates a new Mock instance.
func NewMock(options ...MockOption) *Mock {
	mock := &Mock{}

	for _, option := range options {
		option(mock)
	}

	return mock
}

// MockOption is a function type that may configure a Mock instance.
type MockOption func(*Mock)

// WithRoles returns a MockOption that configures a Mock to call fn when Roles
// is called.
func WithRoles(fn rolesFunc) MockOption {
	return func(mock *Mock) { mock.roles = fn }
}

// WithAssign returns a MockOption that configures a Mock to call fn when
// Assign is called.
func WithAssign(fn assignFunc) MockOption {
	return func(mock *Mock) { mock.assign = fn }
}

// WithRevoke returns a MockOption that configures a Mock to call fn when
// Revoke is called.
func WithRevoke(fn revokeFunc) MockOption {
	return func(mock *Mock) { mock.revoke = fn }
}

type (
	rolesFunc  func(context.Context, uuid.UUID) (Set, error)
	assignFunc func(context.Context, uuid.UUID, Role) error
	revokeFunc func(context.Context, uuid.UUID, Role) error
)

// Mock provides an implementation for mock role store interactions. This is
// typically used for unit-testing.
type Mock struct {
	roles  rolesFunc
	assign assignFunc
	revoke revokeFunc
}

// Roles calls the function configured with WithRoles.
func (mock Mock) Roles(ctx context.Context, userID uuid.UUID) (Set, error) {
	if mock.roles == nil {
		return nil, errUnconfigured
	}
	return mock.roles(ctx, userID)
}

// Assign calls the function configured with WithAssign.
func (mock Mock) Assign(ctx context.Context, userID uuid.UUID, role Role) error {
	if mock.assign == nil {
		return errUnconfigured
	}
	return mock.assign(ctx, userID, role)
}

// Revoke calls the function configured with WithRevoke.
func (mock Mock) Revoke(ctx context.Context, userID uuid.UUID, role Role) error {
	if mock.revoke == nil {
		return errUnconfigured
	}
	return mock.revoke(ctx, userID, role)
}
