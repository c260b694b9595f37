package roles

import (
	"context"

	imodel "github.com/SR0NAK/insurebharat/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Assignment is a persisted (user, role) pair. Multiple assignments per user
// are expected; duplicate rows are tolerated and collapse when read into a
// Set.
type Assignment struct {
	imodel.Model
	UserID uuid.UUID `json:"userId" gorm:"not null;index"`
	Role   Role      `json:"role" gorm:"not null"`
}

func NewStore(logger *zap.Logger, db *gorm.DB) *Store {
	return &Store{
		logger: logger,
		db:     db,
	}
}

// Store reads and writes role assignments in Postgres.
type Store struct {
	logger *zap.Logger
	db     *gorm.DB
}

// Roles retrieves the set of role labels assigned to the specified user. An
// empty set is a valid result; it means the user holds no roles.
func (s Store) Roles(ctx context.Context, userID uuid.UUID) (Set, error) {
	var assignments []Assignment
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&assignments)
	if res.Error != nil {
		return nil, res.Error
	}

	set := make(Set, len(assignments))
	for _, assignment := range assignments {
		set[assignment.Role] = struct{}{}
	}
	return set, nil
}

// Assign grants the specified role to the user. Assigning a role the user
// already holds is a no-op at the Set level.
func (s Store) Assign(ctx context.Context, userID uuid.UUID, role Role) error {
	assignment := &Assignment{
		UserID: userID,
		Role:   role,
	}
	if res := s.db.WithContext(ctx).Create(assignment); res.Error != nil {
		return res.Error
	}
	return nil
}

// Revoke removes all assignments of the specified role from the user.
func (s Store) Revoke(ctx context.Context, userID uuid.UUID, role Role) error {
	res := s.db.
		WithContext(ctx).
		Where("user_id = ?", userID).
		Where("role = ?", role).
		Delete(&Assignment{})
	return res.Error
}
