package db

import (
	"context"
	"errors"
	"time"

	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	"github.com/SR0NAK/insurebharat/cmd/crm/model"
	imodel "github.com/SR0NAK/insurebharat/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewStore(
	logger *zap.Logger,
	db *gorm.DB,
) *Store {
	return &Store{
		logger: logger,
		db:     db,
	}
}

type Store struct {
	logger *zap.Logger
	db     *gorm.DB
}

func (s Store) CreateUser(ctx context.Context, user *model.User) error {
	if res := s.db.WithContext(ctx).Create(user); res.Error != nil {
		return res.Error
	}
	return nil
}

func (s Store) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := new(model.User)
	res := s.db.WithContext(ctx).First(user, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, crmerrors.ErrUserDNE
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return user, nil
}

func (s Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := new(model.User)
	res := s.db.WithContext(ctx).Where("email = ?", email).First(user)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, crmerrors.ErrUserDNE
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return user, nil
}

func (s Store) UserByVerificationHash(ctx context.Context, hash string) (*model.User, error) {
	user := new(model.User)
	res := s.db.WithContext(ctx).First(user, "verification_hash = ?", hash)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, crmerrors.ErrUserDNE
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return user, nil
}

func (s Store) VerifyEmail(
	ctx context.Context,
	id uuid.UUID,
) (*model.User, error) {
	if res := s.db.WithContext(ctx).Model(
		&model.User{Model: imodel.Model{ID: id}},
	).Update("verified_at", time.Now()); res.Error != nil {
		return nil, res.Error
	}
	return s.User(ctx, id)
}

func (s Store) ResetEmailVerification(
	ctx context.Context,
	id uuid.UUID,
	hash string,
) (*model.User, error) {
	if res := s.db.WithContext(ctx).Model(
		&model.User{Model: imodel.Model{ID: id}},
	).Updates(
		map[string]interface{}{
			"verification_hash":    hash,
			"verification_sent_at": time.Now(),
		},
	); res.Error != nil {
		return nil, res.Error
	}
	return s.User(ctx, id)
}
