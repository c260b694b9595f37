package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	"github.com/SR0NAK/insurebharat/cmd/crm/model"
	"github.com/SR0NAK/insurebharat/internal/event"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/rand"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

type IAdminSet interface {
	Contains(string) bool
}

type IEmailer interface {
	SendVerifyEmail(ctx context.Context, to, hash, redirect string) error
}

type ISessionManager interface {
	CreateSession(context.Context, session.Session, time.Duration) error
	DeleteSession(context.Context, session.Session) error
	InvalidateUserSessionsBefore(context.Context, fmt.Stringer, time.Time) error
}

type IStore interface {
	CreateUser(context.Context, *model.User) error

	User(context.Context, uuid.UUID) (*model.User, error)
	UserByEmail(context.Context, string) (*model.User, error)
	UserByVerificationHash(context.Context, string) (*model.User, error)

	VerifyEmail(context.Context, uuid.UUID) (*model.User, error)
	ResetEmailVerification(context.Context, uuid.UUID, string) (*model.User, error)
}

type IRoleStore interface {
	Roles(context.Context, uuid.UUID) (roles.Set, error)
	Assign(context.Context, uuid.UUID, roles.Role) error
	Revoke(context.Context, uuid.UUID, roles.Role) error
}

type IEventWriter interface {
	Write(context.Context, []byte) error
}

func New(
	logger *zap.Logger,
	store IStore,
	roleStore IRoleStore,
	sessionManager ISessionManager,
	emailer IEmailer,
	admins IAdminSet,
	writer IEventWriter,
	activeSessionExpiration time.Duration,
	absoluteSessionExpiration time.Duration,
) *Controller {
	return &Controller{
		logger:                    logger,
		store:                     store,
		roleStore:                 roleStore,
		sessionManager:            sessionManager,
		emailer:                   emailer,
		admins:                    admins,
		writer:                    writer,
		activeSessionExpiration:   activeSessionExpiration,
		absoluteSessionExpiration: absoluteSessionExpiration,
	}
}

// Controller is responsible for interactions with user resources. All
// interactions with user resources occur through the Controller.
type Controller struct {
	logger         *zap.Logger
	store          IStore
	roleStore      IRoleStore
	sessionManager ISessionManager
	emailer        IEmailer
	admins         IAdminSet
	writer         IEventWriter

	activeSessionExpiration   time.Duration
	absoluteSessionExpiration time.Duration
}

// Register creates a new model.User, grants the user's initial role, and
// sends a verification email carrying the post-confirmation redirect target.
// No session is established; the user signs in after confirming their email.
func (ctrl Controller) Register(ctx context.Context, input identity.SignUpInput) error {
	if !isEmail(input.Email) {
		return crmerrors.EmailError("unknown characters")
	}
	if err := validatePassword(input.Password); err != nil {
		return err
	}
	_, err := ctrl.store.UserByEmail(ctx, input.Email)
	if err == nil {
		return crmerrors.ErrEmailAlreadyInUse
	}
	if err != nil && !errors.Is(err, crmerrors.ErrUserDNE) {
		return err
	}

	verificationHash, err := rand.GenerateString(32)
	if err != nil {
		return err
	}

	salt, err := rand.GenerateString(32)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:              input.Email,
		Password:           hash([]byte(input.Password), []byte(salt)),
		Salt:               salt,
		FirstName:          input.Profile.FirstName,
		LastName:           input.Profile.LastName,
		Phone:              input.Profile.Phone,
		Company:            input.Profile.Company,
		VerificationHash:   verificationHash,
		VerificationSentAt: time.Now(),
	}
	if err := ctrl.store.CreateUser(ctx, user); err != nil {
		return err
	}

	role := roles.RoleAgent
	if ctrl.admins.Contains(input.Email) {
		role = roles.RoleAdmin
	}
	if err := ctrl.roleStore.Assign(ctx, user.ID, role); err != nil {
		return fmt.Errorf("assign initial role; error: %w", err)
	}

	return ctrl.emailer.SendVerifyEmail(
		ctx,
		input.Email,
		verificationHash,
		input.RedirectTarget,
	)
}

// Login ensures the passed credentials are valid and establishes a session
// for the user. The established session is announced on the event stream.
func (ctrl Controller) Login(
	ctx context.Context,
	email string,
	password string,
) (*session.Session, error) {
	if !isEmail(email) {
		return nil, crmerrors.EmailError("unknown characters")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	user, err := ctrl.store.UserByEmail(ctx, email)
	if errors.Is(err, crmerrors.ErrUserDNE) {
		return nil, crmerrors.AuthError("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(
		user.Password,
		hash([]byte(password), []byte(user.Salt)),
	) {
		return nil, crmerrors.AuthError("invalid credentials")
	}
	if !user.IsVerified() {
		return nil, crmerrors.AuthError("email not verified")
	}

	sessionID, err := rand.GenerateString(32)
	if err != nil {
		return nil, err
	}

	sess := session.New(
		sessionID,
		user.ToSessionUser(),
		ctrl.absoluteSessionExpiration,
	)
	if err := ctrl.sessionManager.CreateSession(
		ctx,
		*sess,
		ctrl.activeSessionExpiration,
	); err != nil {
		return nil, err
	}

	ctrl.writeEvent(ctx, event.NewSessionSignedInEvent(*sess))

	return sess, nil
}

// Logout invalidates the passed session, resulting in any user using the
// session to be logged out. The sign-out is announced on the event stream.
func (ctrl Controller) Logout(ctx context.Context, sess session.Session) error {
	if err := ctrl.sessionManager.DeleteSession(ctx, sess); err != nil {
		return err
	}

	ctrl.writeEvent(ctx, event.NewSessionSignedOutEvent(sess.ID, sess.User.ID))

	return nil
}

// LogoutAll invalidates all existing sessions related to the user, resulting
// in any user using these sessions to be logged out.
func (ctrl Controller) LogoutAll(ctx context.Context, userID fmt.Stringer) error {
	return ctrl.sessionManager.InvalidateUserSessionsBefore(ctx, userID, time.Now())
}

// User retrieves the user associated with the passed ID.
func (ctrl Controller) User(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return ctrl.store.User(ctx, id)
}

// VerifyEmail verifies the email associated with passed hash. The hash is a
// cryptographically-secure pseudorandom number.
func (ctrl Controller) VerifyEmail(ctx context.Context, hash string) (*model.User, error) {
	user, err := ctrl.store.UserByVerificationHash(ctx, hash)
	if errors.Is(err, crmerrors.ErrUserDNE) {
		return nil, crmerrors.HashError("invalid hash")
	}
	if err != nil {
		return nil, err
	}
	if user.IsVerified() {
		return nil, crmerrors.HashError("already verified")
	}
	if user.IsVerificationHashStale() {
		return nil, crmerrors.AuthError("invalid credentials")
	}
	if user.VerificationHash != hash {
		return nil, crmerrors.AuthError("invalid credentials")
	}
	return ctrl.store.VerifyEmail(ctx, user.ID)
}

// ResendEmailVerification resends the "verify email" email and resets related
// data such as time sent, etc.
func (ctrl Controller) ResendEmailVerification(
	ctx context.Context,
	id uuid.UUID,
	redirect string,
) (*model.User, error) {
	user, err := ctrl.store.User(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsVerified() {
		return nil, crmerrors.ErrEmailAlreadyVerified
	}

	verificationHash, err := rand.GenerateString(32)
	if err != nil {
		return nil, err
	}
	user, err = ctrl.store.ResetEmailVerification(ctx, id, verificationHash)
	if err != nil {
		return nil, err
	}

	if err := ctrl.emailer.SendVerifyEmail(
		ctx,
		user.Email,
		verificationHash,
		redirect,
	); err != nil {
		return nil, err
	}
	return user, nil
}

// Roles retrieves the role set assigned to the specified user.
func (ctrl Controller) Roles(ctx context.Context, userID uuid.UUID) (roles.Set, error) {
	return ctrl.roleStore.Roles(ctx, userID)
}

// AssignRole grants the specified role to the user. Consumers holding derived
// capability flags for the user are told to re-resolve them through the event
// stream.
func (ctrl Controller) AssignRole(ctx context.Context, userID uuid.UUID, role roles.Role) error {
	if _, err := ctrl.store.User(ctx, userID); err != nil {
		return err
	}
	if err := ctrl.roleStore.Assign(ctx, userID, role); err != nil {
		return err
	}

	ctrl.writeEvent(ctx, event.NewRolesChangedEvent(userID))

	return nil
}

// RevokeRole removes the specified role from the user. Like AssignRole, the
// change is announced on the event stream.
func (ctrl Controller) RevokeRole(ctx context.Context, userID uuid.UUID, role roles.Role) error {
	if err := ctrl.roleStore.Revoke(ctx, userID, role); err != nil {
		return err
	}

	ctrl.writeEvent(ctx, event.NewRolesChangedEvent(userID))

	return nil
}

// --- private ---

// writeEvent is best-effort. A stream outage should not fail the operation
// being announced; it is logged and the operation proceeds.
func (ctrl Controller) writeEvent(ctx context.Context, e interface{}) {
	if ctrl.writer == nil {
		return
	}

	b, err := json.Marshal(e)
	if err != nil {
		ctrl.logger.Error("marshal event", zap.Error(err))
		return
	}

	if err := ctrl.writer.Write(ctx, b); err != nil {
		ctrl.logger.Error("write event", zap.Error(err))
	}
}

// --- helpers ---

func hash(password, salt []byte) []byte {
	const (
		minIterations = 2
		minMemory     = 64 * 1024
		threads       = 1
		keyLength     = 32
	)
	return argon2.IDKey(password, salt, minIterations, minMemory, threads, keyLength)
}

var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)

	passwordRE            = regexp.MustCompile(`^[a-zA-Z\d \!\"\#\$\%\&\'\(\)\*\+\,\-\.\/\:\;\<\=\>\?\@\[\]\^\_\x60\{\|\}\~]{8,64}$`)
	atLeastOneLowerCaseRE = regexp.MustCompile(`[a-z]+`)
	atLeastOneUpperCaseRE = regexp.MustCompile(`[A-Z]+`)
	atLeastOneNumberRE    = regexp.MustCompile(`[\d]+`)
)

func isEmail(s string) bool {
	return emailRE.MatchString(s)
}

// validatePassword matches against strings that satisfy the following
// requirements:
// - between 8 and 64 characters in length
// - at least one lower-case letter
// - at least one upper-case letter
// - at least one number
// - special characters are allowed
// In the event there is not a match, the reason is returned as an error.
func validatePassword(s string) error {
	const (
		minLength = 8
		maxLength = 64
	)
	switch {
	case len(s) < minLength:
		return crmerrors.PasswordError(fmt.Sprintf("minimum of %d characters", minLength))
	case len(s) > maxLength:
		return crmerrors.PasswordError(fmt.Sprintf("maximum of %d characters", maxLength))
	case !passwordRE.MatchString(s):
		return crmerrors.PasswordError("unknown characters")
	case !atLeastOneLowerCaseRE.MatchString(s):
		return crmerrors.PasswordError("at least one lower-case letter required")
	case !atLeastOneUpperCaseRE.MatchString(s):
		return crmerrors.PasswordError("at least one upper-case letter required")
	case !atLeastOneNumberRE.MatchString(s):
		return crmerrors.PasswordError("at least one number required")
	}
	return nil
}
