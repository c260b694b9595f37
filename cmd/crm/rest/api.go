package rest

import (
	"context"
	http "net/http"
	"time"

	"github.com/SR0NAK/insurebharat/cmd/crm/dashboard"
	"github.com/SR0NAK/insurebharat/cmd/crm/model"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"
	ivalidator "github.com/SR0NAK/insurebharat/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type IController interface {
	Register(context.Context, identity.SignUpInput) error
	Login(context.Context, string, string) (*session.Session, error)
	Logout(context.Context, session.Session) error

	User(context.Context, uuid.UUID) (*model.User, error)
	VerifyEmail(context.Context, string) (*model.User, error)

	Roles(context.Context, uuid.UUID) (roles.Set, error)
	AssignRole(context.Context, uuid.UUID, roles.Role) error
	RevokeRole(context.Context, uuid.UUID, roles.Role) error
}

// IEvents delivers fleet-wide session changes concerning a user. Watch
// connections subscribe so that a sign-out or role change on any instance
// reaches them.
type IEvents interface {
	Subscribe(uuid.UUID) (<-chan identity.Change, func())
}

func NewAPI(
	logger *zap.Logger,
	ctrl IController,
	board *dashboard.Dashboard,
	scanner *dashboard.Scanner,
	events IEvents,
	cookieOptions ihttp.CookieOptions,
	sessionManager ihttp.ISessionManager,
	sessionExpiration time.Duration,
	roleFetchDelay time.Duration,
	allowedOrigins []string,
) *API {
	api := API{
		Mux: chi.NewRouter(),

		logger:            logger,
		valid:             ivalidator.New(),
		ctrl:              ctrl,
		board:             board,
		scanner:           scanner,
		events:            events,
		cookieOptions:     cookieOptions,
		sessionManager:    sessionManager,
		sessionExpiration: sessionExpiration,
		roleFetchDelay:    roleFetchDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	api.Mux.Use(
		middleware.RequestLogger(ihttp.NewZapLogFormatter(logger)),
		cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}),
	)

	api.Mux.Route("/v1", func(router chi.Router) {
		router.Method(http.MethodGet, "/user/session", Session{API: api})
		router.Method(http.MethodPost, "/user/verify-email", VerifyEmail{API: api})
		router.Method(http.MethodGet, "/auth/state", AuthState{API: api})
		router.Method(http.MethodGet, "/auth/watch", AuthWatch{API: api})

		router.Group(func(router chi.Router) {
			router.Use(ihttp.EnsureDuration(2 * time.Second))

			router.Method(http.MethodPost, "/user", CreateUser{API: api})
			router.Method(http.MethodPost, "/user/login", LoginUser{API: api})
		})

		router.Group(func(router chi.Router) {
			router.Use(ihttp.Session(logger, sessionManager, sessionExpiration))

			router.Method(http.MethodPost, "/user/logout", LogoutUser{API: api})
			router.Method(http.MethodGet, "/user", User{API: api})

			router.Method(http.MethodGet, "/customers", Customers{API: api})
			router.Method(http.MethodGet, "/customers/summary", CustomersSummary{API: api})
			router.Method(http.MethodGet, "/renewals", Renewals{API: api})
			router.Method(http.MethodGet, "/renewals/summary", RenewalsSummary{API: api})
			router.Method(http.MethodGet, "/analytics", Analytics{API: api})
			router.Method(http.MethodPost, "/scan", Scan{API: api})

			router.Group(func(router chi.Router) {
				router.Use(ihttp.RequireRole(logger, ctrl, roles.RoleAdmin))

				router.Method(http.MethodGet, "/admin/overview", AdminOverview{API: api})
				router.Method(http.MethodPost, "/admin/roles", AssignRole{API: api})
				router.Method(http.MethodPost, "/admin/roles/revoke", RevokeRole{API: api})
			})
		})
	})

	return &api
}

type API struct {
	Mux *chi.Mux

	logger  *zap.Logger
	valid   *validatorv10.Validate
	ctrl    IController
	board   *dashboard.Dashboard
	scanner *dashboard.Scanner
	events  IEvents

	cookieOptions     ihttp.CookieOptions
	sessionManager    ihttp.ISessionManager
	sessionExpiration time.Duration
	roleFetchDelay    time.Duration

	upgrader websocket.Upgrader
}
