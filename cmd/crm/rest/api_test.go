package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SR0NAK/insurebharat/cmd/crm/dashboard"
	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateUserInputValidation(t *testing.T) {
	t.Parallel()

	type expected struct {
		status     int
		registered bool
	}
	tests := map[string]struct {
		body map[string]interface{}
		exp  expected
	}{
		"valid registration": {
			body: map[string]interface{}{
				"email":     "agent@insurebharat.in",
				"password":  "1ValidPassword",
				"firstName": "Asha",
				"lastName":  "Nair",
				"company":   "InsureBharat",
			},
			exp: expected{status: http.StatusCreated, registered: true},
		},
		"invalid email": {
			body: map[string]interface{}{
				"email":    "not-an-email",
				"password": "1ValidPassword",
			},
			exp: expected{status: http.StatusBadRequest},
		},
		"password too simple": {
			body: map[string]interface{}{
				"email":    "agent@insurebharat.in",
				"password": "password",
			},
			exp: expected{status: http.StatusBadRequest},
		},
		"invalid redirect": {
			body: map[string]interface{}{
				"email":    "agent@insurebharat.in",
				"password": "1ValidPassword",
				"redirect": "not-a-url",
			},
			exp: expected{status: http.StatusBadRequest},
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var registered bool
			ctrl := NewControllerMock(
				WithRegister(func(_ context.Context, input identity.SignUpInput) error {
					registered = true
					require.Equal(t, test.body["email"], input.Email)
					return nil
				}),
			)
			api, _ := newTestAPI(t, ctrl)

			resp := request(t, api, http.MethodPost, "/v1/user", test.body, nil)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
			require.Equal(t, test.exp.registered, registered)
		})
	}
}

func TestLoginUser(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		sess := testSession("login-session-id")
		ctrl := NewControllerMock(
			WithLogin(func(_ context.Context, email, password string) (*session.Session, error) {
				require.Equal(t, "agent@insurebharat.in", email)
				require.Equal(t, "1ValidPassword", password)
				return sess, nil
			}),
		)
		api, _ := newTestAPI(t, ctrl)

		resp := request(t, api, http.MethodPost, "/v1/user/login", map[string]interface{}{
			"email":    "agent@insurebharat.in",
			"password": "1ValidPassword",
		}, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NotEmpty(t, resp.Cookies(), "expected session cookie to be set")

		var body session.Session
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, sess.ID, body.ID)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithLogin(func(context.Context, string, string) (*session.Session, error) {
				return nil, crmerrors.AuthError("email or password invalid")
			}),
		)
		api, _ := newTestAPI(t, ctrl)

		resp := request(t, api, http.MethodPost, "/v1/user/login", map[string]interface{}{
			"email":    "agent@insurebharat.in",
			"password": "1WrongPassword",
		}, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Empty(t, resp.Cookies())
	})
}

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("without cookie", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t, NewControllerMock())

		resp := request(t, api, http.MethodGet, "/v1/user/session", nil, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("with live session", func(t *testing.T) {
		t.Parallel()

		api, sessions := newTestAPI(t, NewControllerMock())
		sess := createSession(t, sessions)

		resp := request(t, api, http.MethodGet, "/v1/user/session", nil, sess)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body session.Session
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, sess.ID, body.ID)
	})
}

func TestAuthState(t *testing.T) {
	t.Parallel()

	type expected struct {
		isAdmin  bool
		isAgent  bool
		signedIn bool
	}
	tests := map[string]struct {
		roles roles.Set
		err   error
		sess  bool
		exp   expected
	}{
		"signed out": {
			sess: false,
			exp:  expected{},
		},
		"admin": {
			roles: roles.NewSet(roles.RoleAdmin),
			sess:  true,
			exp:   expected{isAdmin: true, signedIn: true},
		},
		"agent": {
			roles: roles.NewSet(roles.RoleAgent),
			sess:  true,
			exp:   expected{isAgent: true, signedIn: true},
		},
		"role lookup failure is role-less": {
			err:  crmerrors.ErrUserDNE,
			sess: true,
			exp:  expected{signedIn: true},
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithRoles(func(context.Context, uuid.UUID) (roles.Set, error) {
					return test.roles, test.err
				}),
			)
			api, sessions := newTestAPI(t, ctrl)

			var sess *session.Session
			if test.sess {
				sess = createSession(t, sessions)
			}

			resp := request(t, api, http.MethodGet, "/v1/auth/state", nil, sess)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var state struct {
				User     *session.User    `json:"user"`
				Session  *session.Session `json:"session"`
				Loading  bool             `json:"loading"`
				IsAdmin  bool             `json:"isAdmin"`
				IsBroker bool             `json:"isBroker"`
				IsAgent  bool             `json:"isAgent"`
			}
			require.Nil(t, json.NewDecoder(resp.Body).Decode(&state))

			require.False(t, state.Loading)
			require.Equal(t, test.exp.isAdmin, state.IsAdmin)
			require.Equal(t, test.exp.isAgent, state.IsAgent)
			require.False(t, state.IsBroker)
			require.Equal(t, test.exp.signedIn, state.User != nil)
			require.Equal(t, test.exp.signedIn, state.Session != nil)
		})
	}
}

func TestCustomers(t *testing.T) {
	t.Parallel()

	t.Run("without session", func(t *testing.T) {
		t.Parallel()

		api, _ := newTestAPI(t, NewControllerMock())

		resp := request(t, api, http.MethodGet, "/v1/customers", nil, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("search by name", func(t *testing.T) {
		t.Parallel()

		api, sessions := newTestAPI(t, NewControllerMock())
		sess := createSession(t, sessions)

		resp := request(t, api, http.MethodGet, "/v1/customers?search=sarah", nil, sess)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var customers []dashboard.Customer
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&customers))
		require.Len(t, customers, 1)
		require.Equal(t, "Sarah Johnson", customers[0].Name)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Parallel()

	t.Run("agent is forbidden", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithRoles(func(context.Context, uuid.UUID) (roles.Set, error) {
				return roles.NewSet(roles.RoleAgent), nil
			}),
		)
		api, sessions := newTestAPI(t, ctrl)
		sess := createSession(t, sessions)

		resp := request(t, api, http.MethodGet, "/v1/admin/overview", nil, sess)
		defer resp.Body.Close()

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin reads overview", func(t *testing.T) {
		t.Parallel()

		ctrl := NewControllerMock(
			WithRoles(func(context.Context, uuid.UUID) (roles.Set, error) {
				return roles.NewSet(roles.RoleAdmin), nil
			}),
		)
		api, sessions := newTestAPI(t, ctrl)
		sess := createSession(t, sessions)

		resp := request(t, api, http.MethodGet, "/v1/admin/overview", nil, sess)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var overview dashboard.Overview
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&overview))
		require.NotEmpty(t, overview.RecentBrokers)
	})
}

func TestAssignRole(t *testing.T) {
	t.Parallel()

	type expected struct {
		status int
	}
	tests := map[string]struct {
		role string
		err  error
		exp  expected
	}{
		"assign broker": {
			role: "broker",
			exp:  expected{status: http.StatusCreated},
		},
		"unknown role": {
			role: "superuser",
			exp:  expected{status: http.StatusBadRequest},
		},
		"unknown user": {
			role: "agent",
			err:  crmerrors.ErrUserDNE,
			exp:  expected{status: http.StatusNotFound},
		},
	}

	for name, test := range tests {
		test := test

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := NewControllerMock(
				WithRoles(func(context.Context, uuid.UUID) (roles.Set, error) {
					return roles.NewSet(roles.RoleAdmin), nil
				}),
				WithAssignRole(func(_ context.Context, _ uuid.UUID, role roles.Role) error {
					require.Equal(t, roles.Role(test.role), role)
					return test.err
				}),
			)
			api, sessions := newTestAPI(t, ctrl)
			sess := createSession(t, sessions)

			resp := request(t, api, http.MethodPost, "/v1/admin/roles", map[string]interface{}{
				"userId": uuid.New(),
				"role":   test.role,
			}, sess)
			defer resp.Body.Close()

			require.Equal(t, test.exp.status, resp.StatusCode)
		})
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("missing document", func(t *testing.T) {
		t.Parallel()

		api, sessions := newTestAPI(t, NewControllerMock())
		sess := createSession(t, sessions)

		resp := request(t, api, http.MethodPost, "/v1/scan", map[string]interface{}{}, sess)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("extracts policy details", func(t *testing.T) {
		t.Parallel()

		api, sessions := newTestAPI(t, NewControllerMock())
		sess := createSession(t, sessions)

		resp := request(t, api, http.MethodPost, "/v1/scan", map[string]interface{}{
			"document": "policy.pdf",
		}, sess)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result dashboard.ScanResult
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Equal(t, 95, result.Confidence)
	})
}

// --- helpers ---

func newTestAPI(t *testing.T, ctrl IController) (*API, *session.Mock) {
	t.Helper()

	sessions := session.NewMock(time.Hour)
	api := NewAPI(
		zap.NewNop(),
		ctrl,
		dashboard.NewDashboard(),
		dashboard.NewScanner(dashboard.WithProcessingDelay(time.Millisecond)),
		eventsMock{},
		ihttp.CookieOptions{},
		sessions,
		time.Hour,
		time.Millisecond,
		[]string{"*"},
	)
	return api, sessions
}

func request(
	t *testing.T,
	api *API,
	method string,
	target string,
	body interface{},
	sess *session.Session,
) *http.Response {
	t.Helper()

	buf := new(bytes.Buffer)
	if body != nil {
		require.Nil(t, json.NewEncoder(buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, buf)
	if sess != nil {
		rr := httptest.NewRecorder()
		ihttp.SetSessionCookie(rr, sess.ID, ihttp.CookieOptions{})
		for _, cookie := range rr.Result().Cookies() {
			req.AddCookie(cookie)
		}
	}

	rr := httptest.NewRecorder()
	api.Mux.ServeHTTP(rr, req)

	return rr.Result()
}

func createSession(t *testing.T, sessions *session.Mock) *session.Session {
	t.Helper()

	sess := testSession(uuid.NewString())
	require.Nil(t, sessions.CreateSession(context.Background(), *sess, time.Hour))
	return sess
}

func testSession(id string) *session.Session {
	user := session.User{
		ID:    uuid.New(),
		Email: "agent@insurebharat.in",
		Profile: session.Profile{
			FirstName: "Asha",
			LastName:  "Nair",
			Company:   "InsureBharat",
		},
	}
	return session.New(id, user, time.Hour)
}

type eventsMock struct{}

func (eventsMock) Subscribe(uuid.UUID) (<-chan identity.Change, func()) {
	return make(chan identity.Change), func() {}
}
