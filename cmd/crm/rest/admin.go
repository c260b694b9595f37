package rest

import (
	errors "errors"
	http "net/http"

	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/roles"

	"github.com/google/uuid"
)

type AdminOverview struct{ API }

func (ep AdminOverview) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep.write(w, http.StatusOK, ep.board.Overview())
}

type AssignRole struct{ API }

func (ep AssignRole) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := ep.readRoleChange(w, r)
	if !ok {
		return
	}

	err := ep.ctrl.AssignRole(r.Context(), userID, role)
	if errors.Is(err, crmerrors.ErrUserDNE) {
		ihttp.ErrNotFound(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ep.write(w, http.StatusCreated, nil)
}

type RevokeRole struct{ API }

func (ep RevokeRole) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := ep.readRoleChange(w, r)
	if !ok {
		return
	}

	if err := ep.ctrl.RevokeRole(r.Context(), userID, role); err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ep.write(w, http.StatusCreated, nil)
}

func (api API) readRoleChange(
	w http.ResponseWriter,
	r *http.Request,
) (uuid.UUID, roles.Role, bool) {
	type body struct {
		UserID uuid.UUID `json:"userId" validate:"required"`
		Role   string    `json:"role" validate:"required"`
	}

	var b body
	if err := api.read(w, r, &b); err != nil {
		return uuid.Nil, "", false
	}

	if err := api.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(api.logger, w, err)
		return uuid.Nil, "", false
	}

	role := roles.Role(b.Role)
	if !role.Known() {
		ihttp.ErrBadRequest(api.logger, w, errors.New("unknown role"))
		return uuid.Nil, "", false
	}

	return b.UserID, role, true
}
