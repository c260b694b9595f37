package rest

import (
	http "net/http"

	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
)

type VerifyEmail struct{ API }

func (ep VerifyEmail) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Hash string `json:"hash" validate:"required"`
	}

	var b body
	if err := ep.read(w, r, &b); err != nil {
		return
	}

	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	_, err := ep.ctrl.VerifyEmail(r.Context(), b.Hash)
	if authErr := crmerrors.AsAuthError(err); authErr != nil {
		ihttp.ErrForbidden(w)
		return
	}
	if hashErr := crmerrors.AsHashError(err); hashErr != nil {
		ihttp.ErrForbidden(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ep.write(w, http.StatusCreated, nil)
}
